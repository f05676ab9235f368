package models

import "time"

// Change actions
const (
	ChangeActionCreate = "create"
	ChangeActionUpdate = "update"
	ChangeActionDelete = "delete"
)

// ChangeRecord is one row of the change-history ledger. Every mutating
// operation on a tracked resource appends a record with a full JSON snapshot
// of the row after the change (before the change, for deletes).
type ChangeRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Model       string    `gorm:"size:50;index:idx_change_model_record" json:"model"`
	RecordID    uint      `gorm:"index:idx_change_model_record" json:"record_id"`
	Action      string    `gorm:"size:10;not null" json:"action"`
	Snapshot    string    `gorm:"type:text" json:"snapshot"`
	ChangedByID *uint     `json:"changed_by_id"`
	ChangedBy   *User     `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"changed_at"`
}

func (ChangeRecord) TableName() string { return "change_records" }
