package services

import (
	"encoding/json"

	"github.com/pulse-hq/pulse/internal/models"
	"gorm.io/gorm"
)

// Tracked model names used as the ChangeRecord discriminator.
const (
	ModelDesignation = "designation"
	ModelLevel       = "level"
	ModelEmployee    = "employee"
	ModelProject     = "project"
	ModelTask        = "task"
)

// HistoryService appends and reads the change-history ledger. Records are
// written inside the same transaction as the change they describe.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record serializes snapshot and appends a change record. Call it with the
// transaction handle of the mutating operation.
func (s *HistoryService) Record(tx *gorm.DB, model string, recordID uint, action string, snapshot interface{}, changedBy *uint) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return tx.Create(&models.ChangeRecord{
		Model:       model,
		RecordID:    recordID,
		Action:      action,
		Snapshot:    string(data),
		ChangedByID: changedBy,
	}).Error
}

// List returns a record's change history newest first.
func (s *HistoryService) List(model string, recordID uint) ([]models.ChangeRecord, error) {
	var records []models.ChangeRecord
	err := s.db.Where("model = ? AND record_id = ?", model, recordID).
		Preload("ChangedBy").
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
