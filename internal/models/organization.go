package models

import "time"

// Designation is a job title (e.g. "Senior Engineer").
type Designation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Level       string    `gorm:"size:100" json:"level"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedByID *uint     `json:"created_by_id"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_on"`
	UpdatedAt   time.Time `json:"-"`
}

func (Designation) TableName() string { return "designations" }

// Level is a numeric seniority band.
type Level struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Level       int       `gorm:"not null" json:"level"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedByID *uint     `json:"created_by_id"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_on"`
	UpdatedAt   time.Time `json:"-"`
}

func (Level) TableName() string { return "levels" }

// Employee wraps a User with organizational placement. SupervisorID points at
// another employee, forming the reporting hierarchy.
type Employee struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	User          *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EmployeeID    *int         `gorm:"uniqueIndex" json:"employee_id"`
	DesignationID *uint        `json:"designation_id"`
	Designation   *Designation `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
	LevelID       *uint        `json:"level_id"`
	Level         *Level       `gorm:"foreignKey:LevelID" json:"level,omitempty"`
	SupervisorID  *uint        `json:"supervisor_id"`
	Supervisor    *Employee    `gorm:"foreignKey:SupervisorID" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }
