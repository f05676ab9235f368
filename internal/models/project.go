package models

import "time"

// Project groups tasks and members. Planned/actual dates carry day
// granularity; they are stored at midnight UTC.
type Project struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:1000;not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	ActualStart  *time.Time `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end"`
	CreatedByID  *uint      `json:"created_by_id"`
	CreatedBy    *Employee  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Members      []Employee `gorm:"many2many:project_members" json:"members,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`
}

func (Project) TableName() string { return "projects" }

// Task statuses
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusAborted    = "aborted"
)

type Task struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProjectID    uint       `gorm:"index;not null" json:"project_id"`
	Project      *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title        string     `gorm:"size:1000;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	ActualStart  *time.Time `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end"`
	Status       string     `gorm:"size:20;default:pending;index" json:"status"`
	CreatedByID  *uint      `json:"created_by_id"`
	CreatedBy    *Employee  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedByID *uint      `json:"assigned_by_id"`
	AssignedBy   *Employee  `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
	AssignedTo   []Employee `gorm:"many2many:task_assignees" json:"assigned_to,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`
}

func (Task) TableName() string { return "tasks" }

// Comment is an employee's note on a task.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TaskID     uint      `gorm:"index;not null" json:"task_id"`
	Task       *Task     `gorm:"foreignKey:TaskID" json:"-"`
	EmployeeID uint      `gorm:"index;not null" json:"employee_id"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `gorm:"index" json:"commented_at"`
}

func (Comment) TableName() string { return "comments" }
