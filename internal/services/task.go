package services

import (
	"github.com/pulse-hq/pulse/internal/models"
	"gorm.io/gorm"
)

type TaskService struct {
	db      *gorm.DB
	history *HistoryService
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, history: NewHistoryService(db)}
}

type TaskListRequest struct {
	ListQuery
	ProjectID    *uint  `form:"project"`
	Status       string `form:"status" binding:"omitempty,oneof=pending in_progress completed aborted"`
	CreatedByID  *uint  `form:"created_by"`
	AssignedByID *uint  `form:"assigned_by"`
	AssignedToID *uint  `form:"assigned_to"`
}

var taskOrderable = map[string]string{
	"title":         "title",
	"status":        "status",
	"planned_start": "planned_start",
	"planned_end":   "planned_end",
	"actual_start":  "actual_start",
	"actual_end":    "actual_end",
	"created_at":    "created_at",
}

type TaskRequest struct {
	ProjectID     uint    `json:"project_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	PlannedStart  *string `json:"planned_start"`
	PlannedEnd    *string `json:"planned_end"`
	ActualStart   *string `json:"actual_start"`
	ActualEnd     *string `json:"actual_end"`
	Status        string  `json:"status" binding:"omitempty,oneof=pending in_progress completed aborted"`
	CreatedByID   *uint   `json:"created_by_id"`
	AssignedByID  *uint   `json:"assigned_by_id"`
	AssignedToIDs []uint  `json:"assigned_to_ids"`
}

func (s *TaskService) List(req *TaskListRequest) (*ListResponse, error) {
	req.normalize()

	query := s.db.Model(&models.Task{})
	if req.ProjectID != nil {
		query = query.Where("project_id = ?", *req.ProjectID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *req.CreatedByID)
	}
	if req.AssignedByID != nil {
		query = query.Where("assigned_by_id = ?", *req.AssignedByID)
	}
	if req.AssignedToID != nil {
		query = query.Where("id IN (?)", s.db.Table("task_assignees").
			Select("task_id").Where("employee_id = ?", *req.AssignedToID))
	}
	query = req.applySearch(query, "title", "description")

	var total int64
	query.Count(&total)

	var tasks []models.Task
	query = req.applyOrdering(query, taskOrderable, "created_at DESC")
	if err := query.Preload("Project").Preload("CreatedBy.User").
		Preload("AssignedBy.User").Preload("AssignedTo.User").
		Offset(req.offset()).Limit(req.PageSize).
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return &ListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: tasks}, nil
}

func (s *TaskService) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Project").Preload("CreatedBy.User").
		Preload("AssignedBy.User").Preload("AssignedTo.User").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Create(req *TaskRequest, changedBy uint) (*models.Task, error) {
	// Project must exist; tasks are never orphaned.
	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		return nil, err
	}

	task := models.Task{
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		CreatedByID:  req.CreatedByID,
		AssignedByID: req.AssignedByID,
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if err := s.applyDates(&task, req); err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if len(req.AssignedToIDs) > 0 {
			assignees, err := loadEmployees(tx, req.AssignedToIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&task).Association("AssignedTo").Replace(assignees); err != nil {
				return err
			}
		}
		return s.history.Record(tx, ModelTask, task.ID, models.ChangeActionCreate, &task, &changedBy)
	}); err != nil {
		return nil, err
	}
	return s.GetByID(task.ID)
}

func (s *TaskService) Update(id uint, req *TaskRequest, changedBy uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}

	task.ProjectID = req.ProjectID
	task.Title = req.Title
	task.Description = req.Description
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.CreatedByID != nil {
		task.CreatedByID = req.CreatedByID
	}
	if req.AssignedByID != nil {
		task.AssignedByID = req.AssignedByID
	}
	if err := s.applyDates(&task, req); err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		if req.AssignedToIDs != nil {
			assignees, err := loadEmployees(tx, req.AssignedToIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&task).Association("AssignedTo").Replace(assignees); err != nil {
				return err
			}
		}
		return s.history.Record(tx, ModelTask, task.ID, models.ChangeActionUpdate, &task, &changedBy)
	}); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *TaskService) Delete(id uint, changedBy uint) error {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&task).Association("AssignedTo").Clear(); err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&task).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelTask, task.ID, models.ChangeActionDelete, &task, &changedBy)
	})
}

func (s *TaskService) History(id uint) ([]models.ChangeRecord, error) {
	return s.history.List(ModelTask, id)
}

func (s *TaskService) applyDates(task *models.Task, req *TaskRequest) error {
	var err error
	if task.PlannedStart, err = parseDate(req.PlannedStart); err != nil {
		return err
	}
	if task.PlannedEnd, err = parseDate(req.PlannedEnd); err != nil {
		return err
	}
	if task.ActualStart, err = parseDate(req.ActualStart); err != nil {
		return err
	}
	if task.ActualEnd, err = parseDate(req.ActualEnd); err != nil {
		return err
	}
	return nil
}
