package services

import (
	"github.com/pulse-hq/pulse/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db      *gorm.DB
	history *HistoryService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, history: NewHistoryService(db)}
}

type ProjectListRequest struct {
	ListQuery
	PlannedStart string `form:"planned_start"`
	PlannedEnd   string `form:"planned_end"`
	ActualStart  string `form:"actual_start"`
	ActualEnd    string `form:"actual_end"`
	CreatedByID  *uint  `form:"created_by"`
	MemberID     *uint  `form:"member"`
}

var projectOrderable = map[string]string{
	"name":          "name",
	"planned_start": "planned_start",
	"planned_end":   "planned_end",
	"actual_start":  "actual_start",
	"actual_end":    "actual_end",
	"created_at":    "created_at",
}

type ProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	PlannedStart *string `json:"planned_start"`
	PlannedEnd   *string `json:"planned_end"`
	ActualStart  *string `json:"actual_start"`
	ActualEnd    *string `json:"actual_end"`
	CreatedByID  *uint   `json:"created_by_id"`
	MemberIDs    []uint  `json:"member_ids"`
}

func (s *ProjectService) List(req *ProjectListRequest) (*ListResponse, error) {
	req.normalize()

	query := s.db.Model(&models.Project{})
	for col, val := range map[string]string{
		"planned_start": req.PlannedStart,
		"planned_end":   req.PlannedEnd,
		"actual_start":  req.ActualStart,
		"actual_end":    req.ActualEnd,
	} {
		if val != "" {
			day, err := parseDate(&val)
			if err != nil {
				return nil, err
			}
			query = query.Where(col+" = ?", day)
		}
	}
	if req.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *req.CreatedByID)
	}
	if req.MemberID != nil {
		query = query.Where("id IN (?)", s.db.Table("project_members").
			Select("project_id").Where("employee_id = ?", *req.MemberID))
	}
	query = req.applySearch(query, "name", "description")

	var total int64
	query.Count(&total)

	var projects []models.Project
	query = req.applyOrdering(query, projectOrderable, "created_at DESC")
	if err := query.Preload("CreatedBy.User").Preload("Members.User").
		Offset(req.offset()).Limit(req.PageSize).
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: projects}, nil
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("CreatedBy.User").Preload("Members.User").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Create(req *ProjectRequest, changedBy uint) (*models.Project, error) {
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: req.CreatedByID,
	}
	if err := s.applyDates(&project, req); err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if len(req.MemberIDs) > 0 {
			members, err := loadEmployees(tx, req.MemberIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&project).Association("Members").Replace(members); err != nil {
				return err
			}
		}
		return s.history.Record(tx, ModelProject, project.ID, models.ChangeActionCreate, &project, &changedBy)
	}); err != nil {
		return nil, err
	}
	return s.GetByID(project.ID)
}

func (s *ProjectService) Update(id uint, req *ProjectRequest, changedBy uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.Description = req.Description
	if req.CreatedByID != nil {
		project.CreatedByID = req.CreatedByID
	}
	if err := s.applyDates(&project, req); err != nil {
		return nil, err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&project).Error; err != nil {
			return err
		}
		if req.MemberIDs != nil {
			members, err := loadEmployees(tx, req.MemberIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&project).Association("Members").Replace(members); err != nil {
				return err
			}
		}
		return s.history.Record(tx, ModelProject, project.ID, models.ChangeActionUpdate, &project, &changedBy)
	}); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ProjectService) Delete(id uint, changedBy uint) error {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&project).Association("Members").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&project).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelProject, project.ID, models.ChangeActionDelete, &project, &changedBy)
	})
}

func (s *ProjectService) History(id uint) ([]models.ChangeRecord, error) {
	return s.history.List(ModelProject, id)
}

func (s *ProjectService) applyDates(project *models.Project, req *ProjectRequest) error {
	var err error
	if project.PlannedStart, err = parseDate(req.PlannedStart); err != nil {
		return err
	}
	if project.PlannedEnd, err = parseDate(req.PlannedEnd); err != nil {
		return err
	}
	if project.ActualStart, err = parseDate(req.ActualStart); err != nil {
		return err
	}
	if project.ActualEnd, err = parseDate(req.ActualEnd); err != nil {
		return err
	}
	return nil
}

func loadEmployees(tx *gorm.DB, ids []uint) ([]models.Employee, error) {
	var employees []models.Employee
	if err := tx.Find(&employees, ids).Error; err != nil {
		return nil, err
	}
	return employees, nil
}
