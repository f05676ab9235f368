package services

import (
	"github.com/pulse-hq/pulse/internal/models"
	"gorm.io/gorm"
)

type DesignationService struct {
	db      *gorm.DB
	history *HistoryService
}

func NewDesignationService(db *gorm.DB) *DesignationService {
	return &DesignationService{db: db, history: NewHistoryService(db)}
}

type DesignationListRequest struct {
	ListQuery
	Title string `form:"title"`
}

var designationOrderable = map[string]string{
	"title":       "title",
	"description": "description",
	"created_on":  "created_at",
}

type DesignationRequest struct {
	Title       string `json:"title" binding:"required"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

func (s *DesignationService) List(req *DesignationListRequest) (*ListResponse, error) {
	req.normalize()

	query := s.db.Model(&models.Designation{})
	if req.Title != "" {
		query = query.Where("title = ?", req.Title)
	}
	query = req.applySearch(query, "title", "description")

	var total int64
	query.Count(&total)

	var designations []models.Designation
	query = req.applyOrdering(query, designationOrderable, "title ASC")
	if err := query.Preload("CreatedBy").
		Offset(req.offset()).Limit(req.PageSize).
		Find(&designations).Error; err != nil {
		return nil, err
	}

	return &ListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: designations}, nil
}

func (s *DesignationService) GetByID(id uint) (*models.Designation, error) {
	var designation models.Designation
	if err := s.db.Preload("CreatedBy").First(&designation, id).Error; err != nil {
		return nil, err
	}
	return &designation, nil
}

func (s *DesignationService) Create(req *DesignationRequest, createdBy uint) (*models.Designation, error) {
	designation := models.Designation{
		Title:       req.Title,
		Level:       req.Level,
		Description: req.Description,
		CreatedByID: &createdBy,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&designation).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelDesignation, designation.ID, models.ChangeActionCreate, &designation, &createdBy)
	}); err != nil {
		return nil, err
	}
	return &designation, nil
}

func (s *DesignationService) Update(id uint, req *DesignationRequest, changedBy uint) (*models.Designation, error) {
	var designation models.Designation
	if err := s.db.First(&designation, id).Error; err != nil {
		return nil, err
	}

	designation.Title = req.Title
	designation.Level = req.Level
	designation.Description = req.Description

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&designation).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelDesignation, designation.ID, models.ChangeActionUpdate, &designation, &changedBy)
	}); err != nil {
		return nil, err
	}
	return &designation, nil
}

func (s *DesignationService) Delete(id uint, changedBy uint) error {
	var designation models.Designation
	if err := s.db.First(&designation, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&designation).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelDesignation, designation.ID, models.ChangeActionDelete, &designation, &changedBy)
	})
}

func (s *DesignationService) History(id uint) ([]models.ChangeRecord, error) {
	return s.history.List(ModelDesignation, id)
}
