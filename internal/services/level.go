package services

import (
	"github.com/pulse-hq/pulse/internal/models"
	"gorm.io/gorm"
)

type LevelService struct {
	db      *gorm.DB
	history *HistoryService
}

func NewLevelService(db *gorm.DB) *LevelService {
	return &LevelService{db: db, history: NewHistoryService(db)}
}

type LevelListRequest struct {
	ListQuery
	Level *int `form:"level"`
}

var levelOrderable = map[string]string{
	"level":      "level",
	"created_on": "created_at",
}

type LevelRequest struct {
	Level       int    `json:"level" binding:"required"`
	Description string `json:"description"`
}

func (s *LevelService) List(req *LevelListRequest) (*ListResponse, error) {
	req.normalize()

	query := s.db.Model(&models.Level{})
	if req.Level != nil {
		query = query.Where("level = ?", *req.Level)
	}
	query = req.applySearch(query, "description")

	var total int64
	query.Count(&total)

	var levels []models.Level
	query = req.applyOrdering(query, levelOrderable, "level ASC")
	if err := query.Preload("CreatedBy").
		Offset(req.offset()).Limit(req.PageSize).
		Find(&levels).Error; err != nil {
		return nil, err
	}

	return &ListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: levels}, nil
}

func (s *LevelService) GetByID(id uint) (*models.Level, error) {
	var level models.Level
	if err := s.db.Preload("CreatedBy").First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (s *LevelService) Create(req *LevelRequest, createdBy uint) (*models.Level, error) {
	level := models.Level{
		Level:       req.Level,
		Description: req.Description,
		CreatedByID: &createdBy,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&level).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelLevel, level.ID, models.ChangeActionCreate, &level, &createdBy)
	}); err != nil {
		return nil, err
	}
	return &level, nil
}

func (s *LevelService) Update(id uint, req *LevelRequest, changedBy uint) (*models.Level, error) {
	var level models.Level
	if err := s.db.First(&level, id).Error; err != nil {
		return nil, err
	}

	level.Level = req.Level
	level.Description = req.Description

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&level).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelLevel, level.ID, models.ChangeActionUpdate, &level, &changedBy)
	}); err != nil {
		return nil, err
	}
	return &level, nil
}

func (s *LevelService) Delete(id uint, changedBy uint) error {
	var level models.Level
	if err := s.db.First(&level, id).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&level).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelLevel, level.ID, models.ChangeActionDelete, &level, &changedBy)
	})
}

func (s *LevelService) History(id uint) ([]models.ChangeRecord, error) {
	return s.history.List(ModelLevel, id)
}
