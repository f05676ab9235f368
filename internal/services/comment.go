package services

import (
	"github.com/pulse-hq/pulse/internal/models"
	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CommentListRequest struct {
	ListQuery
	TaskID     *uint `form:"task"`
	EmployeeID *uint `form:"employee"`
}

type CommentRequest struct {
	TaskID     uint   `json:"task_id" binding:"required"`
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

func (s *CommentService) List(req *CommentListRequest) (*ListResponse, error) {
	req.normalize()

	query := s.db.Model(&models.Comment{})
	if req.TaskID != nil {
		query = query.Where("task_id = ?", *req.TaskID)
	}
	if req.EmployeeID != nil {
		query = query.Where("employee_id = ?", *req.EmployeeID)
	}
	query = req.applySearch(query, "body")

	var total int64
	query.Count(&total)

	var comments []models.Comment
	if err := query.Preload("Employee.User").
		Order("created_at DESC").
		Offset(req.offset()).Limit(req.PageSize).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	return &ListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: comments}, nil
}

func (s *CommentService) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Employee.User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Create(req *CommentRequest) (*models.Comment, error) {
	var task models.Task
	if err := s.db.First(&task, req.TaskID).Error; err != nil {
		return nil, err
	}

	comment := models.Comment{
		TaskID:     req.TaskID,
		EmployeeID: req.EmployeeID,
		Body:       req.Body,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return s.GetByID(comment.ID)
}

func (s *CommentService) Update(id uint, body string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&comment).Update("body", body).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *CommentService) Delete(id uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return err
	}
	return s.db.Delete(&comment).Error
}
