package services

import (
	"errors"

	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/internal/utils"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListRequest struct {
	ListQuery
	Username  string `form:"username"`
	Email     string `form:"email"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

var userOrderable = map[string]string{
	"username":   "username",
	"email":      "email",
	"first_name": "first_name",
	"last_name":  "last_name",
	"created_at": "created_at",
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"omitempty,min=8"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" binding:"omitempty,oneof=admin user"`
	IsActive  *bool  `json:"is_active"`
}

type UpdateUserRequest struct {
	Password  string `json:"password" binding:"omitempty,min=8"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" binding:"omitempty,oneof=admin user"`
	IsActive  *bool  `json:"is_active"`
}

func (s *UserService) List(req *UserListRequest) (*ListResponse, error) {
	req.normalize()

	query := s.db.Model(&models.User{})
	if req.Username != "" {
		query = query.Where("username = ?", req.Username)
	}
	if req.Email != "" {
		query = query.Where("email = ?", req.Email)
	}
	if req.FirstName != "" {
		query = query.Where("first_name = ?", req.FirstName)
	}
	if req.LastName != "" {
		query = query.Where("last_name = ?", req.LastName)
	}
	query = req.applySearch(query, "username", "email", "first_name", "last_name")

	var total int64
	query.Count(&total)

	var users []models.User
	query = req.applyOrdering(query, userOrderable, "username ASC")
	if err := query.Offset(req.offset()).Limit(req.PageSize).Find(&users).Error; err != nil {
		return nil, err
	}

	return &ListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: users}, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create builds a user. An empty password leaves the account without a usable
// local password (directory accounts, imported employees before first reset).
func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		AuthType:  "local",
		IsActive:  true,
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

func (s *UserService) Delete(id uint) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return err
	}

	// An employee record keeps its user; block deletion while linked.
	var linked int64
	s.db.Model(&models.Employee{}).Where("user_id = ?", id).Count(&linked)
	if linked > 0 {
		return errors.New("user is linked to an employee record")
	}

	return s.db.Delete(&user).Error
}
