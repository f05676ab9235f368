package services

import (
	"errors"

	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/internal/utils"
	"gorm.io/gorm"
)

var ErrSupervisorCycle = errors.New("employee cannot supervise themselves")

type EmployeeService struct {
	db      *gorm.DB
	history *HistoryService
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db, history: NewHistoryService(db)}
}

type EmployeeListRequest struct {
	ListQuery
	DesignationID *uint `form:"designation_id"`
	LevelID       *uint `form:"level_id"`
	SupervisorID  *uint `form:"supervisor_id"`
}

// Orderable columns run through the joined users table.
var employeeOrderable = map[string]string{
	"username":   "users.username",
	"email":      "users.email",
	"first_name": "users.first_name",
	"last_name":  "users.last_name",
}

// CreateEmployeeRequest nests the new account's user fields; the user and the
// employee row are created in one transaction.
type CreateEmployeeRequest struct {
	User          CreateUserRequest `json:"user" binding:"required"`
	EmployeeID    *int              `json:"employee_id"`
	DesignationID *uint             `json:"designation_id"`
	LevelID       *uint             `json:"level_id"`
	SupervisorID  *uint             `json:"supervisor_id"`
}

// UpdateEmployeeRequest never touches the embedded user.
type UpdateEmployeeRequest struct {
	EmployeeID    *int  `json:"employee_id"`
	DesignationID *uint `json:"designation_id"`
	LevelID       *uint `json:"level_id"`
	SupervisorID  *uint `json:"supervisor_id"`
}

func (s *EmployeeService) List(req *EmployeeListRequest) (*ListResponse, error) {
	req.normalize()

	query := s.db.Model(&models.Employee{}).
		Joins("JOIN users ON users.id = employees.user_id")
	if req.DesignationID != nil {
		query = query.Where("employees.designation_id = ?", *req.DesignationID)
	}
	if req.LevelID != nil {
		query = query.Where("employees.level_id = ?", *req.LevelID)
	}
	if req.SupervisorID != nil {
		query = query.Where("employees.supervisor_id = ?", *req.SupervisorID)
	}
	query = req.applySearch(query, "users.username", "users.email", "users.first_name", "users.last_name")

	var total int64
	query.Count(&total)

	var employees []models.Employee
	query = req.applyOrdering(query, employeeOrderable, "users.username ASC")
	if err := query.Preload("User").Preload("Designation").Preload("Level").
		Offset(req.offset()).Limit(req.PageSize).
		Find(&employees).Error; err != nil {
		return nil, err
	}

	return &ListResponse{Total: total, Page: req.Page, PageSize: req.PageSize, Items: employees}, nil
}

func (s *EmployeeService) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.Preload("User").Preload("Designation").Preload("Level").
		First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// Create builds the user account and the employee row atomically.
func (s *EmployeeService) Create(req *CreateEmployeeRequest, changedBy uint) (*models.Employee, error) {
	user := models.User{
		Username:  req.User.Username,
		Email:     req.User.Email,
		FirstName: req.User.FirstName,
		LastName:  req.User.LastName,
		Role:      "user",
		AuthType:  "local",
		IsActive:  true,
	}
	if req.User.Password != "" {
		hash, err := utils.HashPassword(req.User.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	var employee models.Employee
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		employee = models.Employee{
			UserID:        user.ID,
			EmployeeID:    req.EmployeeID,
			DesignationID: req.DesignationID,
			LevelID:       req.LevelID,
			SupervisorID:  req.SupervisorID,
		}
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelEmployee, employee.ID, models.ChangeActionCreate, &employee, &changedBy)
	}); err != nil {
		return nil, err
	}

	employee.User = &user
	return &employee, nil
}

func (s *EmployeeService) Update(id uint, req *UpdateEmployeeRequest, changedBy uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		return nil, err
	}

	if req.SupervisorID != nil && *req.SupervisorID == id {
		return nil, ErrSupervisorCycle
	}

	if req.EmployeeID != nil {
		employee.EmployeeID = req.EmployeeID
	}
	employee.DesignationID = req.DesignationID
	employee.LevelID = req.LevelID
	employee.SupervisorID = req.SupervisorID

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&employee).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelEmployee, employee.ID, models.ChangeActionUpdate, &employee, &changedBy)
	}); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *EmployeeService) Delete(id uint, changedBy uint) error {
	var employee models.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		return err
	}

	// Direct reports lose their supervisor link, they are not deleted.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("supervisor_id = ?", id).
			Update("supervisor_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&employee).Error; err != nil {
			return err
		}
		return s.history.Record(tx, ModelEmployee, employee.ID, models.ChangeActionDelete, &employee, &changedBy)
	})
}

func (s *EmployeeService) History(id uint) ([]models.ChangeRecord, error) {
	return s.history.List(ModelEmployee, id)
}
