package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulse-hq/pulse/internal/middleware"
	"github.com/pulse-hq/pulse/internal/services"
	"github.com/pulse-hq/pulse/pkg/response"
	"gorm.io/gorm"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: services.NewEmployeeService(db),
	}
}

// List returns paginated employees
// GET /api/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	var req services.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.employeeService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// GetByID returns an employee by ID
// GET /api/employees/:id
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}

	employee, err := h.employeeService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "employee not found")
		return
	}
	response.Success(c, employee)
}

// Create creates an employee together with its user account
// POST /api/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req services.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, employee)
}

// Update updates an employee's placement; the linked user is untouched
// PUT /api/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}

	var req services.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	employee, err := h.employeeService.Update(uint(id), &req, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrSupervisorCycle) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, employee)
}

// Delete deletes an employee
// DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}

	if err := h.employeeService.Delete(uint(id), middleware.GetUserID(c)); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "employee deleted successfully"})
}

// History returns the employee's change history, newest first
// GET /api/employees/:id/history
func (h *EmployeeHandler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid employee id")
		return
	}

	records, err := h.employeeService.History(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}
