package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulse-hq/pulse/internal/middleware"
	"github.com/pulse-hq/pulse/internal/services"
	"github.com/pulse-hq/pulse/pkg/response"
	"gorm.io/gorm"
)

type DesignationHandler struct {
	designationService *services.DesignationService
}

func NewDesignationHandler(db *gorm.DB) *DesignationHandler {
	return &DesignationHandler{
		designationService: services.NewDesignationService(db),
	}
}

// List returns paginated designations
// GET /api/designations
func (h *DesignationHandler) List(c *gin.Context) {
	var req services.DesignationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.designationService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// GetByID returns a designation by ID
// GET /api/designations/:id
func (h *DesignationHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid designation id")
		return
	}

	designation, err := h.designationService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "designation not found")
		return
	}
	response.Success(c, designation)
}

// Create creates a designation, stamped with the caller
// POST /api/designations
func (h *DesignationHandler) Create(c *gin.Context) {
	var req services.DesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	designation, err := h.designationService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, designation)
}

// Update updates a designation
// PUT /api/designations/:id
func (h *DesignationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid designation id")
		return
	}

	var req services.DesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	designation, err := h.designationService.Update(uint(id), &req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, designation)
}

// Delete deletes a designation
// DELETE /api/designations/:id
func (h *DesignationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid designation id")
		return
	}

	if err := h.designationService.Delete(uint(id), middleware.GetUserID(c)); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "designation deleted successfully"})
}

// History returns the designation's change history, newest first
// GET /api/designations/:id/history
func (h *DesignationHandler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid designation id")
		return
	}

	records, err := h.designationService.History(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}
