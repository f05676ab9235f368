package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pulse-hq/pulse/internal/middleware"
	"github.com/pulse-hq/pulse/internal/services"
	"github.com/pulse-hq/pulse/pkg/response"
	"gorm.io/gorm"
)

type LevelHandler struct {
	levelService *services.LevelService
}

func NewLevelHandler(db *gorm.DB) *LevelHandler {
	return &LevelHandler{
		levelService: services.NewLevelService(db),
	}
}

// List returns paginated levels
// GET /api/levels
func (h *LevelHandler) List(c *gin.Context) {
	var req services.LevelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.levelService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, resp)
}

// GetByID returns a level by ID
// GET /api/levels/:id
func (h *LevelHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid level id")
		return
	}

	level, err := h.levelService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "level not found")
		return
	}
	response.Success(c, level)
}

// Create creates a level
// POST /api/levels
func (h *LevelHandler) Create(c *gin.Context) {
	var req services.LevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	level, err := h.levelService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Created(c, level)
}

// Update updates a level
// PUT /api/levels/:id
func (h *LevelHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid level id")
		return
	}

	var req services.LevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	level, err := h.levelService.Update(uint(id), &req, middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, level)
}

// Delete deletes a level
// DELETE /api/levels/:id
func (h *LevelHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid level id")
		return
	}

	if err := h.levelService.Delete(uint(id), middleware.GetUserID(c)); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "level deleted successfully"})
}

// History returns the level's change history, newest first
// GET /api/levels/:id/history
func (h *LevelHandler) History(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid level id")
		return
	}

	records, err := h.levelService.History(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}
