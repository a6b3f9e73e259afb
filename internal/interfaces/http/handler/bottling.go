package handler

import (
	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BottlingHandler handles packaged output API endpoints
type BottlingHandler struct {
	BaseHandler
	bottlingService *appbrewing.BottlingService
}

// NewBottlingHandler creates a new BottlingHandler
func NewBottlingHandler(bottlingService *appbrewing.BottlingService) *BottlingHandler {
	return &BottlingHandler{bottlingService: bottlingService}
}

// Save replaces the bottling rows of a batch and recomputes packaging loss
func (h *BottlingHandler) Save(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	var req appbrewing.SaveBottlingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bottlingService.SaveBottling(c.Request.Context(), tenantID, batchID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns the stored bottling rows of a batch
func (h *BottlingHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	result, err := h.bottlingService.GetBottling(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
