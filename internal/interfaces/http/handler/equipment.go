package handler

import (
	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EquipmentHandler handles brewing vessel API endpoints
type EquipmentHandler struct {
	BaseHandler
	equipmentService *appbrewing.EquipmentService
}

// NewEquipmentHandler creates a new EquipmentHandler
func NewEquipmentHandler(equipmentService *appbrewing.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

// Create registers a new vessel
func (h *EquipmentHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req appbrewing.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	equipment, err := h.equipmentService.CreateEquipment(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, equipment)
}

// List returns all vessels of the tenant
func (h *EquipmentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	equipment, err := h.equipmentService.ListEquipment(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, equipment)
}

// Get returns a single vessel
func (h *EquipmentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	equipmentID, err := uuid.Parse(c.Param("equipmentId"))
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID format")
		return
	}

	equipment, err := h.equipmentService.GetEquipment(c.Request.Context(), tenantID, equipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, equipment)
}
