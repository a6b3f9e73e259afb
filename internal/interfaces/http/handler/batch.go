package handler

import (
	"time"

	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BatchHandler handles production batch API endpoints
type BatchHandler struct {
	BaseHandler
	batchService *appbrewing.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(batchService *appbrewing.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// BatchNoteResponse represents one production log entry
type BatchNoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Plan creates a new batch in the PLANNED state
func (h *BatchHandler) Plan(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req appbrewing.PlanBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.PlanBatch(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, batch)
}

// List returns a page of batches
func (h *BatchHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	page, err := h.batchService.ListBatches(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single batch
func (h *BatchHandler) Get(c *gin.Context) {
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

	batch, err := h.batchService.GetBatch(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// Transition moves a batch to a new lifecycle status
func (h *BatchHandler) Transition(c *gin.Context) {
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

	var req appbrewing.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.Transition(c.Request.Context(), tenantID, batchID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// AssignEquipment reassigns or unassigns the vessel of a batch
func (h *BatchHandler) AssignEquipment(c *gin.Context) {
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

	var req appbrewing.AssignEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.AssignEquipment(c.Request.Context(), tenantID, batchID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// Update records measured facts on a batch
func (h *BatchHandler) Update(c *gin.Context) {
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

	var req appbrewing.UpdateBatchDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.batchService.UpdateDetails(c.Request.Context(), tenantID, batchID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batch)
}

// ListNotes returns the production log of a batch, newest first
func (h *BatchHandler) ListNotes(c *gin.Context) {
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

	notes, err := h.batchService.ListNotes(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]BatchNoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, BatchNoteResponse{
			ID:        n.ID,
			Status:    n.Status.String(),
			Note:      n.Note,
			CreatedAt: n.CreatedAt,
		})
	}

	h.Success(c, resp)
}

// toFilter converts list query parameters to a repository filter
func toFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}
