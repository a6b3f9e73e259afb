package handler

import (
	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles production receipt API endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *appbrewing.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *appbrewing.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create books the finished output of a batch into stock. The operation is
// idempotent per batch.
func (h *ReceiptHandler) Create(c *gin.Context) {
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

	result, err := h.receiptService.CreateReceipt(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns the production receipt of a batch
func (h *ReceiptHandler) Get(c *gin.Context) {
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

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}
