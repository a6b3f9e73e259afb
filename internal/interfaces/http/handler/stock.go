package handler

import (
	"time"

	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/brewhouse/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler handles read-only stock API endpoints
type StockHandler struct {
	BaseHandler
	stockService *appbrewing.StockQueryService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *appbrewing.StockQueryService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// StockLevelResponse represents one on-hand row
type StockLevelResponse struct {
	ItemID      uuid.UUID       `json:"item_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	OnHand      decimal.Decimal `json:"on_hand"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockMovementResponse represents one posted movement
type StockMovementResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	Direction   string          `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LotNumber   string          `json:"lot_number,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListLevels returns on-hand rows for the tenant
func (h *StockHandler) ListLevels(c *gin.Context) {
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

	levels, err := h.stockService.ListLevels(c.Request.Context(), tenantID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		resp = append(resp, StockLevelResponse{
			ItemID:      l.ItemID,
			WarehouseID: l.WarehouseID,
			OnHand:      l.OnHand,
			UpdatedAt:   l.UpdatedAt,
		})
	}

	h.Success(c, resp)
}

// ListBatchMovements returns the movement trail of a batch
func (h *StockHandler) ListBatchMovements(c *gin.Context) {
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

	movements, err := h.stockService.ListBatchMovements(c.Request.Context(), tenantID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		resp = append(resp, StockMovementResponse{
			ID:          m.ID,
			ItemID:      m.ItemID,
			WarehouseID: m.WarehouseID,
			Direction:   string(m.Direction),
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			LotNumber:   m.LotNumber,
			CreatedAt:   m.CreatedAt,
		})
	}

	h.Success(c, resp)
}
