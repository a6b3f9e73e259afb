package brewing

import (
	"time"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanBatchRequest is the payload for planning a new batch
type PlanBatchRequest struct {
	RecipeID      *uuid.UUID       `json:"recipe_id"`
	ItemID        *uuid.UUID       `json:"item_id"`
	EquipmentID   *uuid.UUID       `json:"equipment_id"`
	LotNumber     string           `json:"lot_number"`
	ActualVolumeL *decimal.Decimal `json:"actual_volume_l"`
}

// TransitionRequest moves a batch to a new lifecycle status
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// AssignEquipmentRequest changes the equipment of a batch. A nil equipment ID
// unassigns.
type AssignEquipmentRequest struct {
	EquipmentID *uuid.UUID `json:"equipment_id"`
}

// RefillIssueRequest relinks a draft withdrawal document to a batch and
// rebuilds its lines from that batch's shortfall.
type RefillIssueRequest struct {
	BatchID uuid.UUID `json:"batch_id" binding:"required"`
}

// UpdateBatchDetailsRequest updates measured facts on a batch
type UpdateBatchDetailsRequest struct {
	ActualVolumeL *decimal.Decimal `json:"actual_volume_l"`
	LotNumber     *string          `json:"lot_number"`
}

// BatchResponse represents a batch in API responses
type BatchResponse struct {
	ID             uuid.UUID        `json:"id"`
	BatchNumber    string           `json:"batch_number"`
	Status         string           `json:"status"`
	RecipeID       *uuid.UUID       `json:"recipe_id,omitempty"`
	ItemID         *uuid.UUID       `json:"item_id,omitempty"`
	EquipmentID    *uuid.UUID       `json:"equipment_id,omitempty"`
	BrewDate       *time.Time       `json:"brew_date,omitempty"`
	EndBrewDate    *time.Time       `json:"end_brew_date,omitempty"`
	BottledDate    *time.Time       `json:"bottled_date,omitempty"`
	ActualVolumeL  *decimal.Decimal `json:"actual_volume_l,omitempty"`
	PackagingLossL *decimal.Decimal `json:"packaging_loss_l,omitempty"`
	LotNumber      string           `json:"lot_number,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Version        int              `json:"version"`
}

// ToBatchResponse maps a batch aggregate to its response shape
func ToBatchResponse(b *brewing.Batch) BatchResponse {
	return BatchResponse{
		ID:             b.ID,
		BatchNumber:    b.BatchNumber,
		Status:         b.Status.String(),
		RecipeID:       b.RecipeID,
		ItemID:         b.ItemID,
		EquipmentID:    b.EquipmentID,
		BrewDate:       b.BrewDate,
		EndBrewDate:    b.EndBrewDate,
		BottledDate:    b.BottledDate,
		ActualVolumeL:  b.ActualVolumeL,
		PackagingLossL: b.PackagingLossL,
		LotNumber:      b.LotNumber,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		Version:        b.Version,
	}
}

// BottlingLineRequest is one packaged/bulk output row in a bottling save
type BottlingLineRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Kind     string          `json:"kind" binding:"required,oneof=PACKAGED BULK"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	// UnitSize is liters per quantity unit: the fill size for packaged rows,
	// omitted (treated as 1) for bulk rows.
	UnitSize *decimal.Decimal `json:"unit_size"`
}

// SaveBottlingRequest replaces all bottling rows of a batch
type SaveBottlingRequest struct {
	Lines       []BottlingLineRequest `json:"lines" binding:"required"`
	BottledDate *time.Time            `json:"bottled_date"`
}

// BottlingItemResponse represents one stored bottling row
type BottlingItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Kind      string          `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	BaseUnits decimal.Decimal `json:"base_units"`
}

// BottlingResponse is the result of a bottling save or query
type BottlingResponse struct {
	BatchID        uuid.UUID              `json:"batch_id"`
	Items          []BottlingItemResponse `json:"items"`
	TotalBaseUnits decimal.Decimal        `json:"total_base_units"`
	PackagingLossL *decimal.Decimal       `json:"packaging_loss_l,omitempty"`
	BottledDate    *time.Time             `json:"bottled_date,omitempty"`
}

// StockIssueLineResponse represents one document line
type StockIssueLineResponse struct {
	ID           uuid.UUID       `json:"id"`
	LineNo       int             `json:"line_no"`
	ItemID       uuid.UUID       `json:"item_id"`
	RecipeItemID *uuid.UUID      `json:"recipe_item_id,omitempty"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
	IssuedQty    decimal.Decimal `json:"issued_qty"`
	RemainingQty decimal.Decimal `json:"remaining_qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	LotNumber    string          `json:"lot_number,omitempty"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
}

// StockIssueResponse represents a stock document in API responses
type StockIssueResponse struct {
	ID          uuid.UUID                `json:"id"`
	Code        string                   `json:"code"`
	Type        string                   `json:"type"`
	Purpose     string                   `json:"purpose"`
	Status      string                   `json:"status"`
	BatchID     *uuid.UUID               `json:"batch_id,omitempty"`
	WarehouseID uuid.UUID                `json:"warehouse_id"`
	TotalCost   decimal.Decimal          `json:"total_cost"`
	ConfirmedAt *time.Time               `json:"confirmed_at,omitempty"`
	Lines       []StockIssueLineResponse `json:"lines"`
	CreatedAt   time.Time                `json:"created_at"`
}

// ToStockIssueResponse maps a stock document to its response shape
func ToStockIssueResponse(issue *stock.StockIssue) StockIssueResponse {
	lines := make([]StockIssueLineResponse, 0, len(issue.Lines))
	for _, l := range issue.Lines {
		lines = append(lines, StockIssueLineResponse{
			ID:           l.ID,
			LineNo:       l.LineNo,
			ItemID:       l.ItemID,
			RecipeItemID: l.RecipeItemID,
			RequestedQty: l.RequestedQty,
			IssuedQty:    l.IssuedQty,
			RemainingQty: l.RemainingQty,
			UnitPrice:    l.UnitPrice,
			TotalCost:    l.TotalCost,
			LotNumber:    l.LotNumber,
			ExpiryDate:   l.ExpiryDate,
		})
	}
	return StockIssueResponse{
		ID:          issue.ID,
		Code:        issue.Code,
		Type:        string(issue.Type),
		Purpose:     string(issue.Purpose),
		Status:      string(issue.Status),
		BatchID:     issue.BatchID,
		WarehouseID: issue.WarehouseID,
		TotalCost:   issue.TotalCost,
		ConfirmedAt: issue.ConfirmedAt,
		Lines:       lines,
		CreatedAt:   issue.CreatedAt,
	}
}

// CreateReceiptResult identifies the confirmed production receipt
type CreateReceiptResult struct {
	ReceiptID   uuid.UUID `json:"receipt_id"`
	ReceiptCode string    `json:"receipt_code"`
}

// IssuancePlanResponse is the ledger output for a batch
type IssuancePlanResponse struct {
	BatchID uuid.UUID      `json:"batch_id"`
	Lines   []IssuanceLine `json:"lines"`
}
