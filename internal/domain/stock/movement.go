package stock

import (
	"time"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementDirection is the sign of a stock movement
type MovementDirection string

const (
	MovementDirectionIn  MovementDirection = "IN"
	MovementDirectionOut MovementDirection = "OUT"
)

// StockMovement is an immutable, append-only record of one quantity change
// for an item at a warehouse. Each movement links back to the document line
// that caused it and carries the batch for lot traceability.
type StockMovement struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Direction   MovementDirection `gorm:"size:3;not null"`
	Quantity    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	IssueLineID uuid.UUID         `gorm:"type:uuid;not null;index"`
	BatchID     *uuid.UUID        `gorm:"type:uuid;index"`
	LotNumber   string            `gorm:"size:50"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement record for a confirmed document line
func NewStockMovement(tenantID, itemID, warehouseID uuid.UUID, direction MovementDirection, quantity, unitPrice decimal.Decimal, issueLineID uuid.UUID, batchID *uuid.UUID, lotNumber string) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	if direction != MovementDirectionIn && direction != MovementDirectionOut {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Unknown movement direction")
	}

	return &StockMovement{
		ID:          uuid.New(),
		TenantID:    tenantID,
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Direction:   direction,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		IssueLineID: issueLineID,
		BatchID:     batchID,
		LotNumber:   lotNumber,
		CreatedAt:   time.Now(),
	}, nil
}

// SignedQuantity returns the quantity with its direction applied
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.Direction == MovementDirectionOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
