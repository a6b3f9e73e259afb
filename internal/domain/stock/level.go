package stock

import (
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevel is the running on-hand aggregate for one item at one warehouse.
// Rows are maintained as an opaque side effect of confirming stock documents;
// nothing else in this module reads them for business decisions.
type StockLevel struct {
	shared.TenantAggregateRoot
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_key,priority:2"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_level_key,priority:3"`
	OnHand      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a zero on-hand row for an item/warehouse pair
func NewStockLevel(tenantID, itemID, warehouseID uuid.UUID) *StockLevel {
	return &StockLevel{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ItemID:              itemID,
		WarehouseID:         warehouseID,
		OnHand:              decimal.Zero,
	}
}

// Apply adjusts the on-hand quantity by a signed delta
func (l *StockLevel) Apply(delta decimal.Decimal) {
	l.OnHand = l.OnHand.Add(delta)
	l.IncrementVersion()
}
