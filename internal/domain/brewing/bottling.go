package brewing

import (
	"time"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BottlingKind says whether a bottling row counts packaged pieces or bulk
// liters. It drives the cost formula on the production receipt line.
type BottlingKind string

const (
	BottlingKindPackaged BottlingKind = "PACKAGED" // quantity = pieces
	BottlingKindBulk     BottlingKind = "BULK"     // quantity = liters
)

// IsValid checks if the kind is a known BottlingKind
func (k BottlingKind) IsValid() bool {
	return k == BottlingKindPackaged || k == BottlingKindBulk
}

// BottlingItem is one row of a batch's packaged/bulk output: how much of one
// item was filled from the tank. BaseUnits is always liters
// (quantity x unit size). Rows are replaced wholesale on every save, never
// patched line by line.
type BottlingItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	Kind      BottlingKind    `gorm:"size:20;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BaseUnits decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (BottlingItem) TableName() string {
	return "bottling_items"
}

// NewBottlingItem creates one bottling row. unitSize is how many liters one
// unit of quantity represents: the item's fill size for packaged rows, 1 for
// bulk rows.
func NewBottlingItem(tenantID, batchID, itemID uuid.UUID, kind BottlingKind, quantity, unitSize decimal.Decimal) (*BottlingItem, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_BOTTLING_KIND", "Unknown bottling kind")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Bottling quantity must be positive")
	}
	if unitSize.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UNIT_SIZE", "Unit size must be positive")
	}

	return &BottlingItem{
		ID:        uuid.New(),
		TenantID:  tenantID,
		BatchID:   batchID,
		ItemID:    itemID,
		Kind:      kind,
		Quantity:  quantity,
		BaseUnits: quantity.Mul(unitSize),
		CreatedAt: time.Now(),
	}, nil
}

// TotalBaseUnits sums the liters across bottling rows
func TotalBaseUnits(items []BottlingItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.BaseUnits)
	}
	return total
}
