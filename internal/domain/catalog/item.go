package catalog

import (
	"strings"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemType classifies what a catalog item is used for
type ItemType string

const (
	ItemTypeIngredient ItemType = "INGREDIENT" // malt, hops, yeast, adjuncts
	ItemTypeProduct    ItemType = "PRODUCT"    // bulk production good (beer in liters)
	ItemTypePackaged   ItemType = "PACKAGED"   // packaged sales good (bottle, keg, can)
)

// IsValid checks if the type is a known ItemType
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeIngredient, ItemTypeProduct, ItemTypePackaged:
		return true
	}
	return false
}

// Item is a catalog item: an ingredient consumed by recipes, the bulk
// production good a batch produces, or a packaged good filled from it.
//
// StockUnitID is the unit on-hand inventory is tracked in. It may be nil,
// in which case stock is tracked in whatever unit the quantity was
// authored in (conversion factor ratio 1).
type Item struct {
	shared.TenantAggregateRoot
	SKU         string    `gorm:"size:50;not null;uniqueIndex:idx_item_tenant_sku,priority:2"`
	Name        string    `gorm:"size:200;not null"`
	Type        ItemType  `gorm:"size:20;not null;index"`
	StockUnitID *uuid.UUID `gorm:"type:uuid"`

	// CostPrice is the item's own cost per stock unit. For production goods
	// under fixed pricing this is the per-liter production cost.
	CostPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// Packaged goods only: how many base units (liters) of the bulk product
	// one piece contains, plus per-piece packaging material and filling labor
	// costs rolled into the receipt line price.
	BaseItemQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PackagingCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FillingCost      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	IsActive bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(tenantID uuid.UUID, sku, name string, itemType ItemType) (*Item, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)

	if sku == "" || len(sku) > 50 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU must be 1-50 characters")
	}
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name must be 1-200 characters")
	}
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Unknown item type")
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		Name:                name,
		Type:                itemType,
		CostPrice:           decimal.Zero,
		BaseItemQuantity:    decimal.Zero,
		PackagingCost:       decimal.Zero,
		FillingCost:         decimal.Zero,
		IsActive:            true,
	}, nil
}

// HasStockUnit returns true when the item declares an explicit stock unit
func (i *Item) HasStockUnit() bool {
	return i.StockUnitID != nil && *i.StockUnitID != uuid.Nil
}
