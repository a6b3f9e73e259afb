package catalog

import (
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PricingMode selects how the per-base-unit production price of a finished
// batch is resolved when stocking finished goods.
type PricingMode string

const (
	// PricingModeFixed reads the production item's stored cost price.
	PricingModeFixed PricingMode = "FIXED"
	// PricingModeRecipeCalc divides the recipe's total cost by its batch size.
	PricingModeRecipeCalc PricingMode = "RECIPE_CALC"
	// PricingModeActualCosts is reserved; it resolves to no price and callers
	// must fall back, never treat it as zero.
	PricingModeActualCosts PricingMode = "ACTUAL_COSTS"
)

// IsValid checks if the mode is a known PricingMode
func (m PricingMode) IsValid() bool {
	switch m {
	case PricingModeFixed, PricingModeRecipeCalc, PricingModeActualCosts:
		return true
	}
	return false
}

// TenantSettings holds per-tenant production configuration. One row per tenant.
type TenantSettings struct {
	shared.TenantAggregateRoot
	ProductionPricingMode PricingMode `gorm:"size:20;not null;default:'FIXED'"`
}

// TableName returns the table name for GORM
func (TenantSettings) TableName() string {
	return "tenant_settings"
}

// NewTenantSettings creates settings with defaults for a tenant
func NewTenantSettings(tenantID uuid.UUID) *TenantSettings {
	return &TenantSettings{
		TenantAggregateRoot:   shared.NewTenantAggregateRoot(tenantID),
		ProductionPricingMode: PricingModeFixed,
	}
}
