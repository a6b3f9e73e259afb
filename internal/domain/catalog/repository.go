package catalog

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for catalog items
type ItemRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Item, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Item, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Item, error)
	Save(ctx context.Context, item *Item) error
}

// UnitRepository defines persistence operations for units of measure
type UnitRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Unit, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Unit, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Unit, error)
	Save(ctx context.Context, unit *Unit) error
}

// WarehouseRepository defines persistence operations for warehouses
type WarehouseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)
	// FindOperational resolves the warehouse production documents post to:
	// the tenant default if set and active, otherwise the first active
	// warehouse. Returns shared.ErrNotFound when none is active.
	FindOperational(ctx context.Context, tenantID uuid.UUID) (*Warehouse, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Warehouse, error)
	Save(ctx context.Context, warehouse *Warehouse) error
}

// TenantSettingsRepository defines persistence operations for tenant settings
type TenantSettingsRepository interface {
	// FindForTenant returns the tenant's settings row, or defaults when the
	// tenant has never saved any.
	FindForTenant(ctx context.Context, tenantID uuid.UUID) (*TenantSettings, error)
	Save(ctx context.Context, settings *TenantSettings) error
}
