package catalog

import (
	"strings"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Warehouse is a physical stock location. Production documents resolve one
// warehouse per operation: the tenant default when set, else the first
// active one.
type Warehouse struct {
	shared.TenantAggregateRoot
	Code      string `gorm:"size:20;not null;uniqueIndex:idx_warehouse_tenant_code,priority:2"`
	Name      string `gorm:"size:100;not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	IsDefault bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(tenantID uuid.UUID, code, name string) (*Warehouse, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	name = strings.TrimSpace(name)

	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE_CODE", "Warehouse code must be 1-20 characters")
	}
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE_NAME", "Warehouse name must be 1-100 characters")
	}

	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		IsActive:            true,
	}, nil
}
