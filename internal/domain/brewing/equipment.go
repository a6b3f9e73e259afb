package brewing

import (
	"strings"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EquipmentStatus represents the availability of a piece of brewing equipment
type EquipmentStatus string

const (
	EquipmentStatusAvailable EquipmentStatus = "AVAILABLE"
	EquipmentStatusInUse     EquipmentStatus = "IN_USE"
)

// Equipment is a fermenter, brite tank or similar vessel. CurrentBatchID is a
// lookup-only back reference (equipment -> batch); the equipment's lifecycle
// is independent of any batch and a batch never owns its equipment row.
type Equipment struct {
	shared.TenantAggregateRoot
	Name           string           `gorm:"size:100;not null"`
	Status         EquipmentStatus  `gorm:"size:20;not null;index"`
	CapacityL      *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CurrentBatchID *uuid.UUID       `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Equipment) TableName() string {
	return "equipment"
}

// NewEquipment registers a new piece of equipment
func NewEquipment(tenantID uuid.UUID, name string, capacityL *decimal.Decimal) (*Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT_NAME", "Equipment name must be 1-100 characters")
	}
	if capacityL != nil && capacityL.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Equipment capacity cannot be negative")
	}

	return &Equipment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Status:              EquipmentStatusAvailable,
		CapacityL:           capacityL,
	}, nil
}

// ClaimFor marks the equipment as in use by the given batch. Re-claiming for
// the same batch is a no-op; claiming a unit held by another batch fails.
func (e *Equipment) ClaimFor(batchID uuid.UUID) error {
	if e.Status == EquipmentStatusInUse {
		if e.CurrentBatchID != nil && *e.CurrentBatchID == batchID {
			return nil
		}
		return ErrEquipmentInUse
	}
	e.Status = EquipmentStatusInUse
	e.CurrentBatchID = &batchID
	e.IncrementVersion()
	e.AddDomainEvent(NewEquipmentClaimedEvent(e, batchID))
	return nil
}

// Release frees the equipment. Releasing an already-available unit is a no-op.
func (e *Equipment) Release() {
	if e.Status == EquipmentStatusAvailable && e.CurrentBatchID == nil {
		return
	}
	batchID := e.CurrentBatchID
	e.Status = EquipmentStatusAvailable
	e.CurrentBatchID = nil
	e.IncrementVersion()
	e.AddDomainEvent(NewEquipmentReleasedEvent(e, batchID))
}
