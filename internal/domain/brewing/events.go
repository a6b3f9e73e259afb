package brewing

import (
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeBatch     = "Batch"
	AggregateTypeEquipment = "Equipment"
)

// Event type constants
const (
	EventTypeBatchPlanned       = "BatchPlanned"
	EventTypeBatchStatusChanged = "BatchStatusChanged"
	EventTypeBottlingRecorded   = "BottlingRecorded"
	EventTypeEquipmentClaimed   = "EquipmentClaimed"
	EventTypeEquipmentReleased  = "EquipmentReleased"
)

// BatchPlannedEvent is raised when a new batch is planned
type BatchPlannedEvent struct {
	shared.BaseDomainEvent
	BatchID     uuid.UUID  `json:"batch_id"`
	BatchNumber string     `json:"batch_number"`
	RecipeID    *uuid.UUID `json:"recipe_id,omitempty"`
}

// NewBatchPlannedEvent creates a new BatchPlannedEvent
func NewBatchPlannedEvent(batch *Batch) *BatchPlannedEvent {
	return &BatchPlannedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchPlanned, AggregateTypeBatch, batch.ID, batch.TenantID),
		BatchID:         batch.ID,
		BatchNumber:     batch.BatchNumber,
		RecipeID:        batch.RecipeID,
	}
}

// EventType returns the event type name
func (e *BatchPlannedEvent) EventType() string {
	return EventTypeBatchPlanned
}

// BatchStatusChangedEvent is raised on every lifecycle transition
type BatchStatusChangedEvent struct {
	shared.BaseDomainEvent
	BatchID     uuid.UUID   `json:"batch_id"`
	BatchNumber string      `json:"batch_number"`
	FromStatus  BatchStatus `json:"from_status"`
	ToStatus    BatchStatus `json:"to_status"`
	Note        string      `json:"note,omitempty"`
}

// NewBatchStatusChangedEvent creates a new BatchStatusChangedEvent
func NewBatchStatusChangedEvent(batch *Batch, from, to BatchStatus, note string) *BatchStatusChangedEvent {
	return &BatchStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchStatusChanged, AggregateTypeBatch, batch.ID, batch.TenantID),
		BatchID:         batch.ID,
		BatchNumber:     batch.BatchNumber,
		FromStatus:      from,
		ToStatus:        to,
		Note:            note,
	}
}

// EventType returns the event type name
func (e *BatchStatusChangedEvent) EventType() string {
	return EventTypeBatchStatusChanged
}

// BottlingRecordedEvent is raised when a batch's bottling rows are replaced
type BottlingRecordedEvent struct {
	shared.BaseDomainEvent
	BatchID        uuid.UUID        `json:"batch_id"`
	TotalBaseUnits decimal.Decimal  `json:"total_base_units"`
	PackagingLossL *decimal.Decimal `json:"packaging_loss_l,omitempty"`
}

// NewBottlingRecordedEvent creates a new BottlingRecordedEvent
func NewBottlingRecordedEvent(batch *Batch, totalBaseUnits decimal.Decimal) *BottlingRecordedEvent {
	return &BottlingRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBottlingRecorded, AggregateTypeBatch, batch.ID, batch.TenantID),
		BatchID:         batch.ID,
		TotalBaseUnits:  totalBaseUnits,
		PackagingLossL:  batch.PackagingLossL,
	}
}

// EventType returns the event type name
func (e *BottlingRecordedEvent) EventType() string {
	return EventTypeBottlingRecorded
}

// EquipmentClaimedEvent is raised when equipment is claimed for a batch
type EquipmentClaimedEvent struct {
	shared.BaseDomainEvent
	EquipmentID uuid.UUID `json:"equipment_id"`
	BatchID     uuid.UUID `json:"batch_id"`
}

// NewEquipmentClaimedEvent creates a new EquipmentClaimedEvent
func NewEquipmentClaimedEvent(equipment *Equipment, batchID uuid.UUID) *EquipmentClaimedEvent {
	return &EquipmentClaimedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEquipmentClaimed, AggregateTypeEquipment, equipment.ID, equipment.TenantID),
		EquipmentID:     equipment.ID,
		BatchID:         batchID,
	}
}

// EventType returns the event type name
func (e *EquipmentClaimedEvent) EventType() string {
	return EventTypeEquipmentClaimed
}

// EquipmentReleasedEvent is raised when equipment becomes available again
type EquipmentReleasedEvent struct {
	shared.BaseDomainEvent
	EquipmentID uuid.UUID  `json:"equipment_id"`
	BatchID     *uuid.UUID `json:"batch_id,omitempty"`
}

// NewEquipmentReleasedEvent creates a new EquipmentReleasedEvent
func NewEquipmentReleasedEvent(equipment *Equipment, batchID *uuid.UUID) *EquipmentReleasedEvent {
	return &EquipmentReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEquipmentReleased, AggregateTypeEquipment, equipment.ID, equipment.TenantID),
		EquipmentID:     equipment.ID,
		BatchID:         batchID,
	}
}

// EventType returns the event type name
func (e *EquipmentReleasedEvent) EventType() string {
	return EventTypeEquipmentReleased
}
