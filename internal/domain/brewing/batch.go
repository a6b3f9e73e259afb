package brewing

import (
	"strings"
	"time"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchStatus represents where a batch is in its production lifecycle
type BatchStatus string

const (
	BatchStatusPlanned      BatchStatus = "PLANNED"
	BatchStatusBrewing      BatchStatus = "BREWING"
	BatchStatusFermenting   BatchStatus = "FERMENTING"
	BatchStatusConditioning BatchStatus = "CONDITIONING"
	BatchStatusCarbonating  BatchStatus = "CARBONATING"
	BatchStatusPackaging    BatchStatus = "PACKAGING"
	BatchStatusCompleted    BatchStatus = "COMPLETED"
	BatchStatusDumped       BatchStatus = "DUMPED"
)

// IsValid checks if the status is a known BatchStatus
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusPlanned, BatchStatusBrewing, BatchStatusFermenting,
		BatchStatusConditioning, BatchStatusCarbonating, BatchStatusPackaging,
		BatchStatusCompleted, BatchStatusDumped:
		return true
	}
	return false
}

// String returns the string representation of BatchStatus
func (s BatchStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states a batch never leaves
func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusCompleted || s == BatchStatusDumped
}

// IsActive returns true while the batch occupies brewing equipment
// (brewing through packaging). This is the single source of truth for
// "active": equipment handling must never use its own status list.
func (s BatchStatus) IsActive() bool {
	switch s {
	case BatchStatusBrewing, BatchStatusFermenting, BatchStatusConditioning,
		BatchStatusCarbonating, BatchStatusPackaging:
		return true
	}
	return false
}

// next returns the linear successor of a status, or "" for terminal states.
func (s BatchStatus) next() BatchStatus {
	switch s {
	case BatchStatusPlanned:
		return BatchStatusBrewing
	case BatchStatusBrewing:
		return BatchStatusFermenting
	case BatchStatusFermenting:
		return BatchStatusConditioning
	case BatchStatusConditioning:
		return BatchStatusCarbonating
	case BatchStatusCarbonating:
		return BatchStatusPackaging
	case BatchStatusPackaging:
		return BatchStatusCompleted
	}
	return ""
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are strictly linear; dumping is allowed from any non-terminal
// state and bypasses the linear table.
func (s BatchStatus) CanTransitionTo(target BatchStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == BatchStatusDumped {
		return true
	}
	return s.next() == target
}

// Batch is the aggregate root for one brewed batch. It is created when the
// batch is planned and is never physically deleted: dumping is a terminal
// status, not removal.
//
// RecipeID references the immutable per-batch recipe snapshot, not the live
// recipe the snapshot was taken from.
type Batch struct {
	shared.TenantAggregateRoot
	BatchNumber string      `gorm:"size:50;not null;uniqueIndex:idx_batch_tenant_number,priority:2"`
	Status      BatchStatus `gorm:"size:20;not null;index"`
	RecipeID    *uuid.UUID  `gorm:"type:uuid;index"`
	ItemID      *uuid.UUID  `gorm:"type:uuid;index"` // the bulk production good
	EquipmentID *uuid.UUID  `gorm:"type:uuid;index"`

	BrewDate    *time.Time
	EndBrewDate *time.Time
	BottledDate *time.Time

	// ActualVolumeL is the measured tank volume in liters; packaging loss is
	// recomputed against it on every bottling save.
	ActualVolumeL  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	PackagingLossL *decimal.Decimal `gorm:"type:decimal(18,4)"`
	LotNumber      string           `gorm:"size:50"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// NewBatch plans a new batch
func NewBatch(tenantID uuid.UUID, batchNumber string, recipeID, itemID, equipmentID *uuid.UUID) (*Batch, error) {
	batchNumber = strings.TrimSpace(batchNumber)
	if batchNumber == "" || len(batchNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number must be 1-50 characters")
	}

	batch := &Batch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BatchNumber:         batchNumber,
		Status:              BatchStatusPlanned,
		RecipeID:            recipeID,
		ItemID:              itemID,
		EquipmentID:         equipmentID,
	}
	batch.AddDomainEvent(NewBatchPlannedEvent(batch))
	return batch, nil
}

// Transition moves the batch to a new lifecycle status. Validation errors are
// reported before any field changes: an invalid move leaves the batch intact.
//
// Dumping requires a note. Entering brewing stamps BrewDate once; entering a
// terminal state stamps EndBrewDate once. Equipment claim/release is a
// service-level side effect keyed off the status change, not done here.
func (b *Batch) Transition(newStatus BatchStatus, note string) error {
	if !newStatus.IsValid() {
		return ErrInvalidTransition(b.Status, newStatus)
	}
	if !b.Status.CanTransitionTo(newStatus) {
		return ErrInvalidTransition(b.Status, newStatus)
	}
	if newStatus == BatchStatusDumped && strings.TrimSpace(note) == "" {
		return ErrNoteRequired
	}

	oldStatus := b.Status
	now := time.Now()

	b.Status = newStatus
	if newStatus == BatchStatusBrewing && b.BrewDate == nil {
		b.BrewDate = &now
	}
	if newStatus.IsTerminal() && b.EndBrewDate == nil {
		b.EndBrewDate = &now
	}
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBatchStatusChangedEvent(b, oldStatus, newStatus, note))
	return nil
}

// SetActualVolume records the measured tank volume in liters
func (b *Batch) SetActualVolume(liters decimal.Decimal) error {
	if liters.IsNegative() {
		return shared.NewDomainError("INVALID_VOLUME", "Actual volume cannot be negative")
	}
	b.ActualVolumeL = &liters
	b.Touch()
	return nil
}

// RecordBottling updates the bottling facts on the batch: the bottled date
// (when supplied) and the recomputed packaging loss. Loss is the difference
// between the measured tank volume and the bottled base units; it is nil when
// no positive tank volume is known.
func (b *Batch) RecordBottling(bottledDate *time.Time, totalBaseUnits decimal.Decimal) {
	if bottledDate != nil {
		b.BottledDate = bottledDate
	}
	if b.ActualVolumeL != nil && b.ActualVolumeL.IsPositive() {
		loss := b.ActualVolumeL.Sub(totalBaseUnits)
		b.PackagingLossL = &loss
	} else {
		b.PackagingLossL = nil
	}
	b.Touch()
	b.IncrementVersion()
	b.AddDomainEvent(NewBottlingRecordedEvent(b, totalBaseUnits))
}

// AssignEquipment changes the batch's equipment reference. Claim/release of
// the physical units happens in the application service, inside the same
// transaction.
func (b *Batch) AssignEquipment(equipmentID *uuid.UUID) {
	b.EquipmentID = equipmentID
	b.Touch()
	b.IncrementVersion()
}

// SetLotNumber sets the lot number stamped onto receipt lines
func (b *Batch) SetLotNumber(lot string) {
	b.LotNumber = strings.TrimSpace(lot)
	b.Touch()
}

// HasRecipe returns true when the batch references a recipe snapshot
func (b *Batch) HasRecipe() bool {
	return b.RecipeID != nil && *b.RecipeID != uuid.Nil
}

// HasProductionItem returns true when the batch knows its production good
func (b *Batch) HasProductionItem() bool {
	return b.ItemID != nil && *b.ItemID != uuid.Nil
}
