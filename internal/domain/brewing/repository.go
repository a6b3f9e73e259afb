package brewing

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BatchRepository defines persistence operations for batches
type BatchRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Batch, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Batch, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, batch *Batch) error
}

// EquipmentRepository defines persistence operations for brewing equipment.
// FindByIDForUpdate takes a row lock so two batches cannot claim the same
// unit concurrently; it must only be called inside a transaction scope.
type EquipmentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Equipment, error)
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Equipment, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Equipment, error)
	Save(ctx context.Context, equipment *Equipment) error
}

// RecipeRepository reads recipe snapshots. Snapshots are created by the
// recipe module at batch-planning time and are immutable here.
type RecipeRepository interface {
	// FindByIDForTenant loads a snapshot with its ingredient lines ordered by
	// sort order.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*RecipeSnapshot, error)
}

// BatchNoteRepository appends audit notes
type BatchNoteRepository interface {
	Append(ctx context.Context, note *BatchNote) error
	FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]BatchNote, error)
}

// BottlingItemRepository defines persistence operations for bottling rows.
// ReplaceForBatch implements the delete-then-insert contract: the previous
// rows of the batch are removed and the given ones inserted atomically.
type BottlingItemRepository interface {
	FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]BottlingItem, error)
	ReplaceForBatch(ctx context.Context, tenantID, batchID uuid.UUID, items []BottlingItem) error
}
