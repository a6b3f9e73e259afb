package stock

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockIssueRepository defines persistence operations for stock documents
type StockIssueRepository interface {
	// FindByIDForTenant loads a document with its lines ordered by line number
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockIssue, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockIssue, error)

	// FindActiveReceiptForBatch returns the non-cancelled PRODUCTION_IN
	// document of a batch, or shared.ErrNotFound. The existence check behind
	// receipt idempotency and the bottling freeze.
	FindActiveReceiptForBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*StockIssue, error)

	// FindConfirmedIssueLinesForBatch returns the lines of all confirmed
	// PRODUCTION_OUT documents of a batch, the input of issuance accounting.
	FindConfirmedIssueLinesForBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]StockIssueLine, error)

	// Save persists the document and replaces its lines to match the
	// aggregate state.
	Save(ctx context.Context, issue *StockIssue) error
}

// StockMovementRepository appends and queries immutable movement records
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	// FindOutByIssueLines returns OUT movements caused by the given document
	// lines, used for the lot breakdown of issued ingredients.
	FindOutByIssueLines(ctx context.Context, tenantID uuid.UUID, issueLineIDs []uuid.UUID) ([]StockMovement, error)
	FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]StockMovement, error)
}

// StockLevelRepository maintains the on-hand aggregate rows
type StockLevelRepository interface {
	// ApplyDelta adjusts the on-hand quantity of an item/warehouse pair by a
	// signed delta, creating the row when missing. Runs with a row lock
	// inside the surrounding transaction.
	ApplyDelta(ctx context.Context, tenantID, itemID, warehouseID uuid.UUID, delta decimal.Decimal) error
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockLevel, error)
}
