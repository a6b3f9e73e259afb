package brewing

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// StockQueryService answers read-only stock questions: on-hand levels and
// the movement trail of a batch.
type StockQueryService struct {
	levelRepo    stock.StockLevelRepository
	movementRepo stock.StockMovementRepository
}

func NewStockQueryService(levelRepo stock.StockLevelRepository, movementRepo stock.StockMovementRepository) *StockQueryService {
	return &StockQueryService{levelRepo: levelRepo, movementRepo: movementRepo}
}

// ListLevels returns on-hand rows for the tenant
func (s *StockQueryService) ListLevels(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]stock.StockLevel, error) {
	return s.levelRepo.FindForTenant(ctx, tenantID, filter)
}

// ListBatchMovements returns every movement a batch caused, ingredient
// withdrawals and finished-goods receipts alike.
func (s *StockQueryService) ListBatchMovements(ctx context.Context, tenantID, batchID uuid.UUID) ([]stock.StockMovement, error) {
	return s.movementRepo.FindByBatch(ctx, tenantID, batchID)
}
