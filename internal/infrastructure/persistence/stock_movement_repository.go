package persistence

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements stock.StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a movement. Movements are immutable history.
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *stock.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindOutByIssueLines returns the OUT movements caused by the given document lines
func (r *GormStockMovementRepository) FindOutByIssueLines(ctx context.Context, tenantID uuid.UUID, issueLineIDs []uuid.UUID) ([]stock.StockMovement, error) {
	if len(issueLineIDs) == 0 {
		return nil, nil
	}
	var movements []stock.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND direction = ? AND issue_line_id IN ?",
			tenantID, stock.MovementDirectionOut, issueLineIDs).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByBatch returns every movement linked to a batch, oldest first
func (r *GormStockMovementRepository) FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]stock.StockMovement, error) {
	var movements []stock.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
