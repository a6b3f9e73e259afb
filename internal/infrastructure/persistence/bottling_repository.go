package persistence

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBottlingItemRepository implements brewing.BottlingItemRepository using GORM
type GormBottlingItemRepository struct {
	db *gorm.DB
}

// NewGormBottlingItemRepository creates a new GormBottlingItemRepository
func NewGormBottlingItemRepository(db *gorm.DB) *GormBottlingItemRepository {
	return &GormBottlingItemRepository{db: db}
}

// FindByBatch lists the bottling rows of a batch in insertion order
func (r *GormBottlingItemRepository) FindByBatch(ctx context.Context, tenantID, batchID uuid.UUID) ([]brewing.BottlingItem, error) {
	var items []brewing.BottlingItem
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceForBatch deletes the previous rows of the batch and inserts the new
// ones. Callers run this inside a transaction scope so the swap is atomic.
func (r *GormBottlingItemRepository) ReplaceForBatch(ctx context.Context, tenantID, batchID uuid.UUID, items []brewing.BottlingItem) error {
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_id = ?", tenantID, batchID).
		Delete(&brewing.BottlingItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
