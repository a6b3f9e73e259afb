package persistence

import (
	"context"
	"errors"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLevelRepository implements stock.StockLevelRepository using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// ApplyDelta adjusts the on-hand row of an item/warehouse pair, creating it
// when missing. The row is locked for the rest of the surrounding
// transaction so concurrent confirmations serialize per pair.
func (r *GormStockLevelRepository) ApplyDelta(ctx context.Context, tenantID, itemID, warehouseID uuid.UUID, delta decimal.Decimal) error {
	var level stock.StockLevel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND item_id = ? AND warehouse_id = ?", tenantID, itemID, warehouseID).
		First(&level).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		level = *stock.NewStockLevel(tenantID, itemID, warehouseID)
	}
	level.Apply(delta)
	return r.db.WithContext(ctx).Save(&level).Error
}

// FindForTenant lists on-hand rows for a tenant
func (r *GormStockLevelRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]stock.StockLevel, error) {
	var levels []stock.StockLevel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Offset(filter.Offset()).Limit(filter.Limit()).
		Order("item_id ASC, warehouse_id ASC").
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}
