package persistence

import (
	"context"

	appbrewing "github.com/brewhouse/backend/internal/application/brewing"
	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransactionScope implements the production TransactionScope using GORM
// transactions: every repository handed to the function shares one
// transaction and commits or rolls back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appbrewing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides transaction-scoped repositories
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) BatchRepo() brewing.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *gormTransactionalRepositories) EquipmentRepo() brewing.EquipmentRepository {
	return NewGormEquipmentRepository(r.tx)
}

func (r *gormTransactionalRepositories) RecipeRepo() brewing.RecipeRepository {
	return NewGormRecipeRepository(r.tx)
}

func (r *gormTransactionalRepositories) NoteRepo() brewing.BatchNoteRepository {
	return NewGormBatchNoteRepository(r.tx)
}

func (r *gormTransactionalRepositories) BottlingRepo() brewing.BottlingItemRepository {
	return NewGormBottlingItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) IssueRepo() stock.StockIssueRepository {
	return NewGormStockIssueRepository(r.tx)
}

func (r *gormTransactionalRepositories) MovementRepo() stock.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *gormTransactionalRepositories) LevelRepo() stock.StockLevelRepository {
	return NewGormStockLevelRepository(r.tx)
}

func (r *gormTransactionalRepositories) ItemRepo() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) UnitRepo() catalog.UnitRepository {
	return NewGormUnitRepository(r.tx)
}

func (r *gormTransactionalRepositories) WarehouseRepo() catalog.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

func (r *gormTransactionalRepositories) SettingsRepo() catalog.TenantSettingsRepository {
	return NewGormTenantSettingsRepository(r.tx)
}

var _ appbrewing.TransactionScope = (*GormTransactionScope)(nil)
var _ appbrewing.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
