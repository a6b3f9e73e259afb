package brewing

import (
	"context"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the production
// repositories. Every multi-step mutation in this package (lifecycle
// transition, issue creation, receipt creation, bottling save) runs inside
// Execute: all repository operations inside the function share one database
// transaction and commit or roll back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. Repositories returned by one instance share the same
// underlying transaction.
type TransactionalRepositories interface {
	BatchRepo() brewing.BatchRepository
	EquipmentRepo() brewing.EquipmentRepository
	RecipeRepo() brewing.RecipeRepository
	NoteRepo() brewing.BatchNoteRepository
	BottlingRepo() brewing.BottlingItemRepository
	IssueRepo() stock.StockIssueRepository
	MovementRepo() stock.StockMovementRepository
	LevelRepo() stock.StockLevelRepository
	ItemRepo() catalog.ItemRepository
	UnitRepo() catalog.UnitRepository
	WarehouseRepo() catalog.WarehouseRepository
	SettingsRepo() catalog.TenantSettingsRepository
}

// NoOpTransactionScope runs the function without a real transaction. Used in
// tests, where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	Repos TransactionalRepositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over fixed repositories
func NewNoOpTransactionScope(repos TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{Repos: repos}
}

// Execute runs the function against the fixed repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.Repos)
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
