package brewing

import (
	"context"
	"testing"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture wires the services over in-memory repositories
type fixture struct {
	t         *testing.T
	tenantID  uuid.UUID
	repos     *memRepos
	scope     *NoOpTransactionScope
	publisher *capturingPublisher
	numberer  *stubNumberer
	logger    *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	repos := newMemRepos()
	return &fixture{
		t:         t,
		tenantID:  uuid.New(),
		repos:     repos,
		scope:     NewNoOpTransactionScope(repos),
		publisher: &capturingPublisher{},
		numberer:  &stubNumberer{},
		logger:    zap.NewNop(),
	}
}

func (f *fixture) batchService() *BatchService {
	return NewBatchService(f.scope, f.repos.batches, f.repos.notes, f.numberer, f.publisher, f.logger)
}

func (f *fixture) issueService() *IssueService {
	return NewIssueService(f.scope, f.repos.batches, f.repos.recipes, f.repos.items, f.repos.units,
		f.repos.issues, f.repos.movements, f.numberer, f.publisher, f.logger)
}

func (f *fixture) bottlingService() *BottlingService {
	return NewBottlingService(f.scope, f.repos.batches, f.repos.bottling, f.publisher, f.logger)
}

func (f *fixture) receiptService() *ReceiptService {
	return NewReceiptService(f.scope, f.repos.issues, f.numberer, NewPricingResolver(f.logger), f.publisher, f.logger)
}

func (f *fixture) equipmentService() *EquipmentService {
	return NewEquipmentService(f.scope, f.repos.equipment, f.logger)
}

func (f *fixture) seedUnit(code string, kind catalog.UnitKind, factor string) *catalog.Unit {
	unit, err := catalog.NewUnit(f.tenantID, code, code, kind, decimal.RequireFromString(factor))
	require.NoError(f.t, err)
	require.NoError(f.t, f.repos.units.Save(context.Background(), unit))
	return unit
}

func (f *fixture) seedItem(sku string, itemType catalog.ItemType, mutate func(*catalog.Item)) *catalog.Item {
	item, err := catalog.NewItem(f.tenantID, sku, sku, itemType)
	require.NoError(f.t, err)
	if mutate != nil {
		mutate(item)
	}
	require.NoError(f.t, f.repos.items.Save(context.Background(), item))
	return item
}

func (f *fixture) seedWarehouse(code string, isDefault bool) *catalog.Warehouse {
	warehouse, err := catalog.NewWarehouse(f.tenantID, code, code)
	require.NoError(f.t, err)
	warehouse.IsDefault = isDefault
	require.NoError(f.t, f.repos.warehouses.Save(context.Background(), warehouse))
	return warehouse
}

func (f *fixture) seedEquipment(name string) *brewing.Equipment {
	equipment, err := brewing.NewEquipment(f.tenantID, name, nil)
	require.NoError(f.t, err)
	require.NoError(f.t, f.repos.equipment.Save(context.Background(), equipment))
	return equipment
}

func (f *fixture) seedRecipe(batchSizeL, costPrice string, shelfLifeDays *int, items ...brewing.RecipeItem) *brewing.RecipeSnapshot {
	recipe := &brewing.RecipeSnapshot{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(f.tenantID),
		Name:                "test recipe",
		BatchSizeL:          decimal.RequireFromString(batchSizeL),
		CostPrice:           decimal.RequireFromString(costPrice),
		ShelfLifeDays:       shelfLifeDays,
	}
	for i := range items {
		items[i].RecipeID = recipe.ID
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	recipe.Items = items
	f.repos.recipes.put(recipe)
	return recipe
}

func (f *fixture) seedBatch(recipeID, itemID, equipmentID *uuid.UUID) *brewing.Batch {
	batch, err := brewing.NewBatch(f.tenantID, "BATCH-0001", recipeID, itemID, equipmentID)
	require.NoError(f.t, err)
	batch.ClearDomainEvents()
	require.NoError(f.t, f.repos.batches.Save(context.Background(), batch))
	return batch
}

func (f *fixture) reloadBatch(id uuid.UUID) *brewing.Batch {
	batch, err := f.repos.batches.FindByIDForTenant(context.Background(), f.tenantID, id)
	require.NoError(f.t, err)
	return batch
}

func (f *fixture) reloadEquipment(id uuid.UUID) *brewing.Equipment {
	equipment, err := f.repos.equipment.FindByIDForUpdate(context.Background(), f.tenantID, id)
	require.NoError(f.t, err)
	return equipment
}

func (f *fixture) setPricingMode(mode catalog.PricingMode) {
	settings := catalog.NewTenantSettings(f.tenantID)
	settings.ProductionPricingMode = mode
	require.NoError(f.t, f.repos.settings.Save(context.Background(), settings))
}

func recipeItem(itemID, unitID uuid.UUID, amount string, sortOrder int) brewing.RecipeItem {
	return brewing.RecipeItem{
		ID:        uuid.New(),
		ItemID:    itemID,
		UnitID:    unitID,
		Amount:    decimal.RequireFromString(amount),
		SortOrder: sortOrder,
	}
}

func ptr[T any](v T) *T { return &v }

// assertDomainCode checks that err is a domain error carrying the given code
func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
