package brewing

import (
	"testing"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pricingFixtures(t *testing.T) (*catalog.Item, *brewing.RecipeSnapshot) {
	t.Helper()
	item, err := catalog.NewItem(uuid.New(), "BEER", "IPA bulk", catalog.ItemTypeProduct)
	require.NoError(t, err)
	item.CostPrice = decimal.RequireFromString("20")

	recipe := &brewing.RecipeSnapshot{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(item.TenantID),
		BatchSizeL:          decimal.RequireFromString("100"),
		CostPrice:           decimal.RequireFromString("1500"),
	}
	return item, recipe
}

func TestPricingResolver_UnitPrice(t *testing.T) {
	resolver := NewPricingResolver(zap.NewNop())
	item, recipe := pricingFixtures(t)

	tests := []struct {
		name   string
		mode   catalog.PricingMode
		recipe *brewing.RecipeSnapshot
		want   *string
	}{
		{"fixed reads item cost", catalog.PricingModeFixed, recipe, ptr("20")},
		{"recipe calc divides cost by batch size", catalog.PricingModeRecipeCalc, recipe, ptr("15")},
		{"recipe calc without recipe falls back to item", catalog.PricingModeRecipeCalc, nil, ptr("20")},
		{"actual costs resolves to nothing", catalog.PricingModeActualCosts, recipe, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.UnitPrice(tt.mode, item, tt.recipe)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(decimal.RequireFromString(*tt.want)), "got %s", got)
		})
	}
}

func TestReceiptLinePrice(t *testing.T) {
	bottle, err := catalog.NewItem(uuid.New(), "BTL", "0.5L bottle", catalog.ItemTypePackaged)
	require.NoError(t, err)
	bottle.BaseItemQuantity = dec("0.5")
	bottle.PackagingCost = dec("2")
	bottle.FillingCost = dec("1")
	bottle.CostPrice = dec("7")

	production := dec("20")

	// packaged: 20 x 0.5 + 2 + 1 = 13
	got := ReceiptLinePrice(&production, bottle, brewing.BottlingKindPackaged)
	assert.True(t, got.Equal(dec("13")), "got %s", got)

	// bulk lines take the production price directly
	got = ReceiptLinePrice(&production, bottle, brewing.BottlingKindBulk)
	assert.True(t, got.Equal(dec("20")))

	// no production price: the line's own item cost
	got = ReceiptLinePrice(nil, bottle, brewing.BottlingKindPackaged)
	assert.True(t, got.Equal(dec("7")))
}
