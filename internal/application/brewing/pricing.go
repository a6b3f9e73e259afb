package brewing

import (
	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PricingResolver determines the per-liter production price used on receipt
// lines, according to the tenant's configured pricing mode.
type PricingResolver struct {
	logger *zap.Logger
}

func NewPricingResolver(logger *zap.Logger) *PricingResolver {
	return &PricingResolver{logger: logger}
}

// UnitPrice resolves the production price per liter, or nil when the mode
// resolves to no price and line items fall back to their own cost.
//
// FIXED reads the production item's stored cost price. RECIPE_CALC divides
// the recipe cost by its batch size, falling back to the item price when the
// batch has no recipe. ACTUAL_COSTS always resolves to nil; actual-cost
// valuation happens downstream of the receipt.
func (r *PricingResolver) UnitPrice(mode catalog.PricingMode, item *catalog.Item, recipe *brewing.RecipeSnapshot) *decimal.Decimal {
	switch mode {
	case catalog.PricingModeActualCosts:
		r.logger.Debug("pricing mode defers valuation", zap.String("mode", string(mode)))
		return nil
	case catalog.PricingModeRecipeCalc:
		if recipe != nil && !recipe.BatchSizeL.IsZero() {
			price := recipe.CostPerLiter().Round(4)
			return &price
		}
		r.logger.Debug("recipe pricing without usable recipe, falling back to item cost")
	}

	if item == nil {
		return nil
	}
	price := item.CostPrice
	return &price
}

// ReceiptLinePrice computes the unit price of one receipt line from the
// resolved production price. Packaged goods absorb the bulk value of their
// fill plus per-piece packaging and filling costs; bulk lines are priced at
// the production price directly. A nil production price means every line
// falls back to its own item's cost.
func ReceiptLinePrice(productionPrice *decimal.Decimal, item *catalog.Item, kind brewing.BottlingKind) decimal.Decimal {
	if productionPrice == nil {
		if item == nil {
			return decimal.Zero
		}
		return item.CostPrice
	}
	if kind == brewing.BottlingKindPackaged && item != nil {
		return productionPrice.Mul(item.BaseItemQuantity).
			Add(item.PackagingCost).
			Add(item.FillingCost).
			Round(4)
	}
	return *productionPrice
}
