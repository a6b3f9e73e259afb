package brewing

import (
	"sort"

	"github.com/brewhouse/backend/internal/domain/brewing"
	"github.com/brewhouse/backend/internal/domain/catalog"
	"github.com/brewhouse/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// issuanceTolerance is the slack under which an outstanding stock quantity
// counts as fully issued. Quantities are stored at 4 decimal places, so
// anything at or below 1e-4 is conversion noise, not a real shortfall.
var issuanceTolerance = decimal.New(1, -4)

// LotShare is one lot's contribution to an issued ingredient line, in recipe
// units, traced back to the withdrawal line that moved it.
type LotShare struct {
	LotNumber   string          `json:"lot_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	IssueLineID uuid.UUID       `json:"issue_line_id"`
}

// IssuanceLine is the reconciliation result for one recipe ingredient line:
// what the recipe requires, what confirmed withdrawals have issued so far and
// what is still missing, in both the stock unit and the recipe display unit.
type IssuanceLine struct {
	RecipeItemID uuid.UUID  `json:"recipe_item_id"`
	ItemID       uuid.UUID  `json:"item_id"`
	ItemName     string     `json:"item_name"`
	SortOrder    int        `json:"sort_order"`
	RecipeUnitID uuid.UUID  `json:"recipe_unit_id"`
	StockUnitID  *uuid.UUID `json:"stock_unit_id,omitempty"`

	// Recipe display units
	RequiredQty decimal.Decimal `json:"required_qty"`
	IssuedQty   decimal.Decimal `json:"issued_qty"`
	MissingQty  decimal.Decimal `json:"missing_qty"`

	// Stock units
	RequiredStockQty decimal.Decimal `json:"required_stock_qty"`
	IssuedStockQty   decimal.Decimal `json:"issued_stock_qty"`
	MissingStockQty  decimal.Decimal `json:"missing_stock_qty"`

	Satisfied bool       `json:"satisfied"`
	Lots      []LotShare `json:"lots,omitempty"`
}

// IssuanceInput bundles everything the reconciliation needs. Services load it
// from the repositories; the computation itself touches no storage.
type IssuanceInput struct {
	Recipe         *brewing.RecipeSnapshot
	Items          map[uuid.UUID]catalog.Item
	Units          map[uuid.UUID]catalog.Unit
	ConfirmedLines []stock.StockIssueLine
	OutMovements   []stock.StockMovement
}

// ComputeIssuance reconciles a batch's recipe against its cumulative
// confirmed withdrawals.
//
// Per ingredient line: the recipe amount is converted into the item's stock
// unit (requiredStock = amount * recipeFactor / stockFactor, with the stock
// factor defaulting to the recipe factor when the item declares no stock
// unit); issued is the sum of IssuedQty over confirmed withdrawal lines
// referencing the ingredient line; missing is clamped at zero and never
// negative. Display quantities are converted back to recipe units through the
// inverse factor. The lot breakdown comes from the OUT movements of the
// confirmed lines.
func ComputeIssuance(in IssuanceInput) []IssuanceLine {
	// Confirmed issued stock per recipe ingredient line, and the document
	// lines fulfilling each, for the lot breakdown.
	issuedByRecipeItem := make(map[uuid.UUID]decimal.Decimal)
	linesByRecipeItem := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, line := range in.ConfirmedLines {
		if line.RecipeItemID == nil {
			continue
		}
		rid := *line.RecipeItemID
		issuedByRecipeItem[rid] = issuedByRecipeItem[rid].Add(line.IssuedQty)
		if linesByRecipeItem[rid] == nil {
			linesByRecipeItem[rid] = make(map[uuid.UUID]struct{})
		}
		linesByRecipeItem[rid][line.ID] = struct{}{}
	}

	movementsByLine := make(map[uuid.UUID][]stock.StockMovement)
	for _, m := range in.OutMovements {
		if m.Direction != stock.MovementDirectionOut {
			continue
		}
		movementsByLine[m.IssueLineID] = append(movementsByLine[m.IssueLineID], m)
	}

	recipeItems := make([]brewing.RecipeItem, len(in.Recipe.Items))
	copy(recipeItems, in.Recipe.Items)
	sort.SliceStable(recipeItems, func(i, j int) bool {
		return recipeItems[i].SortOrder < recipeItems[j].SortOrder
	})

	result := make([]IssuanceLine, 0, len(recipeItems))
	for _, ri := range recipeItems {
		line := IssuanceLine{
			RecipeItemID: ri.ID,
			ItemID:       ri.ItemID,
			SortOrder:    ri.SortOrder,
			RecipeUnitID: ri.UnitID,
			RequiredQty:  ri.Amount,
		}

		var recipeUnit, stockUnit *catalog.Unit
		if u, ok := in.Units[ri.UnitID]; ok {
			recipeUnit = &u
		}
		if item, ok := in.Items[ri.ItemID]; ok {
			line.ItemName = item.Name
			if item.HasStockUnit() {
				line.StockUnitID = item.StockUnitID
				if u, ok := in.Units[*item.StockUnitID]; ok {
					stockUnit = &u
				}
			}
		}

		// factor recipe->stock; its inverse takes stock back to display.
		toStock := catalog.ConvertFactor(recipeUnit, stockUnit)
		toRecipe := catalog.ConvertFactor(stockUnit, recipeUnit)

		line.RequiredStockQty = ri.Amount.Mul(toStock).Round(4)
		line.IssuedStockQty = issuedByRecipeItem[ri.ID]

		missing := line.RequiredStockQty.Sub(line.IssuedStockQty)
		if missing.IsNegative() {
			missing = decimal.Zero
		}
		line.MissingStockQty = missing
		line.Satisfied = missing.LessThanOrEqual(issuanceTolerance)

		line.IssuedQty = line.IssuedStockQty.Mul(toRecipe).Round(4)
		line.MissingQty = line.MissingStockQty.Mul(toRecipe).Round(4)

		for lineID := range linesByRecipeItem[ri.ID] {
			for _, m := range movementsByLine[lineID] {
				line.Lots = append(line.Lots, LotShare{
					LotNumber:   m.LotNumber,
					Quantity:    m.Quantity.Mul(toRecipe).Round(4),
					IssueLineID: m.IssueLineID,
				})
			}
		}
		sort.Slice(line.Lots, func(i, j int) bool {
			return line.Lots[i].LotNumber < line.Lots[j].LotNumber
		})

		result = append(result, line)
	}
	return result
}

// OutstandingLines filters the reconciliation down to lines that still need
// issuing.
func OutstandingLines(lines []IssuanceLine) []IssuanceLine {
	out := make([]IssuanceLine, 0, len(lines))
	for _, l := range lines {
		if !l.Satisfied {
			out = append(out, l)
		}
	}
	return out
}
