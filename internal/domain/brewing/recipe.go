package brewing

import (
	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeSnapshot is the immutable per-batch copy of a recipe, taken when the
// batch is planned. Later edits to the live recipe never reach it. The
// snapshot mechanism itself lives outside this module; production only reads
// snapshots.
//
// CostPrice and BatchSizeL come from the brewing-science cost engine and are
// consumed as opaque decimals, never recomputed here.
type RecipeSnapshot struct {
	shared.TenantAggregateRoot
	Name          string           `gorm:"size:200;not null"`
	SourceID      *uuid.UUID       `gorm:"type:uuid;index"` // live recipe this was copied from
	BatchSizeL    decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ShelfLifeDays *int

	Items []RecipeItem `gorm:"foreignKey:RecipeID;references:ID"`
}

// TableName returns the table name for GORM
func (RecipeSnapshot) TableName() string {
	return "recipe_snapshots"
}

// RecipeItem is one ingredient line of a recipe snapshot. Amount is expressed
// in the recipe unit; the linked catalog item may track its stock in a
// different unit.
type RecipeItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RecipeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	UnitID    uuid.UUID       `gorm:"type:uuid;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SortOrder int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RecipeItem) TableName() string {
	return "recipe_items"
}

// CostPerLiter returns the recipe's total cost divided by its batch size,
// or zero when the batch size is unknown.
func (r *RecipeSnapshot) CostPerLiter() decimal.Decimal {
	if r.BatchSizeL.IsZero() {
		return decimal.Zero
	}
	return r.CostPrice.Div(r.BatchSizeL)
}
