package catalog

import (
	"strings"

	"github.com/brewhouse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitKind groups units that share a base unit. Conversions are only defined
// between units of the same kind.
type UnitKind string

const (
	UnitKindMass   UnitKind = "MASS"   // base unit: kilogram
	UnitKindVolume UnitKind = "VOLUME" // base unit: liter
	UnitKindCount  UnitKind = "COUNT"  // base unit: piece
)

// IsValid checks if the kind is a known UnitKind
func (k UnitKind) IsValid() bool {
	switch k {
	case UnitKindMass, UnitKindVolume, UnitKindCount:
		return true
	}
	return false
}

// Unit is a unit of measure. Every unit carries a conversion factor to the
// shared base unit of its kind: 1 of this unit = ToBaseFactor base units.
// Grams are stored with factor 0.001 (base kg), milliliters with 0.001 (base L).
type Unit struct {
	shared.TenantAggregateRoot
	Code         string          `gorm:"size:20;not null;uniqueIndex:idx_unit_tenant_code,priority:2"`
	Name         string          `gorm:"size:50;not null"`
	Kind         UnitKind        `gorm:"size:10;not null"`
	ToBaseFactor decimal.Decimal `gorm:"type:decimal(18,6);not null"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a new unit of measure
func NewUnit(tenantID uuid.UUID, code, name string, kind UnitKind, toBaseFactor decimal.Decimal) (*Unit, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	name = strings.TrimSpace(name)

	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Unit code must be 1-20 characters")
	}
	if name == "" || len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_UNIT_NAME", "Unit name must be 1-50 characters")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT_KIND", "Unknown unit kind")
	}
	if toBaseFactor.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UNIT_FACTOR", "Conversion factor must be positive")
	}

	return &Unit{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		Kind:                kind,
		ToBaseFactor:        toBaseFactor,
	}, nil
}

// IsBaseUnit returns true if this unit is the base unit of its kind
func (u *Unit) IsBaseUnit() bool {
	return u.ToBaseFactor.Equal(decimal.NewFromInt(1))
}

// ToBase converts an amount expressed in this unit to base units
func (u *Unit) ToBase(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(u.ToBaseFactor)
}

// FromBase converts an amount expressed in base units to this unit
func (u *Unit) FromBase(baseAmount decimal.Decimal) decimal.Decimal {
	return baseAmount.Div(u.ToBaseFactor)
}

// Convert converts an amount from one unit into another via the shared base:
// result = amount * from.ToBaseFactor / to.ToBaseFactor.
// Returns an error when the units measure different kinds.
func Convert(amount decimal.Decimal, from, to *Unit) (decimal.Decimal, error) {
	if from == nil || to == nil {
		return decimal.Zero, shared.NewDomainError("INVALID_UNIT", "Both units are required for conversion")
	}
	if from.Kind != to.Kind {
		return decimal.Zero, shared.NewDomainError("UNIT_KIND_MISMATCH",
			"Cannot convert between "+string(from.Kind)+" and "+string(to.Kind))
	}
	if to.ToBaseFactor.IsZero() {
		return decimal.Zero, shared.NewDomainError("INVALID_UNIT_FACTOR", "Target conversion factor cannot be zero")
	}
	return amount.Mul(from.ToBaseFactor).Div(to.ToBaseFactor), nil
}

// ConvertFactor returns the multiplier that converts amounts in `from` into
// amounts in `to`. When either unit is missing the factor is 1, matching the
// rule that an item without a declared stock unit stocks in its recipe unit.
func ConvertFactor(from, to *Unit) decimal.Decimal {
	if from == nil || to == nil || to.ToBaseFactor.IsZero() {
		return decimal.NewFromInt(1)
	}
	return from.ToBaseFactor.Div(to.ToBaseFactor)
}
