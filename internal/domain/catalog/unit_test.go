package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitOf(t *testing.T, code string, kind UnitKind, factor string) *Unit {
	t.Helper()
	unit, err := NewUnit(uuid.New(), code, code, kind, decimal.RequireFromString(factor))
	require.NoError(t, err)
	return unit
}

func TestConvert(t *testing.T) {
	gram := unitOf(t, "G", UnitKindMass, "0.001")
	kilogram := unitOf(t, "KG", UnitKindMass, "1")
	milliliter := unitOf(t, "ML", UnitKindVolume, "0.001")
	liter := unitOf(t, "L", UnitKindVolume, "1")

	tests := []struct {
		name   string
		amount string
		from   *Unit
		to     *Unit
		want   string
	}{
		{"grams to kilograms", "500", gram, kilogram, "0.5"},
		{"kilograms to grams", "2.5", kilogram, gram, "2500"},
		{"milliliters to liters", "330", milliliter, liter, "0.33"},
		{"same unit", "7", liter, liter, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(decimal.RequireFromString(tt.amount), tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestConvert_RoundTripIsLossless(t *testing.T) {
	gram := unitOf(t, "G", UnitKindMass, "0.001")
	kilogram := unitOf(t, "KG", UnitKindMass, "1")

	amount := decimal.RequireFromString("123.45")
	toKg, err := Convert(amount, gram, kilogram)
	require.NoError(t, err)
	back, err := Convert(toKg, kilogram, gram)
	require.NoError(t, err)
	assert.True(t, amount.Equal(back), "got %s", back)
}

func TestConvert_KindMismatch(t *testing.T) {
	gram := unitOf(t, "G", UnitKindMass, "0.001")
	liter := unitOf(t, "L", UnitKindVolume, "1")

	_, err := Convert(decimal.NewFromInt(1), gram, liter)
	require.Error(t, err)
}

func TestConvertFactor(t *testing.T) {
	gram := unitOf(t, "G", UnitKindMass, "0.001")
	kilogram := unitOf(t, "KG", UnitKindMass, "1")

	assert.True(t, ConvertFactor(gram, kilogram).Equal(decimal.RequireFromString("0.001")))
	assert.True(t, ConvertFactor(kilogram, gram).Equal(decimal.RequireFromString("1000")))

	// a missing unit on either side means no conversion happens
	one := decimal.NewFromInt(1)
	assert.True(t, ConvertFactor(nil, kilogram).Equal(one))
	assert.True(t, ConvertFactor(gram, nil).Equal(one))
}

func TestNewUnit_RejectsNonPositiveFactor(t *testing.T) {
	_, err := NewUnit(uuid.New(), "X", "x", UnitKindMass, decimal.Zero)
	require.Error(t, err)
	_, err = NewUnit(uuid.New(), "X", "x", UnitKindMass, decimal.RequireFromString("-1"))
	require.Error(t, err)
}
