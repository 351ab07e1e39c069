package domain

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DeclarationOrder(t *testing.T) {
	want := []string{"TEMP", "SNDP", "PRCP", "WDSP", "VISIB", "SLP", "STP", "DEWP", "CLDC", "WNDDIR"}

	specs := Schema()
	require.Len(t, specs, NumFields)
	for i, spec := range specs {
		assert.Equal(t, Field(i), spec.Field)
		assert.Equal(t, want[i], spec.Tag)
		assert.Equal(t, want[i], spec.Field.String())
		assert.True(t, spec.Min.Cmp(spec.Max) < 0, spec.Tag)
		assert.NotEmpty(t, spec.Unit, spec.Tag)
	}
	assert.Equal(t, "°C", Temperature.Spec().Unit)
	assert.Equal(t, "mbar", SeaLevelPressure.Spec().Unit)
}

func TestSchema_ReturnsCopy(t *testing.T) {
	specs := Schema()
	specs[0].Tag = "MUTATED"
	assert.Equal(t, "TEMP", Temperature.Tag())
}

func TestFieldByTag(t *testing.T) {
	f, ok := FieldByTag("CLDC")
	assert.True(t, ok)
	assert.Equal(t, CloudCover, f)

	_, ok = FieldByTag("STN")
	assert.False(t, ok)
}

func TestField_Invalid(t *testing.T) {
	assert.False(t, Field(-1).Valid())
	assert.False(t, Field(NumFields).Valid())
	assert.Equal(t, "Field(10)", Field(NumFields).String())
	assert.Empty(t, Field(NumFields).Tag())
}

func TestFieldSpec_Contains(t *testing.T) {
	prcp := Precipitation.Spec()

	assert.True(t, prcp.Contains(decimal.MustParse("0")))
	assert.True(t, prcp.Contains(decimal.MustParse("999.99")))
	assert.False(t, prcp.Contains(decimal.MustParse("1000.00")))
	assert.False(t, prcp.Contains(decimal.MustParse("1.234")))
	assert.True(t, prcp.Contains(decimal.MustParse("1.230")))

	temp := Temperature.Spec()
	assert.True(t, temp.Contains(decimal.MustParse("-9999.9")))
	assert.False(t, temp.Contains(decimal.MustParse("-10000")))
}
