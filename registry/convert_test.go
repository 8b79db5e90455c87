package registry_test

import (
	"testing"

	"github.com/astrenok/unum/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------------------------------------------------------
// 1. Multiplicative conversions
// ------------------------------------------------------------------------

func TestConvert_PrefixScale(t *testing.T) {
	r := small(t)
	out, err := r.ConvertValue(2.5, "km", "m")
	require.NoError(t, err)
	assert.InDelta(t, 2500, out, 1e-9)
}

func TestConvert_ThroughDerivedUnits(t *testing.T) {
	r := small(t)
	// 1 N expressed in g·m/s² is 1000.
	out, err := r.ConvertValue(1, "N", "g * m / s ** 2")
	require.NoError(t, err)
	assert.InDelta(t, 1000, out, 1e-9)
}

func TestConvert_RoundTrip(t *testing.T) {
	r := registry.Default()
	cases := [][2]string{
		{"mile", "km"},
		{"hour", "s"},
		{"W", "horsepower"},
		{"psi", "pascal"},
		{"degC", "degF"},
	}
	for _, pair := range cases {
		const v = 3.25
		there, err := r.ConvertValue(v, pair[0], pair[1])
		require.NoError(t, err, "%s → %s", pair[0], pair[1])
		back, err := r.ConvertValue(there, pair[1], pair[0])
		require.NoError(t, err, "%s → %s", pair[1], pair[0])
		assert.InDelta(t, v, back, 1e-9, "round trip %s ↔ %s", pair[0], pair[1])
	}
}

func TestConvert_Identity(t *testing.T) {
	r := small(t)
	out, err := r.ConvertValue(42, "m / s", "m / s")
	require.NoError(t, err)
	assert.Equal(t, 42.0, out)
}

// ------------------------------------------------------------------------
// 2. Affine conversions
// ------------------------------------------------------------------------

func TestConvert_CelsiusKelvin(t *testing.T) {
	r := small(t)

	out, err := r.ConvertValue(100, "degC", "K")
	require.NoError(t, err)
	assert.InDelta(t, 373.15, out, 1e-9)

	out, err = r.ConvertValue(373.15, "K", "degC")
	require.NoError(t, err)
	assert.InDelta(t, 100, out, 1e-9)
}

func TestConvert_FahrenheitCelsius(t *testing.T) {
	r := registry.Default()

	out, err := r.ConvertValue(32, "degF", "degC")
	require.NoError(t, err)
	assert.InDelta(t, 0, out, 1e-9)

	out, err = r.ConvertValue(212, "degF", "degC")
	require.NoError(t, err)
	assert.InDelta(t, 100, out, 1e-9)

	out, err = r.ConvertValue(-40, "degC", "degF")
	require.NoError(t, err)
	assert.InDelta(t, -40, out, 1e-9, "the scales cross at -40")
}

func TestNewConversion_AffineShape(t *testing.T) {
	r := small(t)
	from, err := r.ParseUnits("degC")
	require.NoError(t, err)
	to, err := r.ParseUnits("K")
	require.NoError(t, err)

	conv, err := r.NewConversion(from, to)
	require.NoError(t, err)
	assert.Equal(t, 1.0, conv.Factor)
	assert.Equal(t, 273.15, conv.Offset)
}

func TestNewConversion_MultiplicativeHasZeroOffset(t *testing.T) {
	r := small(t)
	from, err := r.ParseUnits("km")
	require.NoError(t, err)
	to, err := r.ParseUnits("m")
	require.NoError(t, err)

	conv, err := r.NewConversion(from, to)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, conv.Factor)
	assert.Zero(t, conv.Offset)
}

// ------------------------------------------------------------------------
// 3. Failures
// ------------------------------------------------------------------------

func TestConvert_DimensionalityMismatch(t *testing.T) {
	r := small(t)
	_, err := r.ConvertValue(1, "m", "s")
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrDimensionality)

	var derr *registry.DimensionalityError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "meter", derr.FromUnits)
	assert.Equal(t, "second", derr.ToUnits)
	assert.Equal(t, "[meter]", derr.FromDim.String())
	assert.Equal(t, "[second]", derr.ToDim.String())
}

func TestConvert_UnknownUnit(t *testing.T) {
	r := small(t)
	_, err := r.ConvertValue(1, "qux", "m")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}
