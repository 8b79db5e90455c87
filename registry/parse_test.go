package registry_test

import (
	"testing"

	"github.com/astrenok/unum/dim"
	"github.com/astrenok/unum/exprparse"
	"github.com/astrenok/unum/registry"
	"github.com/astrenok/unum/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------------------------------------------------------
// 1. Expression construction
// ------------------------------------------------------------------------

func TestParseUnits_Simple(t *testing.T) {
	r := small(t)
	expr, err := r.ParseUnits("km")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, expr.Scale())
	exp, ok := expr.Exponent("meter")
	require.True(t, ok)
	assert.Equal(t, dim.Int(1), exp)
	assert.Equal(t, r.ID(), expr.Origin())
}

func TestParseUnits_Compound(t *testing.T) {
	r := small(t)
	expr, err := r.ParseUnits("kg * m / s ** 2")
	require.NoError(t, err)

	exp, _ := expr.Exponent("gram")
	assert.Equal(t, dim.Int(1), exp)
	exp, _ = expr.Exponent("second")
	assert.Equal(t, dim.Int(-2), exp)
	assert.Equal(t, 1000.0, expr.Scale(), "kg carries the kilo multiplier")
}

func TestParseUnits_EquivalentSpellings(t *testing.T) {
	r := small(t)
	a, err := r.ParseUnits("m*m")
	require.NoError(t, err)
	b, err := r.ParseUnits("m**2")
	require.NoError(t, err)
	assert.Equal(t, a.Factors(), b.Factors(),
		"algebraically equivalent strings must reduce to equal factor maps")
}

func TestParseUnits_FractionalExponent(t *testing.T) {
	r := small(t)
	expr, err := r.ParseUnits("m ** 0.5")
	require.NoError(t, err)
	exp, _ := expr.Exponent("meter")
	assert.Equal(t, dim.MustRational(1, 2), exp)
}

func TestParseUnits_NumericLiteralBecomesScale(t *testing.T) {
	r := small(t)
	expr, err := r.ParseUnits("100 m")
	require.NoError(t, err)
	assert.Equal(t, 100.0, expr.Scale())
	assert.Equal(t, 1, expr.Len())
}

func TestParseUnits_CachesByExactString(t *testing.T) {
	r := small(t)
	a, err := r.ParseUnits("m / s")
	require.NoError(t, err)
	b, err := r.ParseUnits("m / s")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

// ------------------------------------------------------------------------
// 2. Failures
// ------------------------------------------------------------------------

func TestParseUnits_UnknownUnit(t *testing.T) {
	r := small(t)
	_, err := r.ParseUnits("qux / s")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestParseUnits_Malformed(t *testing.T) {
	r := small(t)
	_, err := r.ParseUnits("m * * s")
	assert.ErrorIs(t, err, exprparse.ErrSyntax)
}

func TestParseUnits_OffsetCompoundsRejected(t *testing.T) {
	r := small(t)
	for _, bad := range []string{"degC / s", "degC * m", "degC ** 2", "2 degC", "s * celsius"} {
		_, err := r.ParseUnits(bad)
		assert.ErrorIs(t, err, unit.ErrOffsetUnit, "input %q", bad)
	}
}

func TestParseUnits_BareAffineAllowed(t *testing.T) {
	r := small(t)
	expr, err := r.ParseUnits("degC")
	require.NoError(t, err)
	name, ok := expr.AffineUnit()
	assert.True(t, ok)
	assert.Equal(t, "degC", name)
}

func TestParseUnits_UnitInExponent(t *testing.T) {
	r := small(t)
	_, err := r.ParseUnits("m ** s")
	assert.ErrorIs(t, err, registry.ErrNonNumericExponent)
}

// ------------------------------------------------------------------------
// 3. Reduction
// ------------------------------------------------------------------------

func TestDimensionality_DerivedChain(t *testing.T) {
	r := small(t)
	n, err := r.ParseUnits("N")
	require.NoError(t, err)
	d, err := r.Dimensionality(n)
	require.NoError(t, err)

	want := dim.NewVector(map[string]dim.Rational{
		"[gram]":   dim.Int(1),
		"[meter]":  dim.Int(1),
		"[second]": dim.Int(-2),
	})
	assert.True(t, d.Equal(want), "got %s", d)
}

func TestDimensionality_InverseCancels(t *testing.T) {
	r := small(t)
	u, err := r.ParseUnits("N * km / s ** 3")
	require.NoError(t, err)

	inv, err := u.Pow(dim.Int(-1))
	require.NoError(t, err)
	prod, err := u.Mul(inv)
	require.NoError(t, err)

	d, err := r.Dimensionality(prod)
	require.NoError(t, err)
	assert.True(t, d.IsDimensionless(), "u * u**-1 must be dimensionless")
}

func TestDimensionality_AffineMatchesReference(t *testing.T) {
	r := small(t)
	c, err := r.ParseUnits("degC")
	require.NoError(t, err)
	k, err := r.ParseUnits("K")
	require.NoError(t, err)

	dc, err := r.Dimensionality(c)
	require.NoError(t, err)
	dk, err := r.Dimensionality(k)
	require.NoError(t, err)
	assert.True(t, dc.Equal(dk))
}

func TestBaseUnits(t *testing.T) {
	r := small(t)
	kmh, err := r.ParseUnits("km ** 2")
	require.NoError(t, err)

	scale, base, err := r.BaseUnits(kmh)
	require.NoError(t, err)
	assert.InDelta(t, 1e6, scale, 1e-6)
	exp, _ := base.Exponent("meter")
	assert.Equal(t, dim.Int(2), exp)
	assert.Equal(t, 1.0, base.Scale(), "base expression carries no residual scale")
}

func TestDimensionless(t *testing.T) {
	r := small(t)
	ratio, err := r.ParseUnits("m / km")
	require.NoError(t, err)
	ok, err := r.Dimensionless(ratio)
	require.NoError(t, err)
	assert.True(t, ok)
}

// ------------------------------------------------------------------------
// 4. Registry binding
// ------------------------------------------------------------------------

func TestDimensionality_RejectsForeignExpression(t *testing.T) {
	a := small(t)
	b := small(t)
	expr, err := a.ParseUnits("m")
	require.NoError(t, err)

	_, err = b.Dimensionality(expr)
	assert.ErrorIs(t, err, unit.ErrRegistryMismatch)
}
