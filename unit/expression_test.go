package unit_test

import (
	"testing"

	"github.com/astrenok/unum/dim"
	"github.com/astrenok/unum/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meters() unit.Expression {
	return unit.New(0, 1, map[string]dim.Rational{"meter": dim.Int(1)})
}

func seconds() unit.Expression {
	return unit.New(0, 1, map[string]dim.Rational{"second": dim.Int(1)})
}

// ------------------------------------------------------------------------
// 1. Canonical form & accessors
// ------------------------------------------------------------------------

func TestNew_DropsZeroExponents(t *testing.T) {
	e := unit.New(0, 2, map[string]dim.Rational{
		"meter":  dim.Int(1),
		"second": dim.Int(0),
	})
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, []string{"meter"}, e.Names())
	assert.Equal(t, 2.0, e.Scale())
}

func TestFactors_ReturnsCopy(t *testing.T) {
	e := meters()
	f := e.Factors()
	f["meter"] = dim.Int(9)
	exp, _ := e.Exponent("meter")
	assert.Equal(t, dim.Int(1), exp, "mutating the returned map must not touch the expression")
}

// ------------------------------------------------------------------------
// 2. Algebra
// ------------------------------------------------------------------------

func TestMul_MergesFactorsAndScales(t *testing.T) {
	km := unit.New(0, 1000, map[string]dim.Rational{"meter": dim.Int(1)})
	perHour := unit.New(0, 1.0/3600, map[string]dim.Rational{"second": dim.Int(-1)})

	speed, err := km.Mul(perHour)
	require.NoError(t, err)
	assert.Equal(t, 1000.0/3600, speed.Scale())
	exp, _ := speed.Exponent("meter")
	assert.Equal(t, dim.Int(1), exp)
	exp, _ = speed.Exponent("second")
	assert.Equal(t, dim.Int(-1), exp)
}

func TestMul_CancelsToDimensionless(t *testing.T) {
	m := meters()
	perM, err := m.Pow(dim.Int(-1))
	require.NoError(t, err)

	one, err := m.Mul(perM)
	require.NoError(t, err)
	assert.Equal(t, 0, one.Len(), "m * m**-1 must cancel completely")
}

func TestDiv(t *testing.T) {
	speed, err := meters().Div(seconds())
	require.NoError(t, err)
	exp, _ := speed.Exponent("second")
	assert.Equal(t, dim.Int(-1), exp)
}

func TestPow(t *testing.T) {
	area, err := meters().Pow(dim.Int(2))
	require.NoError(t, err)
	exp, _ := area.Exponent("meter")
	assert.Equal(t, dim.Int(2), exp)

	// Fractional powers stay exact.
	root, err := area.Pow(dim.MustRational(1, 2))
	require.NoError(t, err)
	assert.True(t, root.Equal(meters()))
}

func TestPow_ScalesTheScale(t *testing.T) {
	km := unit.New(0, 1000, map[string]dim.Rational{"meter": dim.Int(1)})
	km2, err := km.Pow(dim.Int(2))
	require.NoError(t, err)
	assert.Equal(t, 1e6, km2.Scale())
}

func TestEquivalentBuildsAreEqual(t *testing.T) {
	// m*m and m**2 must end up with identical factor maps.
	mm, err := meters().Mul(meters())
	require.NoError(t, err)
	m2, err := meters().Pow(dim.Int(2))
	require.NoError(t, err)
	assert.True(t, mm.Equal(m2))
}

// ------------------------------------------------------------------------
// 3. Affine discipline
// ------------------------------------------------------------------------

func TestAffine_BareIsFine(t *testing.T) {
	degC := unit.NewAffine(0, "degC")
	name, ok := degC.AffineUnit()
	assert.True(t, ok)
	assert.Equal(t, "degC", name)

	// Power 1 is the identity and stays legal.
	same, err := degC.Pow(dim.Int(1))
	require.NoError(t, err)
	assert.True(t, same.Equal(degC))
}

func TestAffine_AlgebraRejected(t *testing.T) {
	degC := unit.NewAffine(0, "degC")

	_, err := degC.Mul(seconds())
	assert.ErrorIs(t, err, unit.ErrOffsetUnit, "degC * s must be rejected")

	_, err = degC.Div(seconds())
	assert.ErrorIs(t, err, unit.ErrOffsetUnit, "degC / s must be rejected")

	_, err = seconds().Div(degC)
	assert.ErrorIs(t, err, unit.ErrOffsetUnit, "s / degC must be rejected")

	_, err = degC.Pow(dim.Int(2))
	assert.ErrorIs(t, err, unit.ErrOffsetUnit, "degC ** 2 must be rejected")
}

// ------------------------------------------------------------------------
// 4. Registry binding & rendering
// ------------------------------------------------------------------------

func TestMul_RegistryMismatch(t *testing.T) {
	a := unit.New(1, 1, map[string]dim.Rational{"meter": dim.Int(1)})
	b := unit.New(2, 1, map[string]dim.Rational{"meter": dim.Int(1)})
	_, err := a.Mul(b)
	assert.ErrorIs(t, err, unit.ErrRegistryMismatch)
}

func TestString(t *testing.T) {
	accel := unit.New(0, 1, map[string]dim.Rational{
		"meter":  dim.Int(1),
		"second": dim.Int(-2),
	})
	assert.Equal(t, "meter / second ** 2", accel.String())

	km := unit.New(0, 1000, map[string]dim.Rational{"meter": dim.Int(1)})
	assert.Equal(t, "1000 * meter", km.String())

	assert.Equal(t, "dimensionless", unit.Dimensionless(0, 1).String())

	hz := unit.New(0, 1, map[string]dim.Rational{"second": dim.Int(-1)})
	assert.Equal(t, "1 / second", hz.String())
}
