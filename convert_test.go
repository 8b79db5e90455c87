package unum_test

import (
	"fmt"
	"testing"

	"github.com/astrenok/unum"
	"github.com/astrenok/unum/quantity"
	"github.com/astrenok/unum/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	v, err := unum.Convert(100, "km/h", "m/s")
	require.NoError(t, err)
	assert.InDelta(t, 27.7778, v, 1e-4)
}

func TestConvert_DimensionMismatch(t *testing.T) {
	_, err := unum.Convert(1, "meter", "second")
	assert.ErrorIs(t, err, registry.ErrDimensionality)
}

func TestMustConvert_PanicsOnBadUnits(t *testing.T) {
	assert.Panics(t, func() { unum.MustConvert(1, "meter", "blorp") })
}

func TestParse(t *testing.T) {
	q, err := unum.Parse("3.5 km")
	require.NoError(t, err)

	m, err := q.To("meter")
	require.NoError(t, err)
	assert.InDelta(t, 3500, float64(m.Magnitude().(quantity.Scalar)), 1e-9)
}

func ExampleConvert() {
	fmt.Printf("%.2f\n", unum.MustConvert(72, "degF", "degC"))
	// Output: 22.22
}
