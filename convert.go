package unum

import (
	"github.com/astrenok/unum/quantity"
	"github.com/astrenok/unum/registry"
)

// Convert translates value from one unit string to another using the
// default registry. It is the one-line entry point for callers who do
// not need their own definition tables.
func Convert(value float64, from, to string) (float64, error) {
	return registry.Default().ConvertValue(value, from, to)
}

// MustConvert is Convert that panics on error; for fixed unit literals
// in program text.
func MustConvert(value float64, from, to string) float64 {
	v, err := Convert(value, from, to)
	if err != nil {
		panic(err)
	}

	return v
}

// Parse reads "<number> <units>" into a Quantity bound to the default
// registry.
func Parse(s string) (*quantity.Quantity, error) {
	return quantity.Parse(registry.Default(), s)
}
