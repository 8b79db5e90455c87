package quantity

import (
	"fmt"
	"math"
)

// Slice is an elementwise Magnitude over a caller-owned []float64
// buffer. Arithmetic allocates fresh result buffers; only
// ScaleShiftInPlace (the Ito fast path) writes through.
type Slice []float64

func (s Slice) pair(other Magnitude) (Slice, error) {
	o, ok := other.(Slice)
	if !ok {
		return nil, fmt.Errorf("%w: Slice and %T", ErrMagnitudeKind, other)
	}
	if len(s) != len(o) {
		return nil, fmt.Errorf("%w: %d vs %d elements", ErrShapeMismatch, len(s), len(o))
	}
	return o, nil
}

func (s Slice) zip(other Magnitude, op func(a, b float64) float64) (Magnitude, error) {
	o, err := s.pair(other)
	if err != nil {
		return nil, err
	}
	out := make(Slice, len(s))
	for i, v := range s {
		out[i] = op(v, o[i])
	}
	return out, nil
}

// Add returns the elementwise sum.
func (s Slice) Add(other Magnitude) (Magnitude, error) {
	return s.zip(other, func(a, b float64) float64 { return a + b })
}

// Sub returns the elementwise difference.
func (s Slice) Sub(other Magnitude) (Magnitude, error) {
	return s.zip(other, func(a, b float64) float64 { return a - b })
}

// Mul returns the elementwise product.
func (s Slice) Mul(other Magnitude) (Magnitude, error) {
	return s.zip(other, func(a, b float64) float64 { return a * b })
}

// Div returns the elementwise quotient.
func (s Slice) Div(other Magnitude) (Magnitude, error) {
	return s.zip(other, func(a, b float64) float64 { return a / b })
}

// Pow raises every element to exp.
func (s Slice) Pow(exp float64) Magnitude {
	out := make(Slice, len(s))
	for i, v := range s {
		out[i] = math.Pow(v, exp)
	}
	return out
}

// Scale returns a copy with every element multiplied by factor.
func (s Slice) Scale(factor float64) Magnitude {
	out := make(Slice, len(s))
	for i, v := range s {
		out[i] = v * factor
	}
	return out
}

// Shift returns a copy with delta added to every element.
func (s Slice) Shift(delta float64) Magnitude {
	out := make(Slice, len(s))
	for i, v := range s {
		out[i] = v + delta
	}
	return out
}

// ScaleShiftInPlace applies v = v*factor + offset to the underlying
// buffer without reallocating.
func (s Slice) ScaleShiftInPlace(factor, offset float64) {
	for i, v := range s {
		s[i] = v*factor + offset
	}
}

// Cmp reports the uniform ordering of s against other: 0 when every
// pair is equal, -1 / +1 when every pair leans the same way, and
// ErrUnordered when the elementwise differences disagree in sign.
func (s Slice) Cmp(other Magnitude) (int, error) {
	o, err := s.pair(other)
	if err != nil {
		return 0, err
	}
	var less, greater bool
	for i, v := range s {
		switch {
		case v < o[i]:
			less = true
		case v > o[i]:
			greater = true
		}
	}
	switch {
	case less && greater:
		return 0, ErrUnordered
	case less:
		return -1, nil
	case greater:
		return 1, nil
	default:
		return 0, nil
	}
}
