package quantity

import (
	"fmt"
	"math"
)

// Scalar is the plain-number Magnitude.
type Scalar float64

func (s Scalar) pair(other Magnitude) (Scalar, error) {
	o, ok := other.(Scalar)
	if !ok {
		return 0, fmt.Errorf("%w: Scalar and %T", ErrMagnitudeKind, other)
	}
	return o, nil
}

// Add returns s + other.
func (s Scalar) Add(other Magnitude) (Magnitude, error) {
	o, err := s.pair(other)
	if err != nil {
		return nil, err
	}
	return s + o, nil
}

// Sub returns s - other.
func (s Scalar) Sub(other Magnitude) (Magnitude, error) {
	o, err := s.pair(other)
	if err != nil {
		return nil, err
	}
	return s - o, nil
}

// Mul returns s * other.
func (s Scalar) Mul(other Magnitude) (Magnitude, error) {
	o, err := s.pair(other)
	if err != nil {
		return nil, err
	}
	return s * o, nil
}

// Div returns s / other.
func (s Scalar) Div(other Magnitude) (Magnitude, error) {
	o, err := s.pair(other)
	if err != nil {
		return nil, err
	}
	return s / o, nil
}

// Pow returns s ** exp.
func (s Scalar) Pow(exp float64) Magnitude {
	return Scalar(math.Pow(float64(s), exp))
}

// Scale returns s * factor.
func (s Scalar) Scale(factor float64) Magnitude { return s * Scalar(factor) }

// Shift returns s + delta.
func (s Scalar) Shift(delta float64) Magnitude { return s + Scalar(delta) }

// Cmp returns -1, 0 or +1 comparing s against other.
func (s Scalar) Cmp(other Magnitude) (int, error) {
	o, err := s.pair(other)
	if err != nil {
		return 0, err
	}
	switch {
	case s < o:
		return -1, nil
	case s > o:
		return 1, nil
	default:
		return 0, nil
	}
}
