package quantity

import "errors"

// Sentinel errors reported by quantity operations. Use errors.Is.
var (
	// ErrMagnitudeKind fires when an operation mixes incompatible
	// magnitude kinds, e.g. Scalar + Slice.
	ErrMagnitudeKind = errors.New("quantity: incompatible magnitude kinds")

	// ErrShapeMismatch fires when two Slice magnitudes of different
	// lengths meet in an elementwise operation.
	ErrShapeMismatch = errors.New("quantity: magnitude shape mismatch")

	// ErrUnordered fires when a comparison between Slice magnitudes
	// has no uniform answer (some elements less, some greater).
	ErrUnordered = errors.New("quantity: magnitudes are not ordered")
)

// Magnitude is the capability contract a numeric payload must satisfy
// for quantity arithmetic. All methods are value-semantics: they return
// a fresh Magnitude and leave the receiver untouched.
//
// Cmp reports the uniform ordering of the receiver against other:
// -1, 0 or +1. Implementations with no total order for a given pair
// (e.g. elementwise buffers with mixed signs of difference) return
// ErrUnordered.
type Magnitude interface {
	Add(other Magnitude) (Magnitude, error)
	Sub(other Magnitude) (Magnitude, error)
	Mul(other Magnitude) (Magnitude, error)
	Div(other Magnitude) (Magnitude, error)

	// Pow raises every element to exp.
	Pow(exp float64) Magnitude

	// Scale multiplies every element by factor; Shift adds delta to
	// every element. Together they express any linear unit conversion.
	Scale(factor float64) Magnitude
	Shift(delta float64) Magnitude

	Cmp(other Magnitude) (int, error)
}

// InPlace is the optional fast path for Quantity.Ito: magnitudes that
// implement it are converted without reallocating. Slice implements it;
// Scalar deliberately does not (copying a float64 is free).
type InPlace interface {
	// ScaleShiftInPlace applies v = v*factor + offset elementwise.
	ScaleShiftInPlace(factor, offset float64)
}
