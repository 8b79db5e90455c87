package registry

import (
	"github.com/astrenok/unum/unit"
	"github.com/astrenok/unum/unitdef"
)

// NewConversion computes the linear map from one expression's units to
// another's. It fails with *DimensionalityError when the two reduce to
// different dimension vectors, and never succeeds for illegal affine
// compounds — those cannot be constructed in the first place.
//
// Mechanics: both sides reduce to the shared base combination. The
// multiplicative path is out = in·scale(from)/scale(to); a bare offset
// unit on either side routes through its reference point instead
// (in·scale + offset to reach base, the inverse to leave it), and two
// offset units compose both steps through the shared base.
func (r *Registry) NewConversion(from, to unit.Expression) (Conversion, error) {
	fromScale, fromOffset, err := r.linearForm(from)
	if err != nil {
		return Conversion{}, err
	}
	toScale, toOffset, err := r.linearForm(to)
	if err != nil {
		return Conversion{}, err
	}

	fromDim, err := r.Dimensionality(from)
	if err != nil {
		return Conversion{}, err
	}
	toDim, err := r.Dimensionality(to)
	if err != nil {
		return Conversion{}, err
	}
	if !fromDim.Equal(toDim) {
		return Conversion{}, &DimensionalityError{
			FromUnits: from.String(),
			ToUnits:   to.String(),
			FromDim:   fromDim,
			ToDim:     toDim,
		}
	}

	// base = in*fromScale + fromOffset; out = (base - toOffset)/toScale.
	return Conversion{
		Factor: fromScale / toScale,
		Offset: (fromOffset - toOffset) / toScale,
	}, nil
}

// Convert converts a single value between two unit expressions.
func (r *Registry) Convert(value float64, from, to unit.Expression) (float64, error) {
	conv, err := r.NewConversion(from, to)
	if err != nil {
		return 0, err
	}

	return conv.Apply(value), nil
}

// ConvertValue is the string-in, number-out conversion surface used by
// conversion tooling: both unit strings are parsed against this
// registry, then converted.
func (r *Registry) ConvertValue(value float64, from, to string) (float64, error) {
	fromExpr, err := r.ParseUnits(from)
	if err != nil {
		return 0, err
	}
	toExpr, err := r.ParseUnits(to)
	if err != nil {
		return 0, err
	}

	return r.Convert(value, fromExpr, toExpr)
}

// linearForm reduces an expression to the affine map onto base units:
// base = value*scale + offset. Non-affine expressions have offset 0.
func (r *Registry) linearForm(expr unit.Expression) (scale, offset float64, err error) {
	scale, _, err = r.BaseUnits(expr)
	if err != nil {
		return 0, 0, err
	}
	if name, ok := expr.AffineUnit(); ok {
		r.mu.RLock()
		def := r.tabs.units[name]
		r.mu.RUnlock()
		if def != nil && def.Kind == unitdef.KindAffine {
			offset = def.Offset
		}
	}

	return scale, offset, nil
}
