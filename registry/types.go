package registry

import (
	"errors"
	"fmt"

	"github.com/astrenok/unum/dim"
	"github.com/astrenok/unum/unitdef"
)

// Sentinel errors for registry operations.
var (
	// ErrNotFound indicates a unit token that resolves to nothing, even
	// after prefix decomposition and plural stripping.
	ErrNotFound = errors.New("registry: unit not found")

	// ErrDimensionality indicates a conversion or comparison between
	// units of different physical dimensions.
	ErrDimensionality = errors.New("registry: dimensionality mismatch")

	// ErrCyclicDefinition indicates unit definitions that reference each
	// other in a cycle; the definition table is unusable as loaded.
	ErrCyclicDefinition = errors.New("registry: cyclic unit definition")

	// ErrDuplicateDefinition indicates a name, symbol, alias, or prefix
	// that collides with one already defined.
	ErrDuplicateDefinition = errors.New("registry: duplicate definition")

	// ErrUnknownReference indicates a definition whose expression names
	// a unit the registry does not know.
	ErrUnknownReference = errors.New("registry: unknown reference unit")

	// ErrAffineReference indicates a definition whose expression uses an
	// offset unit; offset units cannot be building blocks.
	ErrAffineReference = errors.New("registry: offset unit used as reference")

	// ErrNonNumericExponent indicates an exponent subtree containing a
	// unit name; exponents must evaluate to plain numbers.
	ErrNonNumericExponent = errors.New("registry: exponent must be numeric")

	// ErrUnknownSystem indicates a measurement system that was never
	// loaded via LoadSystems.
	ErrUnknownSystem = errors.New("registry: unknown measurement system")

	// ErrNoPreferredUnit indicates a system that lists no unit for the
	// requested dimension.
	ErrNoPreferredUnit = errors.New("registry: no preferred unit for dimension")
)

// NotFoundError reports the token that failed resolution.
type NotFoundError struct {
	Token string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("registry: unit not found: %q", e.Token)
}

// Unwrap lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DimensionalityError names both sides of an incompatible pairing, in
// units and in reduced dimensions.
type DimensionalityError struct {
	FromUnits string
	ToUnits   string
	FromDim   dim.Vector
	ToDim     dim.Vector
}

// Error implements the error interface.
func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("registry: cannot convert %s (%s) to %s (%s)",
		e.FromUnits, e.FromDim, e.ToUnits, e.ToDim)
}

// Unwrap lets errors.Is(err, ErrDimensionality) match.
func (e *DimensionalityError) Unwrap() error { return ErrDimensionality }

// Record is the read-only view of one resolved unit definition.
type Record struct {
	// Name is the canonical unit name.
	Name string

	// Symbol is the short form ("m" for meter), empty if none.
	Symbol string

	// Aliases are the additional accepted names.
	Aliases []string

	// Kind is Base, Derived, or Affine.
	Kind unitdef.Kind

	// Reference is the defining expression text; empty for base units.
	Reference string

	// Offset is the affine offset; zero for everything but affine units.
	Offset float64
}

// Conversion is the linear map taking a value in one unit to a value in
// another: out = in*Factor + Offset. Purely multiplicative conversions
// have Offset == 0; affine (temperature) conversions do not.
type Conversion struct {
	Factor float64
	Offset float64
}

// Apply runs the conversion on a single value.
func (c Conversion) Apply(v float64) float64 { return v*c.Factor + c.Offset }

// Option configures a Registry at construction.
type Option func(r *Registry)

// WithoutPlurals disables the trailing-"s" fallback in name resolution;
// only exact names, symbols, aliases, and prefixed forms resolve.
func WithoutPlurals() Option {
	return func(r *Registry) { r.allowPlural = false }
}
