package unit

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/astrenok/unum/dim"
)

// Sentinel errors for unit algebra.
var (
	// ErrOffsetUnit indicates an affine (offset) unit was combined with
	// other factors, scaled, or raised to a power other than 1.
	ErrOffsetUnit = errors.New("unit: offset unit may only appear bare and at power 1")

	// ErrRegistryMismatch indicates algebra across expressions created
	// by two different registries.
	ErrRegistryMismatch = errors.New("unit: expressions belong to different registries")
)

// Expression is the reduced representation of a compound unit: a sparse
// mapping from canonical unit name to rational exponent plus an
// aggregate multiplicative scale. The zero value is the dimensionless
// expression with scale 1... almost: its scale field is 0, so always
// construct through New or Dimensionless.
type Expression struct {
	factors map[string]dim.Rational
	scale   float64
	affine  string // canonical name when the expression is a bare affine unit
	origin  uint64 // registry stamp; 0 means unbound (tests only)
}

// New builds a canonical Expression: zero exponents are dropped and the
// factor map is copied. origin is the creating registry's stamp.
func New(origin uint64, scale float64, factors map[string]dim.Rational) Expression {
	out := make(map[string]dim.Rational, len(factors))
	for name, exp := range factors {
		if !exp.IsZero() {
			out[name] = exp
		}
	}
	if len(out) == 0 {
		out = nil
	}

	return Expression{factors: out, scale: scale, origin: origin}
}

// Dimensionless returns the empty expression with the given scale.
func Dimensionless(origin uint64, scale float64) Expression {
	return Expression{scale: scale, origin: origin}
}

// NewAffine returns the bare offset-unit expression for name: exactly
// one factor at power 1, scale 1, flagged affine.
func NewAffine(origin uint64, name string) Expression {
	return Expression{
		factors: map[string]dim.Rational{name: dim.Int(1)},
		scale:   1,
		affine:  name,
		origin:  origin,
	}
}

// Origin returns the stamp of the registry that created e (0 when the
// expression was built outside any registry).
func (e Expression) Origin() uint64 { return e.origin }

// Scale returns the aggregate multiplicative scale.
func (e Expression) Scale() float64 { return e.scale }

// Len returns the number of factors with non-zero exponent.
func (e Expression) Len() int { return len(e.factors) }

// Factors returns a copy of the factor map; mutating it does not affect e.
func (e Expression) Factors() map[string]dim.Rational {
	out := make(map[string]dim.Rational, len(e.factors))
	for name, exp := range e.factors {
		out[name] = exp
	}

	return out
}

// Exponent returns the exponent of the named factor and whether it is
// present.
func (e Expression) Exponent(name string) (dim.Rational, bool) {
	exp, ok := e.factors[name]

	return exp, ok
}

// Names returns the factor names in sorted order.
func (e Expression) Names() []string {
	names := make([]string, 0, len(e.factors))
	for name := range e.factors {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// AffineUnit returns the canonical name of the offset unit and true
// when e is a bare affine expression.
func (e Expression) AffineUnit() (string, bool) { return e.affine, e.affine != "" }

// Equal reports whether e and o have identical factors, scale, and
// affine marker. It ignores origin; cross-registry comparison of
// structure is harmless.
func (e Expression) Equal(o Expression) bool {
	if e.scale != o.scale || e.affine != o.affine || len(e.factors) != len(o.factors) {
		return false
	}
	for name, exp := range e.factors {
		if other, ok := o.factors[name]; !ok || other != exp {
			return false
		}
	}

	return true
}

// Mul returns e·o: factor exponents summed, scales multiplied.
// Fails with ErrOffsetUnit if either operand is affine, and with
// ErrRegistryMismatch if the operands come from different registries.
func (e Expression) Mul(o Expression) (Expression, error) {
	if err := e.compatible(o); err != nil {
		return Expression{}, err
	}
	merged := e.Factors()
	for name, exp := range o.factors {
		merged[name] = merged[name].Add(exp)
	}

	return New(e.origin, e.scale*o.scale, merged), nil
}

// Div returns e/o: factor exponents subtracted, scales divided.
func (e Expression) Div(o Expression) (Expression, error) {
	if err := e.compatible(o); err != nil {
		return Expression{}, err
	}
	merged := e.Factors()
	for name, exp := range o.factors {
		merged[name] = merged[name].Sub(exp)
	}

	return New(e.origin, e.scale/o.scale, merged), nil
}

// Pow returns e**n: every exponent multiplied by n, scale raised to n.
// An affine expression survives only the identity power 1; any other n
// fails with ErrOffsetUnit.
func (e Expression) Pow(n dim.Rational) (Expression, error) {
	if e.affine != "" {
		if n.IsOne() {
			return e, nil
		}

		return Expression{}, fmt.Errorf("%w: %s ** %s", ErrOffsetUnit, e.affine, n)
	}
	scaled := make(map[string]dim.Rational, len(e.factors))
	for name, exp := range e.factors {
		scaled[name] = exp.Mul(n)
	}

	return New(e.origin, math.Pow(e.scale, n.Float64()), scaled), nil
}

// compatible rejects cross-registry and affine operands.
func (e Expression) compatible(o Expression) error {
	if e.origin != o.origin && e.origin != 0 && o.origin != 0 {
		return fmt.Errorf("%w: %d vs %d", ErrRegistryMismatch, e.origin, o.origin)
	}
	if e.affine != "" {
		return fmt.Errorf("%w: %s", ErrOffsetUnit, e.affine)
	}
	if o.affine != "" {
		return fmt.Errorf("%w: %s", ErrOffsetUnit, o.affine)
	}

	return nil
}

// String renders the expression with sorted factors, positive exponents
// first, negatives as divisions: "kilogram * meter / second ** 2".
// A non-1 scale is printed as a leading numeric factor. The empty
// expression with scale 1 renders as "dimensionless".
func (e Expression) String() string {
	if len(e.factors) == 0 && (e.scale == 1 || e.scale == 0) {
		return "dimensionless"
	}
	var b strings.Builder
	wrote := false
	if e.scale != 1 {
		b.WriteString(strconv.FormatFloat(e.scale, 'g', -1, 64))
		wrote = true
	}
	names := e.Names()
	for _, name := range names {
		if e.factors[name].Sign() < 0 {
			continue
		}
		if wrote {
			b.WriteString(" * ")
		}
		writeFactor(&b, name, e.factors[name])
		wrote = true
	}
	if !wrote {
		b.WriteString("1")
	}
	for _, name := range names {
		exp := e.factors[name]
		if exp.Sign() >= 0 {
			continue
		}
		b.WriteString(" / ")
		writeFactor(&b, name, exp.Neg())
	}

	return b.String()
}

func writeFactor(b *strings.Builder, name string, exp dim.Rational) {
	b.WriteString(name)
	if !exp.IsOne() {
		b.WriteString(" ** ")
		b.WriteString(exp.String())
	}
}
