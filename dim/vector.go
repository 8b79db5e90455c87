package dim

import (
	"sort"
	"strings"
)

// Vector is an immutable sparse mapping from base-dimension name
// (e.g. "[meter]", "[second]") to a rational exponent.
//
// The zero value is the dimensionless vector. Entries with zero
// exponent are never stored, so two Vectors describe the same physical
// dimension iff Equal reports true.
type Vector struct {
	exps map[string]Rational
}

// NewVector builds a Vector from the given exponent map, dropping zero
// exponents and copying the map so callers cannot alias internal state.
func NewVector(exps map[string]Rational) Vector {
	if len(exps) == 0 {
		return Vector{}
	}
	out := make(map[string]Rational, len(exps))
	for name, exp := range exps {
		if !exp.IsZero() {
			out[name] = exp
		}
	}
	if len(out) == 0 {
		return Vector{}
	}

	return Vector{exps: out}
}

// Exponent returns the exponent of the named base dimension and whether
// it is present (absent means exponent zero).
func (v Vector) Exponent(name string) (Rational, bool) {
	exp, ok := v.exps[name]

	return exp, ok
}

// Len returns the number of non-zero exponents.
func (v Vector) Len() int { return len(v.exps) }

// Names returns the base-dimension names with non-zero exponent, sorted.
func (v Vector) Names() []string {
	names := make([]string, 0, len(v.exps))
	for name := range v.exps {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// IsDimensionless reports whether v has no non-zero exponents.
func (v Vector) IsDimensionless() bool { return len(v.exps) == 0 }

// Equal reports whether v and o have identical non-zero exponents.
func (v Vector) Equal(o Vector) bool {
	if len(v.exps) != len(o.exps) {
		return false
	}
	for name, exp := range v.exps {
		if other, ok := o.exps[name]; !ok || other != exp {
			return false
		}
	}

	return true
}

// Mul returns the dimension of a product: exponents summed entrywise.
func (v Vector) Mul(o Vector) Vector {
	merged := make(map[string]Rational, len(v.exps)+len(o.exps))
	for name, exp := range v.exps {
		merged[name] = exp
	}
	for name, exp := range o.exps {
		merged[name] = merged[name].Add(exp)
	}

	return NewVector(merged)
}

// Div returns the dimension of a quotient: exponents subtracted entrywise.
func (v Vector) Div(o Vector) Vector {
	merged := make(map[string]Rational, len(v.exps)+len(o.exps))
	for name, exp := range v.exps {
		merged[name] = exp
	}
	for name, exp := range o.exps {
		merged[name] = merged[name].Sub(exp)
	}

	return NewVector(merged)
}

// Pow returns v with every exponent multiplied by n.
func (v Vector) Pow(n Rational) Vector {
	if n.IsZero() {
		return Vector{}
	}
	scaled := make(map[string]Rational, len(v.exps))
	for name, exp := range v.exps {
		scaled[name] = exp.Mul(n)
	}

	return Vector{exps: scaled}
}

// Inv returns v with every exponent negated.
func (v Vector) Inv() Vector { return v.Pow(Int(-1)) }

// String renders the vector in a stable human-readable form, positive
// exponents first, e.g. "[meter] / [second] ** 2". The dimensionless
// vector renders as "dimensionless".
func (v Vector) String() string {
	if len(v.exps) == 0 {
		return "dimensionless"
	}
	names := v.Names()

	var b strings.Builder
	wrote := false
	for _, name := range names {
		if v.exps[name].Sign() < 0 {
			continue
		}
		if wrote {
			b.WriteString(" * ")
		}
		writeFactor(&b, name, v.exps[name])
		wrote = true
	}
	if !wrote {
		b.WriteString("1")
	}
	for _, name := range names {
		exp := v.exps[name]
		if exp.Sign() >= 0 {
			continue
		}
		b.WriteString(" / ")
		writeFactor(&b, name, exp.Neg())
	}

	return b.String()
}

func writeFactor(b *strings.Builder, name string, exp Rational) {
	b.WriteString(name)
	if !exp.IsOne() {
		b.WriteString(" ** ")
		b.WriteString(exp.String())
	}
}
