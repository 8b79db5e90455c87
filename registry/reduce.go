package registry

import (
	"fmt"
	"math"

	"github.com/astrenok/unum/dim"
	"github.com/astrenok/unum/exprparse"
	"github.com/astrenok/unum/unit"
	"github.com/astrenok/unum/unitdef"
)

// baseForm is a unit reduced to base units: the aggregate multiplicative
// scale against the base combination, and the base factor map. For an
// affine unit the baseForm describes its reference; the offset is
// handled separately by conversion.
type baseForm struct {
	scale   float64
	factors map[string]dim.Rational
}

// Dimensionality reduces an expression to its base-dimension vector,
// resolving every factor's definition chain down to base units.
// Results are memoized per canonical unit name.
func (r *Registry) Dimensionality(expr unit.Expression) (dim.Vector, error) {
	if err := r.checkOrigin(expr); err != nil {
		return dim.Vector{}, err
	}

	out := dim.Vector{}
	for name, exp := range expr.Factors() {
		d, err := r.dimensionOf(name)
		if err != nil {
			return dim.Vector{}, err
		}
		out = out.Mul(d.Pow(exp))
	}

	return out, nil
}

// BaseUnits reduces an expression to base units only, returning the
// aggregate multiplicative scale (including the expression's own scale)
// and the base-unit expression.
//
// For a bare affine expression the returned scale describes the linear
// part only; Conversion accounts for the offset.
func (r *Registry) BaseUnits(expr unit.Expression) (float64, unit.Expression, error) {
	if err := r.checkOrigin(expr); err != nil {
		return 0, unit.Expression{}, err
	}

	scale := expr.Scale()
	merged := make(map[string]dim.Rational)
	for name, exp := range expr.Factors() {
		bf, err := r.baseFormOf(name)
		if err != nil {
			return 0, unit.Expression{}, err
		}
		scale *= math.Pow(bf.scale, exp.Float64())
		for bname, bexp := range bf.factors {
			merged[bname] = merged[bname].Add(bexp.Mul(exp))
		}
	}

	return scale, unit.New(r.id, 1, merged), nil
}

// Dimensionless reports whether an expression reduces to the empty
// dimension vector.
func (r *Registry) Dimensionless(expr unit.Expression) (bool, error) {
	d, err := r.Dimensionality(expr)
	if err != nil {
		return false, err
	}

	return d.IsDimensionless(), nil
}

// checkOrigin rejects expressions created by another registry.
func (r *Registry) checkOrigin(expr unit.Expression) error {
	if expr.Origin() != 0 && expr.Origin() != r.id {
		return fmt.Errorf("%w: expression from registry %d used with registry %d (fingerprint %x)",
			unit.ErrRegistryMismatch, expr.Origin(), r.id, r.Fingerprint())
	}

	return nil
}

// dimensionOf returns the memoized dimension vector of one canonical
// unit name. A base unit "meter" owns the dimension "[meter]"; derived
// and affine units inherit from their reference chain.
func (r *Registry) dimensionOf(name string) (dim.Vector, error) {
	r.mu.RLock()
	d, ok := r.dims[name]
	r.mu.RUnlock()
	if ok {
		return d, nil
	}

	bf, err := r.baseFormOf(name)
	if err != nil {
		return dim.Vector{}, err
	}
	exps := make(map[string]dim.Rational, len(bf.factors))
	for bname, bexp := range bf.factors {
		exps["["+bname+"]"] = bexp
	}
	d = dim.NewVector(exps)

	r.mu.Lock()
	r.dims[name] = d
	r.mu.Unlock()

	return d, nil
}

// baseFormOf returns the memoized base-unit reduction of one canonical
// unit name, walking reference chains recursively. The visited set
// defends against cycles; Load validation makes them unreachable, but a
// corrupt table must surface ErrCyclicDefinition, not hang.
func (r *Registry) baseFormOf(name string) (baseForm, error) {
	return r.baseFormVisit(name, make(map[string]bool))
}

func (r *Registry) baseFormVisit(name string, visiting map[string]bool) (baseForm, error) {
	r.mu.RLock()
	bf, ok := r.bases[name]
	def := r.tabs.units[name]
	r.mu.RUnlock()
	if ok {
		return bf, nil
	}
	if def == nil {
		return baseForm{}, &NotFoundError{Token: name}
	}
	if visiting[name] {
		return baseForm{}, fmt.Errorf("%w: %s", ErrCyclicDefinition, name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	switch def.Kind {
	case unitdef.KindBase:
		bf = baseForm{scale: 1, factors: map[string]dim.Rational{name: dim.Int(1)}}
	default: // derived or affine: reduce the reference expression
		var err error
		bf, err = r.reduceNode(def.Expr, visiting)
		if err != nil {
			return baseForm{}, err
		}
	}

	r.mu.Lock()
	r.bases[name] = bf
	r.mu.Unlock()

	return bf, nil
}

// reduceNode evaluates a definition expression straight down to base
// form: numbers scale, identifiers recurse through their own reduction.
func (r *Registry) reduceNode(node *exprparse.Node, visiting map[string]bool) (baseForm, error) {
	switch node.Kind {
	case exprparse.NodeNumber:
		return baseForm{scale: node.Value, factors: nil}, nil

	case exprparse.NodeName:
		r.mu.RLock()
		canonical, mult, err := r.tabs.resolve(node.Name, r.allowPlural)
		r.mu.RUnlock()
		if err != nil {
			return baseForm{}, err
		}
		bf, err := r.baseFormVisit(canonical, visiting)
		if err != nil {
			return baseForm{}, err
		}

		return baseForm{scale: mult * bf.scale, factors: bf.factors}, nil

	case exprparse.NodePow:
		base, err := r.reduceNode(node.Left, visiting)
		if err != nil {
			return baseForm{}, err
		}
		expVal, err := evalNumeric(node.Right)
		if err != nil {
			return baseForm{}, err
		}
		exp, err := dim.ApproxRational(expVal)
		if err != nil {
			return baseForm{}, err
		}
		scaled := make(map[string]dim.Rational, len(base.factors))
		for bname, bexp := range base.factors {
			scaled[bname] = bexp.Mul(exp)
		}

		return baseForm{scale: math.Pow(base.scale, expVal), factors: scaled}, nil

	default: // Mul, Div
		left, err := r.reduceNode(node.Left, visiting)
		if err != nil {
			return baseForm{}, err
		}
		right, err := r.reduceNode(node.Right, visiting)
		if err != nil {
			return baseForm{}, err
		}
		merged := make(map[string]dim.Rational, len(left.factors)+len(right.factors))
		for bname, bexp := range left.factors {
			merged[bname] = bexp
		}
		scale := left.scale * right.scale
		for bname, bexp := range right.factors {
			if node.Kind == exprparse.NodeDiv {
				bexp = bexp.Neg()
			}
			merged[bname] = merged[bname].Add(bexp)
		}
		if node.Kind == exprparse.NodeDiv {
			scale = left.scale / right.scale
		}

		return baseForm{scale: scale, factors: merged}, nil
	}
}

// evalNumeric evaluates a purely numeric subtree (exponents).
func evalNumeric(node *exprparse.Node) (float64, error) {
	switch node.Kind {
	case exprparse.NodeNumber:
		return node.Value, nil
	case exprparse.NodeName:
		return 0, fmt.Errorf("%w: %q at offset %d", ErrNonNumericExponent, node.Name, node.Pos)
	case exprparse.NodeMul, exprparse.NodeDiv, exprparse.NodePow:
		left, err := evalNumeric(node.Left)
		if err != nil {
			return 0, err
		}
		right, err := evalNumeric(node.Right)
		if err != nil {
			return 0, err
		}
		switch node.Kind {
		case exprparse.NodeMul:
			return left * right, nil
		case exprparse.NodeDiv:
			return left / right, nil
		default:
			return math.Pow(left, right), nil
		}
	default:
		return 0, fmt.Errorf("%w: unexpected node", ErrNonNumericExponent)
	}
}
