package registry

import (
	"github.com/astrenok/unum/dim"
	"github.com/astrenok/unum/exprparse"
	"github.com/astrenok/unum/unit"
	"github.com/astrenok/unum/unitdef"
)

// ParseUnits parses a unit string ("m/s**2", "kg * m / s ** 2", "degC")
// into an Expression bound to this registry.
//
// Results are cached by the exact input string; syntactically distinct
// spellings of the same unit are separate cache entries, which is fine —
// the cache is a performance optimization, not a correctness mechanism.
// Failures are not cached.
func (r *Registry) ParseUnits(text string) (unit.Expression, error) {
	r.mu.RLock()
	expr, ok := r.parsed[text]
	r.mu.RUnlock()
	if ok {
		return expr, nil
	}

	node, err := exprparse.Parse(text)
	if err != nil {
		return unit.Expression{}, err
	}
	expr, err = r.evalUnits(node)
	if err != nil {
		return unit.Expression{}, err
	}

	r.mu.Lock()
	r.parsed[text] = expr
	r.mu.Unlock()

	return expr, nil
}

// MustParseUnits is ParseUnits that panics on error; for fixed unit
// literals in program text.
func (r *Registry) MustParseUnits(text string) unit.Expression {
	expr, err := r.ParseUnits(text)
	if err != nil {
		panic(err)
	}

	return expr
}

// evalUnits walks an AST bottom-up, resolving identifiers through the
// lookup pipeline and combining subtrees with unit algebra. The algebra
// enforces the offset-unit invariant, so a compound containing degC
// fails here, at expression-build time.
func (r *Registry) evalUnits(node *exprparse.Node) (unit.Expression, error) {
	switch node.Kind {
	case exprparse.NodeNumber:
		return unit.Dimensionless(r.id, node.Value), nil

	case exprparse.NodeName:
		r.mu.RLock()
		canonical, mult, err := r.tabs.resolve(node.Name, r.allowPlural)
		var kind unitdef.Kind
		if err == nil {
			kind = r.tabs.units[canonical].Kind
		}
		r.mu.RUnlock()
		if err != nil {
			return unit.Expression{}, err
		}
		if kind == unitdef.KindAffine {
			// resolve never applies prefixes to offset units, so mult == 1.
			return unit.NewAffine(r.id, canonical), nil
		}

		return unit.New(r.id, mult, map[string]dim.Rational{canonical: dim.Int(1)}), nil

	case exprparse.NodeMul, exprparse.NodeDiv:
		left, err := r.evalUnits(node.Left)
		if err != nil {
			return unit.Expression{}, err
		}
		right, err := r.evalUnits(node.Right)
		if err != nil {
			return unit.Expression{}, err
		}
		if node.Kind == exprparse.NodeMul {
			return left.Mul(right)
		}

		return left.Div(right)

	default: // NodePow
		base, err := r.evalUnits(node.Left)
		if err != nil {
			return unit.Expression{}, err
		}
		expVal, err := evalNumeric(node.Right)
		if err != nil {
			return unit.Expression{}, err
		}
		exp, err := dim.ApproxRational(expVal)
		if err != nil {
			return unit.Expression{}, err
		}

		return base.Pow(exp)
	}
}
