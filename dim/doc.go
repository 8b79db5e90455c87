// Package dim provides the dimensional fingerprint of a physical unit:
// a sparse, immutable vector of rational exponents over base-dimension
// names, plus the exact rational arithmetic those exponents require.
//
// 🚀 What is a dimension vector?
//
//	Every physical unit reduces to a product of base dimensions raised
//	to rational powers: velocity is [length]¹·[time]⁻¹, energy is
//	[mass]¹·[length]²·[time]⁻², the square root of an area is
//	[length]^(1/2). A dim.Vector records exactly those exponents and
//	nothing else — two units are dimensionally compatible iff their
//	vectors are equal.
//
// ✨ Key properties:
//   - Canonical sparse form: zero exponents are never stored, so Equal
//     is a plain map comparison.
//   - Immutable: Mul, Div and Pow always return a new Vector; a Vector
//     handed to a caller can never change underneath it.
//   - Exact: exponents are dim.Rational (normalized int64 fractions),
//     a comparable value type, so ½+½ is exactly 1 and map equality
//     is never defeated by floating-point drift.
//
// ⚙️ Usage:
//
//	import "github.com/astrenok/unum/dim"
//
//	length := dim.NewVector(map[string]dim.Rational{"[meter]": dim.Int(1)})
//	speed := length.Div(dim.NewVector(map[string]dim.Rational{"[second]": dim.Int(1)}))
//	speed.IsDimensionless() // false
//	speed.Mul(speed.Inv()).IsDimensionless() // true
//
// Complexity: all Vector operations are O(n) in the number of non-zero
// exponents, which in practice is ≤ 7 (the SI base dimensions).
package dim
