// Package unum is a units-of-measure engine: parse unit expressions,
// convert values between compatible units, and carry units through
// arithmetic without losing dimensional safety.
//
// 🚀 What is unum?
//
//	A registry-driven engine that brings together:
//		• Definition tables: base, derived, prefixed, offset and aliased units
//		• Unit algebra: multiply, divide, raise unit expressions to rational powers
//		• Dimensional analysis: every expression reduces to a vector of base dimensions
//		• Conversions: dimensionally-equivalent expressions are one linear map apart
//		• Quantities: (magnitude, units) pairs with unit-safe arithmetic
//
// ✨ Why choose unum?
//
//   - Convenient facade – one call converts between any two unit strings
//   - Rock-solid guarantees – all-or-nothing table loads, R/W locks throughout
//   - Extensible – load your own definition tables beside the built-in SI set
//   - Honest errors – dimension mismatches fail loudly, never return a wrong number
//
// Under the hood, everything is organized under six subpackages:
//
//	dim/       — rational exponents & sparse dimension vectors
//	unitdef/   — definition-table line format parser
//	exprparse/ — unit-expression grammar (AST only, registry-free)
//	unit/      — immutable unit expressions & their algebra
//	registry/  — definition tables, resolution, reduction, conversion
//	quantity/  — magnitudes bound to units, with unit-safe arithmetic
//
// ⚙️ Quick start:
//
//	v, err := unum.Convert(100, "km/h", "m/s") // 27.78
//	q, err := unum.Parse("3.5 km")
//
// Both helpers run against the shared default registry, loaded once
// from the built-in SI definition table. For custom tables, build a
// registry.Registry of your own and use it directly.
//
//	go get github.com/astrenok/unum
package unum
