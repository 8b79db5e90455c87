// Package unit implements the algebra of compound units: the immutable
// Expression type mapping canonical unit names to rational exponents,
// plus a multiplicative scale.
//
// 🚀 What is an Expression?
//
//	The reduced intermediate form of a unit string. "kg * m / s ** 2"
//	becomes {kilogram:1, meter:1, second:-2} with scale 1; "km" becomes
//	{meter:1} with scale 1000. Two expressions are dimensionally
//	equivalent iff the registry reduces them to equal dimension
//	vectors, regardless of scale or which derived units were used.
//
// ✨ Invariants, enforced at construction and by every operation:
//   - Canonical sparse form: factors with zero exponent are dropped.
//   - Immutable: Mul, Div, and Pow return new Expressions.
//   - Affine discipline: an expression containing an offset unit
//     (degC, degF) must be literally that bare unit — one factor,
//     exponent 1, scale 1. Any algebra that would combine an offset
//     unit with another factor, scale it, or raise it to a power
//     other than 1 fails with ErrOffsetUnit instead of silently
//     producing a physically meaningless unit.
//   - Registry binding: every Expression carries the stamp of the
//     registry that created it; algebra across two registries fails
//     with ErrRegistryMismatch, because independent registries need
//     not agree on definitions.
//
// Expressions are created by a registry (parsing or reduction) — the
// constructors here are its building blocks, not a user entry point.
package unit
