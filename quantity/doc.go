// Package quantity pairs a magnitude with a unit expression and makes
// arithmetic unit-safe: units propagate through every operation, and
// incompatible dimensions fail instead of silently producing numbers.
//
// 🚀 What is a Quantity?
//
//	(magnitude, units), bound to the registry that parsed the units.
//	The magnitude is anything implementing the Magnitude capability
//	interface — elementwise + - * / **, scaling, and ordering — so the
//	same arithmetic works for a plain number (Scalar) and for an
//	externally-owned numeric buffer (Slice) without the engine ever
//	inspecting the concrete representation.
//
// ✨ Semantics (the unit-safety contract):
//   - Add/Sub require dimensional equivalence; the right operand is
//     converted into the left operand's units, and the result keeps
//     the left units: 1 m + 100 cm = 2 m.
//   - Mul/Div/Pow propagate units algebraically; offset units (degC)
//     refuse compounding, as everywhere in this module.
//   - To returns a converted copy; Ito converts in place — the one
//     sanctioned mutation, for callers who cannot afford to
//     reallocate large buffers.
//   - Comparisons convert the side with the simpler unit (fewer
//     distinct factors) into the other side's units first, and fail on
//     dimension mismatch rather than answering false.
//
// ⚙️ Usage:
//
//	reg := registry.Default()
//	d, _ := quantity.Parse(reg, "3.5 km")
//	t, _ := quantity.NewScalar(reg, 30, "minute")
//	v, _ := d.Div(t)
//	v, _ = v.To("m/s") // 1.944...
//
// Ownership: a Quantity references (never copies) a Slice buffer;
// mutating that buffer outside the Quantity is the caller's problem.
// Scalars are plain values.
package quantity
