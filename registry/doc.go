// Package registry implements the unit registry: the owning context
// that loads unit definitions, resolves unit names (including prefixed,
// aliased, and pluralized forms), reduces compound units to base
// dimensions, and computes conversion factors between arbitrary
// compatible units.
//
// 🚀 What does a Registry do?
//
//	Definition text (see package unitdef for the grammar) flows into
//	Load, which is all-or-nothing: one bad line rejects the whole file
//	and leaves the registry exactly as it was. After loading, the
//	registry answers four questions:
//	  • ParseUnits("kg * m / s ** 2") — what expression is this string?
//	  • Dimensionality(expr)          — what physical dimension is it?
//	  • BaseUnits(expr)               — what is it in base units, and
//	    at what multiplicative scale?
//	  • Conversion(from, to)          — what linear map takes a value
//	    in `from` to a value in `to`?
//
// ✨ Key features:
//   - Resolution pipeline: exact canonical name → exact symbol → exact
//     alias → longest-prefix decomposition (recursive on the
//     remainder) → plural stripping as last resort, so "km",
//     "kilometer", "kilometers" and "metres" all find meter.
//   - Affine conversion: offset units (degC, degF) convert through
//     their reference point; compound use of an offset unit is
//     rejected when the expression is built, never silently computed.
//   - Memoized reduction: dimensionality and base-unit forms are
//     computed once per canonical name and cached; the parsed-
//     expression cache is keyed by the exact input string. All caches
//     are RWMutex-guarded, so a fully loaded registry is safe for
//     concurrent readers.
//   - Registry identity: every Expression is stamped with its creating
//     registry; mixing registries fails rather than guessing.
//     Fingerprint() additionally hashes the loaded definition table so
//     callers can tell whether two registries hold identical
//     vocabularies.
//
// ⚙️ Usage:
//
//	reg := registry.Default() // SI + common units, loaded once
//	mps, _ := reg.ParseUnits("m/s")
//	kmh, _ := reg.ParseUnits("km/hour")
//	out, err := reg.Convert(100, kmh, mps) // 27.77...
//
// Concurrency: Load and LoadSystems are writes and must be externally
// serialized against each other; everything else may run concurrently
// once loading is done.
package registry
