// Package unitdef parses the line-oriented unit-definition language
// into typed records, without resolving anything: names, references and
// cycles are the registry's business.
//
// 🚀 The definition grammar (UTF-8, one definition per line, "#" starts
// a comment, blank lines ignored):
//
//	meter - = m = metre                  # base unit, dimension [meter]
//	kilo- = 1e3 = k-                     # prefix, ×1000
//	newton = kilogram * meter / second ** 2 = N   # derived unit
//	degC = 1 kelvin ; 273.15 = celsius   # affine unit (scale ; offset)
//	@alias meter = metres = Meter        # extra names for a known unit
//
// On every unit line the first "=" chained name after the definition
// body is the symbol, any further names are aliases. Prefix chain items
// keep their trailing dash ("k-").
//
// ✨ Guarantees:
//   - Purely syntactic: right-hand expressions are parsed into
//     exprparse ASTs but identifiers inside them are not resolved.
//   - Positional failures: every error is a *DefinitionError carrying
//     the 1-based line number and the offending text, and unwraps to
//     ErrDefinition.
//   - Parsing stops at the first bad line, so a caller loading a file
//     never sees a partially-usable record list (spec: definition
//     loading is all-or-nothing).
//
// ⚙️ Usage:
//
//	defs, err := unitdef.Parse(text)
//	if err != nil { ... } // *unitdef.DefinitionError
//	for _, d := range defs { ... } // feed a registry
package unitdef
