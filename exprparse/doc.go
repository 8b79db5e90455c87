// Package exprparse tokenizes and parses unit-expression strings such
// as "kg * m / s ** 2", "m/s**2" or "degC" into a small AST.
//
// 🚀 What does it parse?
//
//	The unit-expression grammar, in ascending precedence:
//	  • multiplication and division: "*", "/", and implicit
//	    multiplication by adjacency ("kg m", "2m", "(m)(s)")
//	  • exponentiation: "**" or "^", binding tighter than "*"/"/",
//	    right-associative, with unary minus allowed only in exponents
//	  • parentheses for grouping
//	Atoms are identifiers (unit names — NOT validated here) and numeric
//	literals (integer, float, scientific notation).
//
// ✨ Design notes:
//   - The parser is registry-independent: identifiers are resolved
//     lazily by the registry when the AST is evaluated, so the same
//     AST machinery also parses the right-hand sides of unit
//     definition lines before the vocabulary exists.
//   - Errors are positional: every ParseError carries the byte offset
//     of the offending token and unwraps to ErrSyntax.
//
// ⚙️ Usage:
//
//	node, err := exprparse.Parse("kg * m / s ** 2")
//	if err != nil { ... }
//	// walk node: Mul/Div/Pow internal nodes, Name/Number leaves
//
// Complexity: tokenizing and parsing are both O(n) in the input length;
// the grammar is LL(1) plus one token of lookahead for implicit
// multiplication.
package exprparse
