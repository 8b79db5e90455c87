package exprparse

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel all parse failures unwrap to; match it with
// errors.Is and inspect the concrete *ParseError for the position.
var ErrSyntax = errors.New("exprparse: malformed unit expression")

// ParseError reports a syntax error at a byte offset of the input.
type ParseError struct {
	// Pos is the 0-based byte offset of the offending token.
	Pos int

	// Msg describes what was expected or found.
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("exprparse: %s at offset %d", e.Msg, e.Pos)
}

// Unwrap lets errors.Is(err, ErrSyntax) match any parse error.
func (e *ParseError) Unwrap() error { return ErrSyntax }

// NodeKind discriminates AST node variants.
type NodeKind int

const (
	// NodeName is an identifier leaf (a unit token, resolved later).
	NodeName NodeKind = iota

	// NodeNumber is a numeric-literal leaf.
	NodeNumber

	// NodeMul is a binary multiplication (explicit or implicit).
	NodeMul

	// NodeDiv is a binary division.
	NodeDiv

	// NodePow is exponentiation; Right must evaluate to a pure number.
	NodePow
)

// Node is one vertex of the parsed expression tree.
//
// Leaves carry Name (NodeName) or Value (NodeNumber); internal nodes
// carry Left and Right. Pos is the byte offset of the token that
// produced the node, preserved so later resolution stages can report
// positions too.
type Node struct {
	Kind  NodeKind
	Name  string
	Value float64
	Pos   int
	Left  *Node
	Right *Node
}

// tokenKind discriminates scanner output.
type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenNumber
	tokenStar
	tokenSlash
	tokenPow
	tokenMinus
	tokenLParen
	tokenRParen
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}
