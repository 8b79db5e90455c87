package unitdef

import (
	"errors"
	"fmt"

	"github.com/astrenok/unum/exprparse"
)

// ErrDefinition is the sentinel every definition failure matches via
// errors.Is, whatever the concrete cause.
var ErrDefinition = errors.New("unitdef: invalid definition")

// DefinitionError reports a bad definition line: where it is, what it
// said, and why it was rejected.
//
// The registry reuses this type for semantic load failures (unknown
// reference, duplicate name, cyclic chain) by setting Cause to its own
// sentinel; errors.Is then matches both ErrDefinition and the cause.
type DefinitionError struct {
	// Line is the 1-based line number within the loaded text.
	Line int

	// Text is the offending line, comment and surrounding space stripped.
	Text string

	// Reason describes the rejection in one clause.
	Reason string

	// Cause optionally carries an underlying sentinel or parse error.
	Cause error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unitdef: line %d %q: %s: %v", e.Line, e.Text, e.Reason, e.Cause)
	}

	return fmt.Sprintf("unitdef: line %d %q: %s", e.Line, e.Text, e.Reason)
}

// Is lets errors.Is(err, ErrDefinition) match regardless of Cause.
func (e *DefinitionError) Is(target error) bool { return target == ErrDefinition }

// Unwrap exposes the underlying cause to errors.Is/errors.As chains.
func (e *DefinitionError) Unwrap() error { return e.Cause }

// Kind discriminates definition records.
type Kind int

const (
	// KindBase defines a new base unit with implicit dimension [name].
	KindBase Kind = iota

	// KindDerived defines a unit by an expression over known units.
	KindDerived

	// KindAffine defines a scale-plus-offset unit (e.g. degC).
	KindAffine

	// KindPrefix defines a multiplier prefix (e.g. kilo- = 1e3).
	KindPrefix

	// KindAlias attaches additional names to an existing unit.
	KindAlias
)

// String returns the lowercase record-kind name.
func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindDerived:
		return "derived"
	case KindAffine:
		return "affine"
	case KindPrefix:
		return "prefix"
	case KindAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// Definition is one parsed record of the definition language.
//
// Fields are populated by Kind:
//   - KindBase:    Name, Symbol, Aliases.
//   - KindDerived: Name, Symbol, Aliases, Expr/ExprText.
//   - KindAffine:  Name, Symbol, Aliases, Expr/ExprText (the reference
//     expression left of ";"), Offset.
//   - KindPrefix:  Name (dash stripped), Symbol, Aliases (dash
//     stripped), Multiplier.
//   - KindAlias:   Name (the target unit), Aliases.
type Definition struct {
	Kind       Kind
	Name       string
	Symbol     string
	Aliases    []string
	Expr       *exprparse.Node
	ExprText   string
	Offset     float64
	Multiplier float64

	// Line is the 1-based source line, kept so the registry can report
	// semantic failures (unknown reference, cycles) against the file.
	Line int
}
