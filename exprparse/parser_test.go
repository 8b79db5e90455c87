package exprparse_test

import (
	"testing"

	"github.com/astrenok/unum/exprparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------------------------------------------------------
// 1. Shape of the parsed tree
// ------------------------------------------------------------------------

func TestParse_SingleIdent(t *testing.T) {
	node, err := exprparse.Parse("meter")
	require.NoError(t, err)
	assert.Equal(t, exprparse.NodeName, node.Kind)
	assert.Equal(t, "meter", node.Name)
}

func TestParse_Number(t *testing.T) {
	node, err := exprparse.Parse("2.5e3")
	require.NoError(t, err)
	assert.Equal(t, exprparse.NodeNumber, node.Kind)
	assert.Equal(t, 2500.0, node.Value)
}

func TestParse_Precedence(t *testing.T) {
	// "kg * m / s ** 2" must parse as ((kg * m) / (s ** 2)).
	node, err := exprparse.Parse("kg * m / s ** 2")
	require.NoError(t, err)
	require.Equal(t, exprparse.NodeDiv, node.Kind)
	assert.Equal(t, exprparse.NodeMul, node.Left.Kind)
	require.Equal(t, exprparse.NodePow, node.Right.Kind)
	assert.Equal(t, "s", node.Right.Left.Name)
	assert.Equal(t, 2.0, node.Right.Right.Value)
}

func TestParse_CaretIsPow(t *testing.T) {
	a, err := exprparse.Parse("m^2")
	require.NoError(t, err)
	b, err := exprparse.Parse("m**2")
	require.NoError(t, err)
	assert.Equal(t, b.Kind, a.Kind)
	assert.Equal(t, exprparse.NodePow, a.Kind)
}

func TestParse_ImplicitMultiplication(t *testing.T) {
	// Whitespace adjacency and number-ident adjacency both multiply.
	for _, input := range []string{"kg m", "2 m", "2m", "(kg)(m)"} {
		node, err := exprparse.Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, exprparse.NodeMul, node.Kind, "input %q", input)
	}
}

func TestParse_UnaryMinusInExponent(t *testing.T) {
	node, err := exprparse.Parse("s ** -2")
	require.NoError(t, err)
	require.Equal(t, exprparse.NodePow, node.Kind)
	// The exponent subtree is (-1 * 2); callers evaluate it numerically.
	exp := node.Right
	require.Equal(t, exprparse.NodeMul, exp.Kind)
	assert.Equal(t, -1.0, exp.Left.Value)
	assert.Equal(t, 2.0, exp.Right.Value)
}

func TestParse_ParenthesizedExponent(t *testing.T) {
	node, err := exprparse.Parse("m ** (1/2)")
	require.NoError(t, err)
	require.Equal(t, exprparse.NodePow, node.Kind)
	assert.Equal(t, exprparse.NodeDiv, node.Right.Kind)
}

func TestParse_PowRightAssociative(t *testing.T) {
	node, err := exprparse.Parse("m ** 2 ** 3")
	require.NoError(t, err)
	require.Equal(t, exprparse.NodePow, node.Kind)
	assert.Equal(t, "m", node.Left.Name)
	assert.Equal(t, exprparse.NodePow, node.Right.Kind)
}

// ------------------------------------------------------------------------
// 2. Malformed input
// ------------------------------------------------------------------------

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		input string
		pos   int
	}{
		{"", 0},
		{"(m", 2},
		{"m)", 1},
		{"m * * s", 4},
		{"m @ s", 2},
		{"m - s", 2},  // minus is only legal inside exponents
		{"m ** ", 5},
		{"..2", 0},
	}
	for _, tc := range cases {
		_, err := exprparse.Parse(tc.input)
		require.Error(t, err, "input %q", tc.input)
		assert.ErrorIs(t, err, exprparse.ErrSyntax, "input %q", tc.input)

		var perr *exprparse.ParseError
		require.ErrorAs(t, err, &perr, "input %q", tc.input)
		assert.Equal(t, tc.pos, perr.Pos, "input %q", tc.input)
	}
}
