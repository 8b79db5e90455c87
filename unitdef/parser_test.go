package unitdef_test

import (
	"testing"

	"github.com/astrenok/unum/exprparse"
	"github.com/astrenok/unum/unitdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------------------------------------------------------
// 1. Record forms
// ------------------------------------------------------------------------

func TestParse_BaseUnit(t *testing.T) {
	defs, err := unitdef.Parse("meter - = m = metre")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, unitdef.KindBase, d.Kind)
	assert.Equal(t, "meter", d.Name)
	assert.Equal(t, "m", d.Symbol)
	assert.Equal(t, []string{"metre"}, d.Aliases)
	assert.Equal(t, 1, d.Line)
}

func TestParse_BaseUnitBare(t *testing.T) {
	defs, err := unitdef.Parse("candela -")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, unitdef.KindBase, defs[0].Kind)
	assert.Empty(t, defs[0].Symbol)
}

func TestParse_Prefix(t *testing.T) {
	defs, err := unitdef.Parse("kilo- = 1e3 = k-")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, unitdef.KindPrefix, d.Kind)
	assert.Equal(t, "kilo", d.Name)
	assert.Equal(t, "k", d.Symbol)
	assert.Equal(t, 1000.0, d.Multiplier)
}

func TestParse_Derived(t *testing.T) {
	defs, err := unitdef.Parse("newton = kilogram * meter / second ** 2 = N")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, unitdef.KindDerived, d.Kind)
	assert.Equal(t, "newton", d.Name)
	assert.Equal(t, "N", d.Symbol)
	assert.Equal(t, "kilogram * meter / second ** 2", d.ExprText)
	require.NotNil(t, d.Expr)
	assert.Equal(t, exprparse.NodeDiv, d.Expr.Kind)
}

func TestParse_Affine(t *testing.T) {
	defs, err := unitdef.Parse("degC = 1 kelvin ; 273.15 = celsius = centigrade")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, unitdef.KindAffine, d.Kind)
	assert.Equal(t, "degC", d.Name)
	assert.Equal(t, 273.15, d.Offset)
	assert.Equal(t, "1 kelvin", d.ExprText)
	assert.Equal(t, "celsius", d.Symbol)
	assert.Equal(t, []string{"centigrade"}, d.Aliases)
}

func TestParse_Alias(t *testing.T) {
	defs, err := unitdef.Parse("@alias meter = metres = Meter")
	require.NoError(t, err)
	require.Len(t, defs, 1)

	d := defs[0]
	assert.Equal(t, unitdef.KindAlias, d.Kind)
	assert.Equal(t, "meter", d.Name)
	assert.Equal(t, []string{"metres", "Meter"}, d.Aliases)
}

func TestParse_CommentsAndBlanks(t *testing.T) {
	text := "# SI length\n\nmeter - = m   # trailing comment\n\t\n"
	defs, err := unitdef.Parse(text)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "meter", defs[0].Name)
	assert.Equal(t, 3, defs[0].Line)
}

// ------------------------------------------------------------------------
// 2. Malformed lines
// ------------------------------------------------------------------------

func TestParse_BadLines(t *testing.T) {
	cases := []string{
		"@system si",                  // unknown directive
		"@alias meter",                // no alternates
		"kilo- = -5 = k-",             // non-positive multiplier
		"kilo- = abc",                 // multiplier not a number
		"kilo- = 1e3 = k",             // chain item missing dash
		"newton =",                    // missing expression
		"newton = kg * * m",           // bad expression
		"degC = 1 kelvin ; warm",      // offset not a number
		"3rd - = x",                   // name starts with a digit
		"lonely",                      // no definition at all
	}
	for _, line := range cases {
		_, err := unitdef.Parse(line)
		require.Error(t, err, "line %q", line)
		assert.ErrorIs(t, err, unitdef.ErrDefinition, "line %q", line)

		var derr *unitdef.DefinitionError
		require.ErrorAs(t, err, &derr, "line %q", line)
		assert.Equal(t, 1, derr.Line, "line %q", line)
	}
}

func TestParse_BadExpressionKeepsParseError(t *testing.T) {
	_, err := unitdef.Parse("newton = kg * * m")
	assert.ErrorIs(t, err, unitdef.ErrDefinition)
	assert.ErrorIs(t, err, exprparse.ErrSyntax, "the underlying parse error must remain inspectable")
}

func TestParse_StopsAtFirstBadLine(t *testing.T) {
	text := "meter - = m\nbogus\nsecond - = s"
	_, err := unitdef.Parse(text)
	require.Error(t, err)

	var derr *unitdef.DefinitionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 2, derr.Line)
	assert.Equal(t, "bogus", derr.Text)
}
