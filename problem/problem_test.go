package problem_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momex/moments"
	"momex/problem"
	"momex/symmath"
)

func sampleProblem(t *testing.T) *problem.ODEProblem {
	t.Helper()
	lhs := []symmath.Expr{symmath.S("y_0"), symmath.S("yx_2")}
	rhs := []symmath.Expr{
		symmath.AddOf(symmath.S("c_0"), symmath.MulOf(symmath.N(-1), symmath.S("c_1"), symmath.S("y_0"))),
		symmath.AddOf(symmath.S("c_0"), symmath.MulOf(symmath.N(-2), symmath.S("c_1"), symmath.S("yx_2"))),
	}
	p, err := problem.New(lhs, rhs, []string{"c_0", "c_1"}, []moments.Index{{1}, {2}})
	require.NoError(t, err)
	return p
}

func TestNew_LengthMismatch(t *testing.T) {
	lhs := []symmath.Expr{symmath.S("y_0")}
	_, err := problem.New(lhs, nil, nil, []moments.Index{{1}})

	var vErr *problem.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 1, vErr.LHS)
	assert.Equal(t, 0, vErr.RHS)
	assert.Equal(t, 1, vErr.Moments)
}

func TestNew_Empty(t *testing.T) {
	var vErr *problem.ValidationError
	_, err := problem.New(nil, nil, nil, nil)
	require.ErrorAs(t, err, &vErr)
}

func TestRowOf(t *testing.T) {
	p := sampleProblem(t)

	row, ok := p.RowOf(moments.Index{2})
	require.True(t, ok)
	assert.Equal(t, 1, row)

	_, ok = p.RowOf(moments.Index{3})
	assert.False(t, ok)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	p := sampleProblem(t)

	lhs := p.LHS()
	lhs[0] = symmath.N(0)
	assert.Equal(t, "y_0", p.LHS()[0].String())

	moms := p.Moments()
	moms[0][0] = 99
	assert.Equal(t, moments.Index{1}, p.Moments()[0])
}

func TestSerialize_RoundTrip(t *testing.T) {
	p := sampleProblem(t)

	out := p.String()
	parsed, err := problem.Parse(strings.NewReader(out))
	require.NoError(t, err)

	require.Equal(t, p.Size(), parsed.Size())
	assert.Equal(t, p.Constants(), parsed.Constants())
	assert.Equal(t, p.Moments(), parsed.Moments())
	for i := range p.LHS() {
		assert.True(t, p.LHS()[i].Equal(parsed.LHS()[i]), "LHS row %d", i)
		assert.True(t, p.RHS()[i].Equal(parsed.RHS()[i]), "RHS row %d", i)
	}
}

func TestParse_ToleratesBlankLines(t *testing.T) {
	text := "LHS:\ny_0\n\n\nRHS of equations:\nc_0 - c_1*y_0\n\nConstants:\nc_0\nc_1\n\nList of moments:\n[1]\n"
	p, err := problem.Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Size())
}

func TestParse_MissingSection(t *testing.T) {
	text := "LHS:\ny_0\n\nRHS of equations:\nc_0\n\nList of moments:\n[1]\n"
	_, err := problem.Parse(strings.NewReader(text))

	var missing *problem.MissingSectionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Constants", missing.Section)
}

func TestParse_UnknownSectionHeader(t *testing.T) {
	text := "LHS:\ny_0\n\nRHS of equations:\nc_0\n\nConstants:\nc_0\n\nNotes:\nstray\n\nList of moments:\n[1]\n"
	_, err := problem.Parse(strings.NewReader(text))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section header")
}

func TestParse_ExpressionEndingInColonRejected(t *testing.T) {
	// A malformed entry line ending in a colon must not open a phantom
	// section and swallow the lines after it.
	text := "LHS:\ny_0:\n\nRHS of equations:\nc_0\n\nConstants:\nc_0\n\nList of moments:\n[1]\n"
	_, err := problem.Parse(strings.NewReader(text))
	require.Error(t, err)
}

func TestParse_MalformedMoment(t *testing.T) {
	text := "LHS:\ny_0\n\nRHS of equations:\nc_0\n\nConstants:\nc_0\n\nList of moments:\n[one]\n"
	_, err := problem.Parse(strings.NewReader(text))
	require.Error(t, err)
}

func TestParse_MalformedExpression(t *testing.T) {
	text := "LHS:\ny_0 +\n\nRHS of equations:\nc_0\n\nConstants:\nc_0\n\nList of moments:\n[1]\n"
	_, err := problem.Parse(strings.NewReader(text))
	require.Error(t, err)
}
