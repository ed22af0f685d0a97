package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndcalc-io/ndcalc/ast"
	"github.com/ndcalc-io/ndcalc/errz"
)

// parse is a test helper using a default variable set.
func parse(t *testing.T, input string, variables ...string) ast.Node {
	t.Helper()
	node, err := Parse(input, variables)
	require.Nil(t, err)
	require.NotNil(t, node)
	return node
}

// The String() form parenthesizes every operator node, which makes
// associativity and precedence directly visible.
func TestPrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2 + 3 - 1", "((2 + 3) - 1)"},
		{"2 * 3 / 4", "((2 * 3) / 4)"},
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"2 * 3 + 4", "((2 * 3) + 4)"},
		{"2 ^ 3 ^ 2", "(2 ^ (3 ^ 2))"},
		{"2 + 3 * 4 ^ 2", "(2 + (3 * (4 ^ 2)))"},
		{"(2 + 3) * 4", "((2 + 3) * 4)"},
		{"x + y * z", "(x + (y * z))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parse(t, tt.input, "x", "y", "z")
			require.Equal(t, tt.expected, node.String())
		})
	}
}

// Unary minus binds tighter than '^': -2^2 is (-2)^2, not -(2^2).
func TestUnaryMinusBindsAtPrimary(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-2 ^ 2", "((-2) ^ 2)"},
		{"-x", "(-x)"},
		{"--x", "(-(-x))"},
		{"2 - -3", "(2 - (-3))"},
		{"-sin(x)", "(-sin(x))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parse(t, tt.input, "x")
			require.Equal(t, tt.expected, node.String())
		})
	}
}

func TestUnaryPlusIsFolded(t *testing.T) {
	node := parse(t, "+x", "x")
	v, ok := node.(*ast.Variable)
	require.True(t, ok)
	require.Equal(t, "x", v.Name)
}

func TestVariableResolution(t *testing.T) {
	node := parse(t, "a + c", "a", "b", "c")
	infix, ok := node.(*ast.Infix)
	require.True(t, ok)
	left, ok := infix.X.(*ast.Variable)
	require.True(t, ok)
	require.Equal(t, 0, left.Index)
	right, ok := infix.Y.(*ast.Variable)
	require.True(t, ok)
	require.Equal(t, 2, right.Index)
}

func TestUnknownVariable(t *testing.T) {
	_, err := Parse("x + q", []string{"x"})
	require.NotNil(t, err)
	var parseErr *errz.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, err.Error(), `unknown variable "q"`)
	require.Equal(t, 4, parseErr.Position.Offset)
}

// Argument lists are captured without arity checks; the compiler owns
// arity validation.
func TestFunctionCallCapturesArguments(t *testing.T) {
	tests := []struct {
		input   string
		numArgs int
	}{
		{"sin()", 0},
		{"sin(x)", 1},
		{"sin(x, y)", 2},
		{"pow(x, y)", 2},
		{"pow(x)", 1},
		{"pow(sin(x), 2 + 3)", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parse(t, tt.input, "x", "y")
			call, ok := node.(*ast.Call)
			require.True(t, ok)
			require.Len(t, call.Args, tt.numArgs)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"trailing tokens", "x + 1 2", "unexpected token"},
		{"trailing paren", "x)", `unexpected token ")"`},
		{"missing operand", "x +", "unexpected end of expression"},
		{"empty input", "", "unexpected end of expression"},
		{"missing close paren", "(x + 1", "expected closing parenthesis"},
		{"missing open paren", "sin x", "expected '(' after function name"},
		{"bad separator", "pow(x; y)", "unexpected character"},
		{"missing comma", "pow(x y)", `expected ',' or ')'`},
		{"operator only", "*", `unexpected token "*"`},
		{"comma outside call", "x, y", "unexpected token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, []string{"x", "y"})
			require.NotNil(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMaxDepth(t *testing.T) {
	// 15 levels of parentheses exceeds a limit of 10.
	input := strings.Repeat("(", 15) + "x" + strings.Repeat(")", 15)
	_, err := Parse(input, []string{"x"}, WithMaxDepth(10))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "too deeply nested")

	// The same expression parses fine with the default limit.
	_, err = Parse(input, []string{"x"})
	require.Nil(t, err)
}

func TestDeeplyNestedBeyondDefault(t *testing.T) {
	input := strings.Repeat("(", 500) + "x" + strings.Repeat(")", 500)
	_, err := Parse(input, []string{"x"})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "too deeply nested")
}

func TestPositionsInAST(t *testing.T) {
	node := parse(t, "  sin(x)", "x")
	require.Equal(t, 2, node.Pos().Offset)
}
