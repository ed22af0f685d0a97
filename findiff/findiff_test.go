package findiff

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndcalc-io/ndcalc/autodiff"
	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/compiler"
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/parser"
)

func compile(t *testing.T, input string, variables ...string) *bytecode.Program {
	t.Helper()
	node, err := parser.Parse(input, variables)
	require.Nil(t, err)
	program, err := compiler.Compile(node, len(variables))
	require.Nil(t, err)
	return program
}

func TestGradientQuadratic(t *testing.T) {
	program := compile(t, "x^2 + y^2", "x", "y")
	gradient, err := Gradient(program, []float64{3, 4}, DefaultEpsilon)
	require.Nil(t, err)
	require.Len(t, gradient, 2)
	require.InDelta(t, 6.0, gradient[0], 1e-5)
	require.InDelta(t, 8.0, gradient[1], 1e-5)
}

func TestGradientAgreesWithAutodiff(t *testing.T) {
	program := compile(t, "sin(x)*exp(y) + z^2", "x", "y", "z")
	at := []float64{1, 0.5, 2}

	exact, err := autodiff.Gradient(program, at)
	require.Nil(t, err)
	approx, err := Gradient(program, at, DefaultEpsilon)
	require.Nil(t, err)

	require.Len(t, approx, 3)
	for i := range exact {
		require.InDelta(t, exact[i], approx[i], 1e-5, "component %d", i)
	}
}

func TestGradientDimensionMismatch(t *testing.T) {
	program := compile(t, "x + y", "x", "y")
	_, err := Gradient(program, []float64{1, 2, 3}, DefaultEpsilon)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "input count mismatch")
}

func TestGradientPerturbedPointFailure(t *testing.T) {
	// log(x) at x = 0: the sample at x+h succeeds but x-h is negative.
	program := compile(t, "log(x)", "x")
	_, err := Gradient(program, []float64{0}, DefaultEpsilon)
	require.NotNil(t, err)
	var evalErr *errz.EvalError
	require.ErrorAs(t, err, &evalErr)
	require.Contains(t, err.Error(), "failed to evaluate at perturbed point")
	require.Contains(t, err.Error(), "logarithm of non-positive number")
}

func TestHessianQuadratic(t *testing.T) {
	// A quadratic has zero truncation error, so any reasonable step
	// works; a larger one keeps h² clear of float64 rounding noise.
	program := compile(t, "x^2 + y^2", "x", "y")
	hessian, err := Hessian(program, []float64{3, 4}, 1e-4)
	require.Nil(t, err)
	require.Len(t, hessian, 4)
	require.InDelta(t, 2.0, hessian[0], 1e-4)
	require.InDelta(t, 0.0, hessian[1], 1e-4)
	require.InDelta(t, 0.0, hessian[2], 1e-4)
	require.InDelta(t, 2.0, hessian[3], 1e-4)
}

func TestHessianMixedPartials(t *testing.T) {
	program := compile(t, "x * y", "x", "y")
	hessian, err := Hessian(program, []float64{2, 3}, 1e-4)
	require.Nil(t, err)
	require.InDelta(t, 1.0, hessian[1], 1e-4)
	require.InDelta(t, 1.0, hessian[2], 1e-4)
}

func TestHessianSymmetryExact(t *testing.T) {
	// Off-diagonal entries are computed once per pair and written to
	// both (i,j) and (j,i), so symmetry is exact, not approximate.
	program := compile(t, "sin(x)*exp(y) + x*y^2 + cos(z)*x", "x", "y", "z")
	hessian, err := Hessian(program, []float64{0.7, 1.3, -0.4}, 1e-5)
	require.Nil(t, err)
	n := 3
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			require.Equal(t, hessian[i*n+j], hessian[j*n+i], "entries (%d,%d) and (%d,%d)", i, j, j, i)
		}
	}
}

func TestHessianTrig(t *testing.T) {
	// d²/dx² sin(x) = -sin(x)
	program := compile(t, "sin(x)", "x")
	at := 1.1
	hessian, err := Hessian(program, []float64{at}, 1e-4)
	require.Nil(t, err)
	require.InDelta(t, -math.Sin(at), hessian[0], 1e-4)
}

func TestHessianBasePointFailure(t *testing.T) {
	program := compile(t, "sqrt(x)", "x")
	_, err := Hessian(program, []float64{-1}, DefaultEpsilon)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "failed to evaluate at base point")
}

func TestHessianDimensionMismatch(t *testing.T) {
	program := compile(t, "x", "x")
	_, err := Hessian(program, nil, DefaultEpsilon)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "input count mismatch")
}
