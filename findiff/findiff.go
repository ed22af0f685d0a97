// Package findiff approximates derivatives of compiled programs with
// finite differences.
//
// It is the fallback and cross-check for the autodiff package: gradients
// use central differences, Hessians use second-difference and
// mixed-partial stencils. Every sample is an independent scalar vm
// evaluation at a perturbed point; any evaluation failure aborts the
// whole computation with that failure.
package findiff

import (
	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/vm"
)

// DefaultEpsilon is the default finite-difference step size.
const DefaultEpsilon = 1e-8

// Gradient approximates the gradient at the given point with central
// differences: (f(x+h·eᵢ) − f(x−h·eᵢ)) / (2h), two evaluations per
// component.
func Gradient(program *bytecode.Program, inputs []float64, epsilon float64) ([]float64, error) {
	if len(inputs) != program.NumVariables() {
		return nil, errz.Evalf("input count mismatch: program declares %d variables, got %d",
			program.NumVariables(), len(inputs))
	}

	n := len(inputs)
	gradient := make([]float64, n)
	plus := make([]float64, n)
	minus := make([]float64, n)
	copy(plus, inputs)
	copy(minus, inputs)

	for i := 0; i < n; i++ {
		plus[i] = inputs[i] + epsilon
		fPlus, err := vm.Run(program, plus)
		if err != nil {
			return nil, errz.Evalf("failed to evaluate at perturbed point (+): %v", err)
		}
		minus[i] = inputs[i] - epsilon
		fMinus, err := vm.Run(program, minus)
		if err != nil {
			return nil, errz.Evalf("failed to evaluate at perturbed point (-): %v", err)
		}
		gradient[i] = (fPlus - fMinus) / (2.0 * epsilon)
		plus[i] = inputs[i]
		minus[i] = inputs[i]
	}
	return gradient, nil
}

// Hessian approximates the Hessian at the given point. Diagonal entries
// use the second-difference stencil
// (f(x+h·eᵢ) − 2f(x) + f(x−h·eᵢ)) / h²; off-diagonal entries use the
// mixed-partial stencil
// (f(x+h·eᵢ+h·eⱼ) − f(x+h·eᵢ) − f(x+h·eⱼ) + f(x)) / h², computed once
// per unordered pair and written symmetrically into (i,j) and (j,i).
// The result is row-major with side len(inputs).
func Hessian(program *bytecode.Program, inputs []float64, epsilon float64) ([]float64, error) {
	if len(inputs) != program.NumVariables() {
		return nil, errz.Evalf("input count mismatch: program declares %d variables, got %d",
			program.NumVariables(), len(inputs))
	}

	n := len(inputs)
	hessian := make([]float64, n*n)
	perturbed := make([]float64, n)
	copy(perturbed, inputs)

	fBase, err := vm.Run(program, inputs)
	if err != nil {
		return nil, errz.Evalf("failed to evaluate at base point: %v", err)
	}

	for i := 0; i < n; i++ {
		perturbed[i] = inputs[i] + epsilon
		fIPlus, err := vm.Run(program, perturbed)
		if err != nil {
			return nil, errz.Evalf("failed to evaluate at perturbed point: %v", err)
		}
		perturbed[i] = inputs[i] - epsilon
		fIMinus, err := vm.Run(program, perturbed)
		if err != nil {
			return nil, errz.Evalf("failed to evaluate at perturbed point: %v", err)
		}
		hessian[i*n+i] = (fIPlus - 2.0*fBase + fIMinus) / (epsilon * epsilon)
		perturbed[i] = inputs[i]

		for j := i + 1; j < n; j++ {
			perturbed[i] = inputs[i] + epsilon
			perturbed[j] = inputs[j] + epsilon
			fIJ, err := vm.Run(program, perturbed)
			if err != nil {
				return nil, errz.Evalf("failed to evaluate at perturbed point: %v", err)
			}
			perturbed[i] = inputs[i]
			fJPlus, err := vm.Run(program, perturbed)
			if err != nil {
				return nil, errz.Evalf("failed to evaluate at perturbed point: %v", err)
			}
			hij := (fIJ - fIPlus - fJPlus + fBase) / (epsilon * epsilon)
			hessian[i*n+j] = hij
			hessian[j*n+i] = hij
			perturbed[j] = inputs[j]
		}
	}
	return hessian, nil
}
