// Package autodiff computes exact derivatives of compiled programs with
// forward-mode automatic differentiation.
//
// The engine mirrors the vm package's opcode semantics instruction for
// instruction, but executes over Dual numbers, so one pass produces both
// the primal value and one directional derivative. Gradients run the
// program once per input variable, seeding one variable's derivative to
// 1 per pass; cost is O(number of variables) forward passes, a deliberate
// trade-off favoring simplicity at the handful of dimensions the
// visualization front end uses.
//
// The domain checks and their error messages match the vm package, so an
// AD failure carries the same error categories a plain evaluation would.
package autodiff

import (
	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/op"
)

// hessianStep is the fixed perturbation used by Hessian when
// forward-differencing the AD gradient. It is independent of any
// finite-difference epsilon configured by the caller.
const hessianStep = 1e-8

// Run executes the program over Dual inputs and returns the Dual result.
// Seed the Derivative field of exactly one input to 1 to obtain the
// partial derivative with respect to that input.
func Run(program *bytecode.Program, inputs []Dual) (Dual, error) {
	if len(inputs) != program.NumVariables() {
		return Dual{}, errz.Evalf("input count mismatch: program declares %d variables, got %d",
			program.NumVariables(), len(inputs))
	}

	stack := make([]Dual, 0, program.MaxStack())
	count := program.InstructionCount()

	for ip := 0; ip < count; ip++ {
		instr := program.Instruction(ip)
		code := instr.Opcode()
		switch code {
		case op.PushConst:
			stack = append(stack, Dual{Value: instr.Constant()})

		case op.LoadVar:
			idx := instr.VarIndex()
			if idx < 0 || idx >= len(inputs) {
				return Dual{}, errz.Evalf("variable index %d out of bounds", idx)
			}
			stack = append(stack, inputs[idx])

		case op.Add, op.Sub, op.Mul, op.Div, op.Pow:
			if len(stack) < 2 {
				return Dual{}, errz.Evalf("stack underflow in %s", code)
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			var v Dual
			switch code {
			case op.Add:
				v = a.Add(b)
			case op.Sub:
				v = a.Sub(b)
			case op.Mul:
				v = a.Mul(b)
			case op.Div:
				if b.Value == 0.0 {
					return Dual{}, errz.Evalf("division by zero")
				}
				v = a.Quo(b)
			case op.Pow:
				v = Pow(a, b)
			}
			stack[len(stack)-1] = v

		case op.Neg:
			if len(stack) == 0 {
				return Dual{}, errz.Evalf("stack underflow in %s", code)
			}
			stack[len(stack)-1] = stack[len(stack)-1].Neg()

		case op.Sin, op.Cos, op.Tan, op.Exp, op.Log, op.Sqrt, op.Abs:
			if len(stack) == 0 {
				return Dual{}, errz.Evalf("stack underflow in %s", code)
			}
			x := stack[len(stack)-1]
			var v Dual
			switch code {
			case op.Sin:
				v = Sin(x)
			case op.Cos:
				v = Cos(x)
			case op.Tan:
				v = Tan(x)
			case op.Exp:
				v = Exp(x)
			case op.Log:
				if x.Value <= 0.0 {
					return Dual{}, errz.Evalf("logarithm of non-positive number")
				}
				v = Log(x)
			case op.Sqrt:
				if x.Value < 0.0 {
					return Dual{}, errz.Evalf("square root of negative number")
				}
				v = Sqrt(x)
			case op.Abs:
				v = Abs(x)
			}
			stack[len(stack)-1] = v

		case op.Return:
			if len(stack) != 1 {
				return Dual{}, errz.Evalf("invalid stack size %d at return", len(stack))
			}
			return stack[0], nil

		default:
			return Dual{}, errz.Evalf("invalid opcode %d", code)
		}
	}

	return Dual{}, errz.Evalf("missing return instruction")
}

// Gradient computes the exact gradient of the program at the given
// point: one forward pass per input variable, each seeding that
// variable's derivative to 1.
func Gradient(program *bytecode.Program, inputs []float64) ([]float64, error) {
	if len(inputs) != program.NumVariables() {
		return nil, errz.Evalf("input count mismatch: program declares %d variables, got %d",
			program.NumVariables(), len(inputs))
	}

	gradient := make([]float64, len(inputs))
	duals := make([]Dual, len(inputs))
	for i := range inputs {
		for j := range inputs {
			duals[j] = Dual{Value: inputs[j]}
		}
		duals[i].Derivative = 1.0
		result, err := Run(program, duals)
		if err != nil {
			return nil, err
		}
		gradient[i] = result.Derivative
	}
	return gradient, nil
}

// Hessian approximates the Hessian at the given point by forward
// differencing the first-order AD gradient with a fixed step: the base
// gradient is computed once, then each input is perturbed by
// hessianStep and the gradient recomputed, one perturbation per row.
// Rows are computed independently and symmetry is not enforced. The
// result is row-major with side len(inputs).
func Hessian(program *bytecode.Program, inputs []float64) ([]float64, error) {
	if len(inputs) != program.NumVariables() {
		return nil, errz.Evalf("input count mismatch: program declares %d variables, got %d",
			program.NumVariables(), len(inputs))
	}

	n := len(inputs)
	gradBase, err := Gradient(program, inputs)
	if err != nil {
		return nil, err
	}

	hessian := make([]float64, n*n)
	perturbed := make([]float64, n)
	copy(perturbed, inputs)
	for i := 0; i < n; i++ {
		perturbed[i] = inputs[i] + hessianStep
		gradPerturbed, err := Gradient(program, perturbed)
		if err != nil {
			return nil, err
		}
		for j := 0; j < n; j++ {
			hessian[i*n+j] = (gradPerturbed[j] - gradBase[j]) / hessianStep
		}
		perturbed[i] = inputs[i]
	}
	return hessian, nil
}
