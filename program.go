package ndcalc

import (
	"github.com/ndcalc-io/ndcalc/autodiff"
	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/dis"
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/findiff"
	"github.com/ndcalc-io/ndcalc/vm"
)

// Program is the compiled representation of one expression. The
// underlying bytecode is immutable and every evaluation uses its own
// scratch state, so concurrent evaluations on one Program are safe. The
// mode and epsilon settings are plain fields: change them between
// evaluation calls, not during one.
type Program struct {
	code    *bytecode.Program
	mode    Mode
	epsilon float64
}

// NewProgram wraps an existing bytecode program, such as one decoded by
// the codec package, in the default evaluation policy.
func NewProgram(code *bytecode.Program) *Program {
	return &Program{code: code, mode: Auto, epsilon: findiff.DefaultEpsilon}
}

// Code returns the underlying bytecode program.
func (p *Program) Code() *bytecode.Program {
	return p.code
}

// NumVariables returns the number of input variables the program
// declares. Every evaluation call must supply exactly this many inputs.
func (p *Program) NumVariables() int {
	return p.code.NumVariables()
}

// Mode returns the current derivative mode.
func (p *Program) Mode() Mode {
	return p.mode
}

// SetMode selects the derivative strategy used by Gradient and Hessian.
func (p *Program) SetMode(mode Mode) {
	p.mode = mode
}

// FDEpsilon returns the current finite-difference step size.
func (p *Program) FDEpsilon() float64 {
	return p.epsilon
}

// SetFDEpsilon sets the finite-difference step size. Non-positive values
// are rejected.
func (p *Program) SetFDEpsilon(epsilon float64) error {
	if epsilon <= 0 {
		return errz.Evalf("epsilon must be positive (got %g)", epsilon)
	}
	p.epsilon = epsilon
	return nil
}

// Eval executes the program at one input point.
func (p *Program) Eval(inputs []float64) (float64, error) {
	return vm.Run(p.code, inputs)
}

// EvalBatch executes the program over structure-of-arrays inputs, one
// slice per variable, all of equal length. The result is one output per
// point and matches N sequential Eval calls exactly.
func (p *Program) EvalBatch(inputs [][]float64) ([]float64, error) {
	return vm.RunBatch(p.code, inputs)
}

// Gradient computes the gradient at the given point using the
// program's derivative mode.
func (p *Program) Gradient(inputs []float64) ([]float64, error) {
	switch p.mode {
	case Forward:
		return autodiff.Gradient(p.code, inputs)
	case FiniteDiff:
		return findiff.Gradient(p.code, inputs, p.epsilon)
	default:
		gradient, err := autodiff.Gradient(p.code, inputs)
		if err == nil {
			return gradient, nil
		}
		return findiff.Gradient(p.code, inputs, p.epsilon)
	}
}

// Hessian computes the Hessian at the given point using the program's
// derivative mode. The result is row-major with side len(inputs).
func (p *Program) Hessian(inputs []float64) ([]float64, error) {
	switch p.mode {
	case Forward:
		return autodiff.Hessian(p.code, inputs)
	case FiniteDiff:
		return findiff.Hessian(p.code, inputs, p.epsilon)
	default:
		hessian, err := autodiff.Hessian(p.code, inputs)
		if err == nil {
			return hessian, nil
		}
		return findiff.Hessian(p.code, inputs, p.epsilon)
	}
}

// Disassemble returns a human-readable listing of the program's
// bytecode. Diagnostic only.
func (p *Program) Disassemble() string {
	return dis.Disassemble(p.code)
}
