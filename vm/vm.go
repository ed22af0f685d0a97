// Package vm executes compiled bytecode against concrete numeric inputs.
//
// The evaluation stack is a local allocated per call, sized from the
// program's compile-time max-stack figure, so Run and RunBatch are safe
// to call concurrently on a shared Program.
//
// Execution fails only on the explicit checks below (stack discipline,
// variable bounds, division by exact zero, log of a non-positive value,
// sqrt of a negative value). Numeric overflow and NaN propagate silently
// through results; callers interpret NaN/Inf themselves. In particular
// pow of a negative base with a fractional exponent yields NaN rather
// than an error.
package vm

import (
	"math"

	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/op"
)

// Run executes the program against one input point and returns the
// single result value.
func Run(program *bytecode.Program, inputs []float64) (float64, error) {
	if len(inputs) != program.NumVariables() {
		return 0, errz.Evalf("input count mismatch: program declares %d variables, got %d",
			program.NumVariables(), len(inputs))
	}

	stack := make([]float64, 0, program.MaxStack())
	count := program.InstructionCount()

	for ip := 0; ip < count; ip++ {
		instr := program.Instruction(ip)
		code := instr.Opcode()
		switch code {
		case op.PushConst:
			stack = append(stack, instr.Constant())

		case op.LoadVar:
			idx := instr.VarIndex()
			if idx < 0 || idx >= len(inputs) {
				return 0, errz.Evalf("variable index %d out of bounds", idx)
			}
			stack = append(stack, inputs[idx])

		case op.Add, op.Sub, op.Mul, op.Div, op.Pow:
			if len(stack) < 2 {
				return 0, errz.Evalf("stack underflow in %s", code)
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			var v float64
			switch code {
			case op.Add:
				v = a + b
			case op.Sub:
				v = a - b
			case op.Mul:
				v = a * b
			case op.Div:
				if b == 0.0 {
					return 0, errz.Evalf("division by zero")
				}
				v = a / b
			case op.Pow:
				v = math.Pow(a, b)
			}
			stack[len(stack)-1] = v

		case op.Neg:
			if len(stack) == 0 {
				return 0, errz.Evalf("stack underflow in %s", code)
			}
			stack[len(stack)-1] = -stack[len(stack)-1]

		case op.Sin, op.Cos, op.Tan, op.Exp, op.Log, op.Sqrt, op.Abs:
			if len(stack) == 0 {
				return 0, errz.Evalf("stack underflow in %s", code)
			}
			x := stack[len(stack)-1]
			var v float64
			switch code {
			case op.Sin:
				v = math.Sin(x)
			case op.Cos:
				v = math.Cos(x)
			case op.Tan:
				v = math.Tan(x)
			case op.Exp:
				v = math.Exp(x)
			case op.Log:
				if x <= 0.0 {
					return 0, errz.Evalf("logarithm of non-positive number")
				}
				v = math.Log(x)
			case op.Sqrt:
				if x < 0.0 {
					return 0, errz.Evalf("square root of negative number")
				}
				v = math.Sqrt(x)
			case op.Abs:
				v = math.Abs(x)
			}
			stack[len(stack)-1] = v

		case op.Return:
			if len(stack) != 1 {
				return 0, errz.Evalf("invalid stack size %d at return", len(stack))
			}
			return stack[0], nil

		default:
			return 0, errz.Evalf("invalid opcode %d", code)
		}
	}

	return 0, errz.Evalf("missing return instruction")
}

// RunBatch executes the program once per point over structure-of-arrays
// inputs: inputs holds one slice per declared variable and every slice
// must have equal length. The result holds one output per point, and is
// identical to running Run point by point. The first failing point
// aborts the batch.
func RunBatch(program *bytecode.Program, inputs [][]float64) ([]float64, error) {
	if len(inputs) != program.NumVariables() {
		return nil, errz.Evalf("input count mismatch: program declares %d variables, got %d",
			program.NumVariables(), len(inputs))
	}
	numPoints := 0
	if len(inputs) > 0 {
		numPoints = len(inputs[0])
		for v := 1; v < len(inputs); v++ {
			if len(inputs[v]) != numPoints {
				return nil, errz.Evalf("input array %d has length %d, expected %d",
					v, len(inputs[v]), numPoints)
			}
		}
	}

	outputs := make([]float64, numPoints)
	point := make([]float64, len(inputs))
	for i := 0; i < numPoints; i++ {
		for v := range inputs {
			point[v] = inputs[v][i]
		}
		result, err := Run(program, point)
		if err != nil {
			return nil, err
		}
		outputs[i] = result
	}
	return outputs, nil
}
