// Package bytecode defines the instruction sequence produced by the
// compiler and executed by the vm, autodiff and findiff engines.
//
// A Program is immutable after construction. It is pure: executing it
// with the same inputs always yields the same output, which is what
// makes repeated derivative perturbation runs valid. A Program may be
// shared and read concurrently by any number of evaluations.
package bytecode

import (
	"github.com/ndcalc-io/ndcalc/op"
)

// Instruction is a single operation. The operand payload is keyed by the
// opcode class (see op.Info.Operand): PushConst carries a constant,
// LoadVar carries a variable index, and every other opcode carries
// nothing. The payload fields are unexported and reachable only through
// the accessor matching the opcode's operand kind, so a consumer cannot
// read the wrong member.
type Instruction struct {
	opcode   op.Code
	constant float64
	varIndex int
}

// Const returns an instruction pushing the given constant.
func Const(value float64) Instruction {
	return Instruction{opcode: op.PushConst, constant: value}
}

// Load returns an instruction loading the input variable at index.
func Load(index int) Instruction {
	return Instruction{opcode: op.LoadVar, varIndex: index}
}

// Op returns an instruction with no operand, such as Add or Return.
func Op(code op.Code) Instruction {
	return Instruction{opcode: code}
}

// Opcode returns the instruction's opcode.
func (i Instruction) Opcode() op.Code { return i.opcode }

// Constant returns the constant operand. Meaningful only when the opcode
// class is op.OperandConst.
func (i Instruction) Constant() float64 { return i.constant }

// VarIndex returns the variable index operand. Meaningful only when the
// opcode class is op.OperandVar.
func (i Instruction) VarIndex() int { return i.varIndex }

// Program is an ordered, immutable sequence of instructions plus the
// declared input variable count. A well-formed program terminates with
// exactly one Return and leaves exactly one value on the evaluation
// stack at that point; the engines verify both at run time.
type Program struct {
	instructions []Instruction
	numVariables int
	maxStack     int
}

// New constructs a Program. The instructions slice is copied; the
// Program does not alias the caller's storage. maxStack is the largest
// evaluation stack depth the instruction sequence can reach, as computed
// by the compiler.
func New(instructions []Instruction, numVariables, maxStack int) *Program {
	instrs := make([]Instruction, len(instructions))
	copy(instrs, instructions)
	return &Program{
		instructions: instrs,
		numVariables: numVariables,
		maxStack:     maxStack,
	}
}

// InstructionCount returns the number of instructions in the program.
func (p *Program) InstructionCount() int {
	return len(p.instructions)
}

// Instruction returns the instruction at the given index.
func (p *Program) Instruction(index int) Instruction {
	return p.instructions[index]
}

// NumVariables returns the declared input variable count.
func (p *Program) NumVariables() int {
	return p.numVariables
}

// MaxStack returns the evaluation stack capacity the program requires.
func (p *Program) MaxStack() int {
	return p.maxStack
}
