// Package codec serializes compiled programs to a stable binary form so
// they can be cached on disk or shipped across a process boundary.
//
// The wire format is canonical CBOR. Decoding fully revalidates the
// instruction sequence before constructing a Program: unknown opcodes,
// out-of-range variable indices, and a missing or misplaced Return are
// all rejected, so a Program obtained from Unmarshal upholds the same
// invariants as one produced by the compiler.
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/op"
)

// formatVersion is bumped whenever the wire layout changes.
const formatVersion = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

type wireInstruction struct {
	Op    uint8   `cbor:"1,keyasint"`
	Const float64 `cbor:"2,keyasint,omitempty"`
	Var   int     `cbor:"3,keyasint,omitempty"`
}

type wireProgram struct {
	Version      int               `cbor:"1,keyasint"`
	NumVariables int               `cbor:"2,keyasint"`
	Instructions []wireInstruction `cbor:"3,keyasint"`
}

// Marshal serializes a program to CBOR bytes.
func Marshal(program *bytecode.Program) ([]byte, error) {
	count := program.InstructionCount()
	wire := wireProgram{
		Version:      formatVersion,
		NumVariables: program.NumVariables(),
		Instructions: make([]wireInstruction, count),
	}
	for i := 0; i < count; i++ {
		instr := program.Instruction(i)
		w := wireInstruction{Op: uint8(instr.Opcode())}
		switch op.GetInfo(instr.Opcode()).Operand {
		case op.OperandConst:
			w.Const = instr.Constant()
		case op.OperandVar:
			w.Var = instr.VarIndex()
		}
		wire.Instructions[i] = w
	}
	return cborEncMode.Marshal(wire)
}

// Unmarshal deserializes and validates a program from CBOR bytes.
func Unmarshal(data []byte) (*bytecode.Program, error) {
	var wire wireProgram
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("codec: unmarshal program: %w", err)
	}
	if wire.Version != formatVersion {
		return nil, fmt.Errorf("codec: unsupported format version %d", wire.Version)
	}
	if wire.NumVariables < 0 {
		return nil, fmt.Errorf("codec: negative variable count %d", wire.NumVariables)
	}
	if len(wire.Instructions) == 0 {
		return nil, fmt.Errorf("codec: empty instruction sequence")
	}

	instrs := make([]bytecode.Instruction, len(wire.Instructions))
	depth, maxDepth := 0, 0
	for i, w := range wire.Instructions {
		code := op.Code(w.Op)
		if !op.IsValid(code) {
			return nil, fmt.Errorf("codec: unknown opcode %d at instruction %d", w.Op, i)
		}
		info := op.GetInfo(code)
		switch info.Operand {
		case op.OperandConst:
			instrs[i] = bytecode.Const(w.Const)
		case op.OperandVar:
			if w.Var < 0 || w.Var >= wire.NumVariables {
				return nil, fmt.Errorf("codec: variable index %d out of range at instruction %d", w.Var, i)
			}
			instrs[i] = bytecode.Load(w.Var)
		default:
			instrs[i] = bytecode.Op(code)
		}
		if code == op.Return {
			if i != len(wire.Instructions)-1 {
				return nil, fmt.Errorf("codec: RETURN at instruction %d is not last", i)
			}
			if depth != 1 {
				return nil, fmt.Errorf("codec: stack depth %d at RETURN, expected 1", depth)
			}
			continue
		}
		depth += info.StackPush - info.StackPop
		if depth < 1 {
			return nil, fmt.Errorf("codec: stack underflow at instruction %d", i)
		}
		if depth > maxDepth {
			maxDepth = depth
		}
	}
	if op.Code(wire.Instructions[len(wire.Instructions)-1].Op) != op.Return {
		return nil, fmt.Errorf("codec: missing trailing RETURN")
	}
	return bytecode.New(instrs, wire.NumVariables, maxDepth), nil
}
