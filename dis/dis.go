// Package dis supports disassembling compiled programs into a
// human-readable listing. It is a diagnostic aid only and not part of
// the evaluation contract.
package dis

import (
	"fmt"
	"strings"

	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/op"
)

// Disassemble returns a listing of the program, one instruction per
// line, preceded by a header naming the declared variable count.
func Disassemble(program *bytecode.Program) string {
	var out strings.Builder
	fmt.Fprintf(&out, "Bytecode (variables: %d):\n", program.NumVariables())
	count := program.InstructionCount()
	for i := 0; i < count; i++ {
		fmt.Fprintf(&out, "  %d: %s\n", i, Instruction(program.Instruction(i)))
	}
	return out.String()
}

// Instruction renders one instruction as its mnemonic plus operand, if
// the opcode class carries one.
func Instruction(instr bytecode.Instruction) string {
	info := op.GetInfo(instr.Opcode())
	switch info.Operand {
	case op.OperandConst:
		return fmt.Sprintf("%s %g", info.Name, instr.Constant())
	case op.OperandVar:
		return fmt.Sprintf("%s %d", info.Name, instr.VarIndex())
	default:
		return instr.Opcode().String()
	}
}
