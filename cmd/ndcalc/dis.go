package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ndcalc-io/ndcalc/dis"
	"github.com/ndcalc-io/ndcalc/op"
	"github.com/ndcalc-io/ndcalc/parser"
)

var (
	mnemonicColor = color.New(color.FgCyan)
	operandColor  = color.New(color.FgYellow)
	headerColor   = color.New(color.FgHiWhite, color.Bold)
)

func disCommand(args []string, cfg config) error {
	a, err := parseExprArgs(args, cfg)
	if err != nil {
		return err
	}
	program, err := a.compile()
	if err != nil {
		return err
	}
	code := program.Code()
	if color.NoColor {
		fmt.Print(dis.Disassemble(code))
		return nil
	}
	headerColor.Printf("Bytecode (variables: %d):\n", code.NumVariables())
	for i := 0; i < code.InstructionCount(); i++ {
		instr := code.Instruction(i)
		info := op.GetInfo(instr.Opcode())
		fmt.Printf("  %d: ", i)
		mnemonicColor.Printf("%s", info.Name)
		switch info.Operand {
		case op.OperandConst:
			operandColor.Printf(" %g", instr.Constant())
		case op.OperandVar:
			operandColor.Printf(" %d", instr.VarIndex())
		}
		fmt.Println()
	}
	return nil
}

func astCommand(args []string, cfg config) error {
	a, err := parseExprArgs(args, cfg)
	if err != nil {
		return err
	}
	node, err := parser.Parse(a.expression, a.variables, parser.WithMaxDepth(a.maxDepth))
	if err != nil {
		return err
	}
	fmt.Println(node.String())
	return nil
}
