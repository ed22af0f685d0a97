package dis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/compiler"
	"github.com/ndcalc-io/ndcalc/op"
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

func TestDisassemble(t *testing.T) {
	program := compile(t, "x^2 + 1", "x")
	expected := "Bytecode (variables: 1):\n" +
		"  0: LOAD_VAR 0\n" +
		"  1: PUSH_CONST 2\n" +
		"  2: POW\n" +
		"  3: PUSH_CONST 1\n" +
		"  4: ADD\n" +
		"  5: RETURN\n"
	require.Equal(t, expected, Disassemble(program))
}

func TestDisassembleFunctionCall(t *testing.T) {
	program := compile(t, "sin(x)", "x")
	expected := "Bytecode (variables: 1):\n" +
		"  0: LOAD_VAR 0\n" +
		"  1: SIN\n" +
		"  2: RETURN\n"
	require.Equal(t, expected, Disassemble(program))
}

func TestInstruction(t *testing.T) {
	require.Equal(t, "PUSH_CONST 2.5", Instruction(bytecode.Const(2.5)))
	require.Equal(t, "PUSH_CONST 1e-08", Instruction(bytecode.Const(1e-8)))
	require.Equal(t, "LOAD_VAR 3", Instruction(bytecode.Load(3)))
	require.Equal(t, "MUL", Instruction(bytecode.Op(op.Mul)))
	require.Equal(t, "RETURN", Instruction(bytecode.Op(op.Return)))
}
