// Package compiler lowers an expression AST into bytecode.
//
// Lowering is a post-order (operand-first) tree walk: operands are
// emitted before the opcode that consumes them, so the resulting
// instruction sequence is the postfix form of the expression. The
// compiler is the single point of arity validation for function calls;
// the parser captures argument lists without checking them.
package compiler

import (
	"strconv"

	"github.com/ndcalc-io/ndcalc/ast"
	"github.com/ndcalc-io/ndcalc/bytecode"
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/op"
)

// functionOps maps function names to their opcode and required arity.
var functionOps = map[string]struct {
	code  op.Code
	arity int
}{
	"sin":  {op.Sin, 1},
	"cos":  {op.Cos, 1},
	"tan":  {op.Tan, 1},
	"exp":  {op.Exp, 1},
	"log":  {op.Log, 1},
	"sqrt": {op.Sqrt, 1},
	"abs":  {op.Abs, 1},
	"pow":  {op.Pow, 2},
}

var binaryOps = map[string]op.Code{
	"+": op.Add,
	"-": op.Sub,
	"*": op.Mul,
	"/": op.Div,
	"^": op.Pow,
}

// Compiler lowers one AST into one bytecode program. A Compiler is
// single-use; create one per Compile call via the package-level
// Compile function.
type Compiler struct {
	instructions []bytecode.Instruction
	numVariables int

	// stack depth tracking across the emitted sequence
	depth    int
	maxDepth int
}

// Compile lowers the AST into a bytecode program declaring numVariables
// inputs. A trailing Return instruction is always appended. Failures are
// reported as *errz.CompileError values; no partially constructed
// program is returned.
func Compile(node ast.Node, numVariables int) (*bytecode.Program, error) {
	c := &Compiler{numVariables: numVariables}
	if err := c.compile(node); err != nil {
		return nil, err
	}
	c.emit(bytecode.Op(op.Return), -1)
	return bytecode.New(c.instructions, numVariables, c.maxDepth), nil
}

// emit appends an instruction and tracks the net stack effect so the
// program records the evaluation stack capacity it needs.
func (c *Compiler) emit(instr bytecode.Instruction, stackEffect int) {
	c.instructions = append(c.instructions, instr)
	c.depth += stackEffect
	if c.depth > c.maxDepth {
		c.maxDepth = c.depth
	}
}

func (c *Compiler) compile(node ast.Node) error {
	switch n := node.(type) {
	case *ast.Number:
		value, err := strconv.ParseFloat(n.Literal, 64)
		if err != nil {
			return errz.Compilef("invalid number literal %q", n.Literal)
		}
		c.emit(bytecode.Const(value), 1)
		return nil

	case *ast.Variable:
		if n.Index < 0 || n.Index >= c.numVariables {
			return errz.Compilef("variable %q index %d out of range", n.Name, n.Index)
		}
		c.emit(bytecode.Load(n.Index), 1)
		return nil

	case *ast.Prefix:
		if n.Op != "-" {
			return errz.Compilef("unknown unary operator %q", n.Op)
		}
		if err := c.compile(n.X); err != nil {
			return err
		}
		c.emit(bytecode.Op(op.Neg), 0)
		return nil

	case *ast.Infix:
		code, ok := binaryOps[n.Op]
		if !ok {
			return errz.Compilef("unknown binary operator %q", n.Op)
		}
		if err := c.compile(n.X); err != nil {
			return err
		}
		if err := c.compile(n.Y); err != nil {
			return err
		}
		c.emit(bytecode.Op(code), -1)
		return nil

	case *ast.Call:
		fn, ok := functionOps[n.Name]
		if !ok {
			return errz.Compilef("unknown function %q", n.Name)
		}
		if len(n.Args) != fn.arity {
			plural := "s"
			if fn.arity == 1 {
				plural = ""
			}
			return errz.Compilef("%s() requires exactly %d argument%s (got %d)",
				n.Name, fn.arity, plural, len(n.Args))
		}
		for _, arg := range n.Args {
			if err := c.compile(arg); err != nil {
				return err
			}
		}
		c.emit(bytecode.Op(fn.code), 1-fn.arity)
		return nil

	default:
		return errz.Compilef("unsupported AST node %T", node)
	}
}
