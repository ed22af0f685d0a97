// Package ast defines the abstract syntax tree produced by the parser.
//
// Each node exclusively owns its children: there is no sharing and there
// are no cycles. Trees live only between one parse call and the compile
// call that consumes them.
package ast

import (
	"bytes"
	"strings"

	"github.com/ndcalc-io/ndcalc/token"
)

// Node is the interface implemented by every AST node.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position

	// String returns a parenthesized human-readable form of the node.
	String() string
}

// Number is a numeric literal. The literal text is kept as written; the
// compiler converts it to a float.
type Number struct {
	ValuePos token.Position // position of the literal
	Literal  string         // literal text, e.g. "3.14" or "1e-5"
}

func (x *Number) Pos() token.Position { return x.ValuePos }

func (x *Number) String() string { return x.Literal }

// Variable is a reference to an input variable, resolved by the parser
// to an index into the caller-supplied variable list.
type Variable struct {
	NamePos token.Position // position of the identifier
	Name    string         // variable name as written
	Index   int            // resolved input index
}

func (x *Variable) Pos() token.Position { return x.NamePos }

func (x *Variable) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the
// operand, e.g. "-x". The parser folds unary plus away, so the only
// operator that reaches the compiler is "-".
type Prefix struct {
	OpPos token.Position // position of the operator
	Op    string         // operator: "-"
	X     Node           // operand
}

func (x *Prefix) Pos() token.Position { return x.OpPos }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression with the operator between two
// operands, e.g. "x + y". It always has exactly two children.
type Infix struct {
	X  Node   // left operand
	Op string // operator: "+", "-", "*", "/", "^"
	Y  Node   // right operand
}

func (x *Infix) Pos() token.Position { return x.X.Pos() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Call is a function call expression, e.g. "sin(x)". The parser captures
// the argument expressions without checking arity; arity is validated by
// the compiler.
type Call struct {
	NamePos token.Position // position of the function name
	Name    string         // function name: "sin", "pow", ...
	Args    []Node         // ordered arguments
}

func (x *Call) Pos() token.Position { return x.NamePos }

func (x *Call) String() string {
	args := make([]string, 0, len(x.Args))
	for _, arg := range x.Args {
		args = append(args, arg.String())
	}
	return x.Name + "(" + strings.Join(args, ", ") + ")"
}

// Walk traverses the tree rooted at node in depth-first pre-order,
// calling fn for each node. If fn returns false the children of that
// node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Prefix:
		Walk(n.X, fn)
	case *Infix:
		Walk(n.X, fn)
		Walk(n.Y, fn)
	case *Call:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	}
}
