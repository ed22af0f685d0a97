// Package errz defines the error types shared across the ndcalc packages.
//
// All failures are reported as error values drawn from a closed set of
// kinds: parse errors (with a source position), compile errors, and
// evaluation errors. Nothing in this module panics across a package
// boundary.
package errz

import (
	"fmt"

	"github.com/ndcalc-io/ndcalc/token"
)

// Kind represents the category of an error.
type Kind int

const (
	// KindParse indicates a tokenizing or parsing error.
	KindParse Kind = iota
	// KindCompile indicates an error lowering an AST to bytecode.
	KindCompile
	// KindEval indicates a runtime error while executing a program.
	KindEval
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindCompile:
		return "compile error"
	case KindEval:
		return "eval error"
	default:
		return "error"
	}
}

// ParseError is an error produced while tokenizing or parsing an
// expression. It carries the source position of the offending text.
type ParseError struct {
	Message  string
	Position token.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (%s)", e.Message, e.Position)
}

// Kind returns KindParse.
func (e *ParseError) Kind() Kind { return KindParse }

// Parsef creates a ParseError with a formatted message.
func Parsef(pos token.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Position: pos}
}

// CompileError is an error produced while lowering an AST to bytecode,
// such as an unknown function or a function call with the wrong arity.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s", e.Message)
}

// Kind returns KindCompile.
func (e *CompileError) Kind() Kind { return KindCompile }

// Compilef creates a CompileError with a formatted message.
func Compilef(format string, args ...interface{}) *CompileError {
	return &CompileError{Message: fmt.Sprintf(format, args...)}
}

// EvalError is an error produced while executing a compiled program:
// domain violations, dimension mismatches, or malformed bytecode.
type EvalError struct {
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval error: %s", e.Message)
}

// Kind returns KindEval.
func (e *EvalError) Kind() Kind { return KindEval }

// Evalf creates an EvalError with a formatted message.
func Evalf(format string, args ...interface{}) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}
