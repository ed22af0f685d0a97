// Package token defines the tokens produced when lexing expression source text.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Offset int // byte offset within the input, starting at 0
}

// Advance returns a Position offset by n bytes.
func (p Position) Advance(n int) Position {
	return Position{Offset: p.Offset + n}
}

func (p Position) String() string {
	return fmt.Sprintf("position %d", p.Offset)
}

// Token represents one token lexed from the input source text.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	NUMBER   = "NUMBER"
	VARIABLE = "VARIABLE"
	FUNCTION = "FUNCTION"
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	CARET    = "^"
	LPAREN   = "("
	RPAREN   = ")"
	COMMA    = ","
	EOF      = "EOF"
)

// Reserved function names. Any other identifier is a variable reference.
var functions = map[string]bool{
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"exp":  true,
	"log":  true,
	"sqrt": true,
	"abs":  true,
	"pow":  true,
}

// LookupIdentifier determines whether an identifier names a reserved
// function or refers to a variable.
func LookupIdentifier(identifier string) Type {
	if functions[identifier] {
		return FUNCTION
	}
	return VARIABLE
}
