// Package lexer splits expression source text into tokens.
package lexer

import (
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/token"
)

// Lexer turns an input string into a stream of tokens. Create one with
// New and then call Next repeatedly until it returns a token.EOF.
type Lexer struct {
	input string
	pos   int
}

// New returns a Lexer for the given input string.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token from the input. Once the input is
// exhausted it returns a token of type token.EOF on every call. An
// unrecognized character results in an error naming its position.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		pos := token.Position{Offset: len(l.input)}
		return token.Token{Type: token.EOF, StartPosition: pos, EndPosition: pos}, nil
	}

	ch := l.input[l.pos]
	switch {
	case isDigit(ch) || ch == '.':
		return l.readNumber(), nil
	case isLetter(ch):
		return l.readIdentifier(), nil
	}

	start := token.Position{Offset: l.pos}
	var typ token.Type
	switch ch {
	case '+':
		typ = token.PLUS
	case '-':
		typ = token.MINUS
	case '*':
		typ = token.ASTERISK
	case '/':
		typ = token.SLASH
	case '^':
		typ = token.CARET
	case '(':
		typ = token.LPAREN
	case ')':
		typ = token.RPAREN
	case ',':
		typ = token.COMMA
	default:
		return token.Token{}, errz.Parsef(start, "unexpected character %q", ch)
	}
	l.pos++
	return token.Token{
		Type:          typ,
		Literal:       string(ch),
		StartPosition: start,
		EndPosition:   start.Advance(1),
	}, nil
}

// Tokenize consumes the entire input and returns the token sequence,
// terminated by a token.EOF entry.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

// readNumber scans a numeric literal. A '+' or '-' is absorbed into the
// literal only when it is not the literal's first character and
// immediately follows an exponent marker: "1e-5" is one token while the
// '-' in "x-5" and "2-3" is left for the caller. The scan is otherwise
// permissive; the compiler rejects literals that do not parse as a float.
func (l *Lexer) readNumber() token.Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if isDigit(ch) || ch == '.' || ch == 'e' || ch == 'E' {
			l.pos++
			continue
		}
		if (ch == '+' || ch == '-') && l.pos > start &&
			(l.input[l.pos-1] == 'e' || l.input[l.pos-1] == 'E') {
			l.pos++
			continue
		}
		break
	}
	return token.Token{
		Type:          token.NUMBER,
		Literal:       l.input[start:l.pos],
		StartPosition: token.Position{Offset: start},
		EndPosition:   token.Position{Offset: l.pos},
	}
}

// readIdentifier scans a run of letters, digits and underscores starting
// with a letter or underscore, classifying it as a function name or a
// variable reference.
func (l *Lexer) readIdentifier() token.Token {
	start := l.pos
	for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
		l.pos++
	}
	literal := l.input[start:l.pos]
	return token.Token{
		Type:          token.LookupIdentifier(literal),
		Literal:       literal,
		StartPosition: token.Position{Offset: start},
		EndPosition:   token.Position{Offset: l.pos},
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
