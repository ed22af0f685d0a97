// Package parser is used to generate the abstract syntax tree (AST) for
// an expression.
//
// A parser is created by calling New() with a lexer as input. The parser
// should then be used only once, by calling parser.Parse() to produce
// the AST.
//
// The grammar, precedence low to high:
//
//	expression := term (('+' | '-') term)*          left-associative
//	term       := factor (('*' | '/') factor)*      left-associative
//	factor     := primary ('^' factor)?             right-associative
//	primary    := '-' primary | '+' primary | number | variable
//	            | function '(' args ')' | '(' expression ')'
//
// Unary minus binds at the primary level, tighter than '^', so "-2^2"
// parses as "(-2)^2".
package parser

import (
	"github.com/ndcalc-io/ndcalc/ast"
	"github.com/ndcalc-io/ndcalc/errz"
	"github.com/ndcalc-io/ndcalc/lexer"
	"github.com/ndcalc-io/ndcalc/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 100

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth for the parser. This
// prevents stack overflow on deeply nested input. The default is 100.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parse the provided input as an expression and return the AST. The
// variables slice supplies the ordered variable names that identifiers
// may resolve to; any other identifier is an error. This is a shorthand
// way to create a Lexer and Parser and then call Parse on that.
func Parse(input string, variables []string, options ...Option) (ast.Node, error) {
	p, err := New(lexer.New(input), variables, options...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parser object
type Parser struct {
	// l is our lexer
	l *lexer.Lexer

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// variableIndices maps caller-supplied variable names to their
	// position in the input vector.
	variableIndices map[string]int

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the expression provided by the given Lexer.
func New(l *lexer.Lexer, variables []string, options ...Option) (*Parser, error) {
	p := &Parser{
		l:               l,
		variableIndices: make(map[string]int, len(variables)),
		maxDepth:        DefaultMaxDepth,
	}
	for i, name := range variables {
		p.variableIndices[name] = i
	}
	for _, opt := range options {
		opt(p)
	}
	// Prime the token pump
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse the expression that is provided via the lexer. A successful
// parse consumes every token: trailing tokens after a complete
// expression are an error.
func (p *Parser) Parse() (ast.Node, error) {
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != token.EOF {
		return nil, errz.Parsef(p.curToken.StartPosition,
			"unexpected token %q after expression", p.curToken.Literal)
	}
	return node, nil
}

// nextToken advances curToken and peekToken by one token.
func (p *Parser) nextToken() error {
	var err error
	p.curToken = p.peekToken
	p.peekToken, err = p.l.Next()
	return err
}

// enter is called on every grammar rule invocation to track recursion
// depth. Each successful enter must be paired with a leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return errz.Parsef(p.curToken.StartPosition,
			"expression too deeply nested (max depth: %d)", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseExpression := term (('+' | '-') term)*
func (p *Parser) parseExpression() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curToken.Type == token.PLUS || p.curToken.Type == token.MINUS {
		op := p.curToken.Literal
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Infix{X: left, Op: op, Y: right}
	}
	return left, nil
}

// parseTerm := factor (('*' | '/') factor)*
func (p *Parser) parseTerm() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curToken.Type == token.ASTERISK || p.curToken.Type == token.SLASH {
		op := p.curToken.Literal
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Infix{X: left, Op: op, Y: right}
	}
	return left, nil
}

// parseFactor := primary ('^' factor)?
//
// The exponent recurses into parseFactor again, making '^'
// right-associative: 2^3^2 parses as 2^(3^2).
func (p *Parser) parseFactor() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type == token.CARET {
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Infix{X: left, Op: "^", Y: right}, nil
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.curToken
	switch tok.Type {
	case token.MINUS:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.Prefix{OpPos: tok.StartPosition, Op: "-", X: operand}, nil

	case token.PLUS:
		// Unary plus is a no-op
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return p.parsePrimary()

	case token.NUMBER:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.Number{ValuePos: tok.StartPosition, Literal: tok.Literal}, nil

	case token.VARIABLE:
		index, ok := p.variableIndices[tok.Literal]
		if !ok {
			return nil, errz.Parsef(tok.StartPosition, "unknown variable %q", tok.Literal)
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return &ast.Variable{NamePos: tok.StartPosition, Name: tok.Literal, Index: index}, nil

	case token.FUNCTION:
		return p.parseCall()

	case token.LPAREN:
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curToken.Type != token.RPAREN {
			return nil, errz.Parsef(p.curToken.StartPosition, "expected closing parenthesis")
		}
		if err := p.nextToken(); err != nil {
			return nil, err
		}
		return node, nil

	case token.EOF:
		return nil, errz.Parsef(tok.StartPosition, "unexpected end of expression")

	default:
		return nil, errz.Parsef(tok.StartPosition, "unexpected token %q", tok.Literal)
	}
}

// parseCall parses "name '(' expression (',' expression)* ')'". The
// number of arguments is captured but not validated here; arity checks
// belong to the compiler.
func (p *Parser) parseCall() (ast.Node, error) {
	tok := p.curToken
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	if p.curToken.Type != token.LPAREN {
		return nil, errz.Parsef(p.curToken.StartPosition,
			"expected '(' after function name %q", tok.Literal)
	}
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	call := &ast.Call{NamePos: tok.StartPosition, Name: tok.Literal}
	if p.curToken.Type != token.RPAREN {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.curToken.Type == token.RPAREN {
				break
			}
			if p.curToken.Type != token.COMMA {
				return nil, errz.Parsef(p.curToken.StartPosition,
					"expected ',' or ')' in call to %q", tok.Literal)
			}
			if err := p.nextToken(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.nextToken(); err != nil { // consume ')'
		return nil, err
	}
	return call, nil
}
