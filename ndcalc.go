// Package ndcalc compiles scalar mathematical expressions into bytecode
// and evaluates them, together with their first- and second-order
// derivatives, fast enough for interactive use.
//
// Compile turns expression text plus an ordered variable list into a
// Program. The Program is then evaluated repeatedly: Eval for one point,
// EvalBatch for many, Gradient and Hessian for derivatives. Derivatives
// are computed with forward-mode automatic differentiation by default,
// falling back to finite differences when AD fails; the policy is
// selectable per Program.
//
//	program, err := ndcalc.Compile("sin(x)*exp(y)", []string{"x", "y"})
//	if err != nil { ... }
//	value, err := program.Eval([]float64{1.0, 0.5})
//	grad, err := program.Gradient([]float64{1.0, 0.5})
package ndcalc

import (
	"fmt"

	"github.com/ndcalc-io/ndcalc/compiler"
	"github.com/ndcalc-io/ndcalc/findiff"
	"github.com/ndcalc-io/ndcalc/parser"
)

// Mode selects the derivative strategy for a Program.
type Mode int

const (
	// Auto attempts forward-mode AD and retries with finite
	// differences on any AD failure.
	Auto Mode = iota
	// Forward forces forward-mode AD with no fallback.
	Forward
	// FiniteDiff forces finite differences.
	FiniteDiff
)

// String returns the mode name: "auto", "forward" or "finite-diff".
func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Forward:
		return "forward"
	case FiniteDiff:
		return "finite-diff"
	default:
		return "invalid"
	}
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "auto":
		return Auto, nil
	case "forward":
		return Forward, nil
	case "finite-diff":
		return FiniteDiff, nil
	default:
		return Auto, fmt.Errorf("unknown mode %q", s)
	}
}

// Option configures a compilation.
type Option func(*options)

type options struct {
	maxDepth int
	mode     Mode
	epsilon  float64
}

// WithMaxDepth sets the maximum parser nesting depth. The default is
// parser.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithMode sets the initial derivative mode for the compiled program.
// The default is Auto.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithFDEpsilon sets the initial finite-difference step size for the
// compiled program. The default is findiff.DefaultEpsilon.
func WithFDEpsilon(epsilon float64) Option {
	return func(o *options) {
		o.epsilon = epsilon
	}
}

// Compile parses and compiles an expression over the given ordered
// variable names into an executable Program. Identifiers in the
// expression must name one of the variables or a built-in function.
func Compile(expression string, variables []string, opts ...Option) (*Program, error) {
	o := &options{
		maxDepth: parser.DefaultMaxDepth,
		mode:     Auto,
		epsilon:  findiff.DefaultEpsilon,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	node, err := parser.Parse(expression, variables, parser.WithMaxDepth(o.maxDepth))
	if err != nil {
		return nil, err
	}
	code, err := compiler.Compile(node, len(variables))
	if err != nil {
		return nil, err
	}
	return &Program{code: code, mode: o.mode, epsilon: o.epsilon}, nil
}

// Variables returns the conventional variable names x1..xN used by the
// visualization front end for an n-dimensional domain.
func Variables(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i+1)
	}
	return names
}
