package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndcalc-io/ndcalc"
)

// exprArgs holds the parsed common flags for expression commands.
type exprArgs struct {
	expression string
	variables  []string
	point      []float64
	mode       ndcalc.Mode
	epsilon    float64
	maxDepth   int
	hasPoint   bool
}

// parseExprArgs handles the flags shared by the eval, grad, hess, dis
// and ast commands. The final positional argument is the expression (or
// file, for check).
func parseExprArgs(args []string, cfg config) (*exprArgs, error) {
	mode, err := ndcalc.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	out := &exprArgs{mode: mode, epsilon: cfg.Epsilon, maxDepth: cfg.MaxDepth}

	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--vars":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--vars requires a value")
			}
			i++
			if args[i] != "" {
				out.variables = strings.Split(args[i], ",")
			}
		case "--at":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--at requires a value")
			}
			i++
			out.hasPoint = true
			for _, field := range strings.Split(args[i], ",") {
				v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
				if err != nil {
					return nil, fmt.Errorf("invalid input value %q", field)
				}
				out.point = append(out.point, v)
			}
		case "--mode":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--mode requires a value")
			}
			i++
			out.mode, err = ndcalc.ParseMode(args[i])
			if err != nil {
				return nil, err
			}
		case "--eps":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--eps requires a value")
			}
			i++
			out.epsilon, err = strconv.ParseFloat(args[i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid epsilon %q", args[i])
			}
		default:
			positional = append(positional, args[i])
		}
	}
	if len(positional) != 1 {
		return nil, fmt.Errorf("expected exactly one expression argument")
	}
	out.expression = positional[0]
	return out, nil
}

func (a *exprArgs) compile() (*ndcalc.Program, error) {
	program, err := ndcalc.Compile(a.expression, a.variables,
		ndcalc.WithMaxDepth(a.maxDepth),
		ndcalc.WithMode(a.mode),
		ndcalc.WithFDEpsilon(a.epsilon))
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("expression", a.expression).
		Int("variables", program.NumVariables()).
		Msg("compiled")
	return program, nil
}

func (a *exprArgs) requirePoint() error {
	if !a.hasPoint {
		return fmt.Errorf("--at is required")
	}
	return nil
}

func evalCommand(args []string, cfg config) error {
	a, err := parseExprArgs(args, cfg)
	if err != nil {
		return err
	}
	if err := a.requirePoint(); err != nil {
		return err
	}
	program, err := a.compile()
	if err != nil {
		return err
	}
	value, err := program.Eval(a.point)
	if err != nil {
		return err
	}
	fmt.Printf("%g\n", value)
	return nil
}

func gradCommand(args []string, cfg config) error {
	a, err := parseExprArgs(args, cfg)
	if err != nil {
		return err
	}
	if err := a.requirePoint(); err != nil {
		return err
	}
	program, err := a.compile()
	if err != nil {
		return err
	}
	gradient, err := program.Gradient(a.point)
	if err != nil {
		return err
	}
	for i, g := range gradient {
		fmt.Printf("d/d%s = %g\n", a.variables[i], g)
	}
	return nil
}

func hessCommand(args []string, cfg config) error {
	a, err := parseExprArgs(args, cfg)
	if err != nil {
		return err
	}
	if err := a.requirePoint(); err != nil {
		return err
	}
	program, err := a.compile()
	if err != nil {
		return err
	}
	hessian, err := program.Hessian(a.point)
	if err != nil {
		return err
	}
	n := len(a.point)
	for i := 0; i < n; i++ {
		row := make([]string, n)
		for j := 0; j < n; j++ {
			row[j] = fmt.Sprintf("%g", hessian[i*n+j])
		}
		fmt.Println(strings.Join(row, "  "))
	}
	return nil
}
