// Command ndcalc compiles and evaluates scalar math expressions from the
// command line.
//
// Usage:
//
//	ndcalc eval  --vars x,y --at 1,2 "x^2 + y^2"
//	ndcalc grad  --vars x,y --at 3,4 "x^2 + y^2"
//	ndcalc hess  --vars x,y --at 3,4 "x^2 + y^2"
//	ndcalc dis   --vars x,y "sin(x)*exp(y)"
//	ndcalc ast   --vars x,y "sin(x)*exp(y)"
//	ndcalc check --vars x,y expressions.txt
//
// Defaults for the derivative mode, epsilon and parser depth may be set
// in an ndcalc.toml file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func main() {
	verbose := false
	args := make([]string, 0, len(os.Args)-1)
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			continue
		}
		args = append(args, arg)
	}

	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("invalid config file")
		os.Exit(1)
	}

	var cmdErr error
	switch args[0] {
	case "eval":
		cmdErr = evalCommand(args[1:], cfg)
	case "grad":
		cmdErr = gradCommand(args[1:], cfg)
	case "hess":
		cmdErr = hessCommand(args[1:], cfg)
	case "dis":
		cmdErr = disCommand(args[1:], cfg)
	case "ast":
		cmdErr = astCommand(args[1:], cfg)
	case "check":
		cmdErr = checkCommand(args[1:], cfg)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		usage()
		os.Exit(1)
	}
	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `ndcalc - expression compiler and derivative engine

Commands:
  eval   --vars NAMES --at POINT EXPR   evaluate EXPR at POINT
  grad   --vars NAMES --at POINT EXPR   gradient of EXPR at POINT
  hess   --vars NAMES --at POINT EXPR   Hessian of EXPR at POINT
  dis    --vars NAMES EXPR              disassemble compiled bytecode
  ast    --vars NAMES EXPR              print the parsed syntax tree
  check  --vars NAMES FILE              compile every line of FILE

Flags:
  --vars NAMES   comma-separated variable names (e.g. x,y,z)
  --at POINT     comma-separated input values, one per variable
  --mode MODE    derivative mode: auto, forward, finite-diff
  --eps EPS      finite-difference step size
  -v             verbose logging
`)
}
