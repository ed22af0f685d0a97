package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ndcalc-io/ndcalc"
)

// checkCommand compiles every non-empty, non-comment line of a file and
// reports all failures at once instead of stopping at the first.
func checkCommand(args []string, cfg config) error {
	a, err := parseExprArgs(args, cfg)
	if err != nil {
		return err
	}
	file, err := os.Open(a.expression)
	if err != nil {
		return err
	}
	defer file.Close()

	var result *multierror.Error
	checked := 0
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		checked++
		if _, err := ndcalc.Compile(line, a.variables,
			ndcalc.WithMaxDepth(a.maxDepth)); err != nil {
			result = multierror.Append(result,
				fmt.Errorf("line %d (%q): %w", lineNo, line, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	log.Info().Int("expressions", checked).Msg("all expressions compiled")
	fmt.Printf("ok: %d expressions compiled\n", checked)
	return nil
}
