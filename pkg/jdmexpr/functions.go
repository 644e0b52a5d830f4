package jdmexpr

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
)

// stringFunctions backs the two method-style string predicates the
// condition compiler (pkg/jdmcondition) emits for `endsWith($, X)` /
// `startsWith($, X)` cells. expr-lang's environment is a plain
// map[string]any, so Go strings carried as `any` have no
// .endswith/.startswith methods reachable via expr-lang's member-access
// operator; these are registered as ordinary expr.Function calls instead.
var stringFunctions = []expr.Option{
	expr.Function("startsWith", func(args ...any) (any, error) {
		s, suffix, err := twoStrings(args)
		if err != nil {
			return false, err
		}
		return strings.HasPrefix(s, suffix), nil
	}),
	expr.Function("endsWith", func(args ...any) (any, error) {
		s, suffix, err := twoStrings(args)
		if err != nil {
			return false, err
		}
		return strings.HasSuffix(s, suffix), nil
	}),
}

func twoStrings(args []any) (string, string, error) {
	if len(args) != 2 {
		return "", "", fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	s, ok := args[0].(string)
	if !ok {
		return "", "", fmt.Errorf("argument 1 must be a string, got %T", args[0])
	}
	t, ok := args[1].(string)
	if !ok {
		return "", "", fmt.Errorf("argument 2 must be a string, got %T", args[1])
	}
	return s, t, nil
}
