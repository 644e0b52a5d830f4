// Package jdmexpr implements the JDM expression evaluator: a thin,
// restricted layer over github.com/expr-lang/expr that binds every context
// key as a local identifier, exposes exactly the built-ins sum/filter_/
// map_/reduce_ (plus startsWith/endsWith), and refuses any call that is not
// one of those names.
package jdmexpr

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator compiles and runs expressions against a context mapping. It is
// safe for concurrent use; compiled programs are cached and immutable.
type Evaluator struct {
	cache *programCache
}

// New creates an Evaluator with a default-sized compile cache.
func New() *Evaluator {
	return &Evaluator{cache: newProgramCache(256)}
}

// Compile compiles expr into a reusable program. A JDM context is an
// arbitrary JSON object, so bare identifiers are never restricted by name —
// they are opaque data reads with no behavior of their own. The actual
// boundary enforced here is on calls: any call whose target is not sum,
// filter/map/reduce (expr-lang's native closure builtins), filter_/map_/
// reduce_ (aliased onto the same builtins), or startsWith/endsWith fails
// compilation.
func (e *Evaluator) Compile(exprStr string) (*vm.Program, error) {
	if program, ok := e.cache.get(exprStr); ok {
		return program, nil
	}

	visitor := newRestrictionVisitor()
	opts := append([]expr.Option{expr.Patch(visitor)}, stringFunctions...)
	program, err := expr.Compile(exprStr, opts...)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", exprStr, err)
	}
	if visitor.err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", exprStr, visitor.err)
	}

	e.cache.put(exprStr, program)
	return program, nil
}

// Run evaluates a compiled program against ctx. The identifier "input"
// binds to the whole context; every other top-level key of ctx is also
// bound directly.
func (e *Evaluator) Run(program *vm.Program, ctx map[string]any) (any, error) {
	env := make(map[string]any, len(ctx)+1)
	for k, v := range ctx {
		env[k] = v
	}
	env["input"] = ctx

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression: %w", err)
	}
	return result, nil
}

// Eval is a convenience wrapper combining Compile and Run without a
// caller-held program reference; prefer Compile+Run when the same
// expression runs repeatedly (e.g. node compilers at plan-build time).
func (e *Evaluator) Eval(exprStr string, ctx map[string]any) (any, error) {
	program, err := e.Compile(exprStr)
	if err != nil {
		return nil, err
	}
	return e.Run(program, ctx)
}
