package jdmexpr

import (
	"fmt"

	"github.com/expr-lang/expr/ast"
)

// errUnknownIdentifier is wrapped into a CompileError by callers when
// restrictionVisitor rejects a call.
var errUnknownIdentifier = fmt.Errorf("call target not permitted")

// combinatorAliases maps JDM's underscore-suffixed combinator names onto
// expr-lang's native closure builtins. expr-lang already implements
// filter/map/reduce using the identical "#" (current element) and "#acc"
// (reduce accumulator) placeholder conventions the combinator sugar
// describes, so aliasing is a straight AST node swap rather than a
// hand-written implementation. Bare filter/map/reduce/sum are already
// expr-lang builtin keywords parsed directly as ast.BuiltinNode, so they
// never reach this visitor as calls at all.
var combinatorAliases = map[string]string{
	"filter_": "filter",
	"map_":    "map",
	"reduce_": "reduce",
}

// allowedCalls are the only identifiers the restriction visitor permits as
// a CallNode callee once combinator aliasing has run. A JDM context is an
// arbitrary JSON mapping, so bare identifiers (ctx field reads) can never
// be restricted by name — they carry no behavior of their own. The actual
// "no access to host runtime APIs" boundary is a call boundary: nothing
// callable reaches the environment except these names.
var allowedCalls = map[string]bool{
	"filter_":    true,
	"map_":       true,
	"reduce_":    true,
	"startsWith": true,
	"endsWith":   true,
}

// restrictionVisitor rewrites filter_/map_/reduce_ calls into expr-lang's
// native builtin nodes and rejects any call whose target is not in
// allowedCalls. It implements ast.Visitor and is driven by expr.Patch
// during Compile.
type restrictionVisitor struct {
	err error
}

func newRestrictionVisitor() *restrictionVisitor {
	return &restrictionVisitor{}
}

// Visit implements ast.Visitor.
func (v *restrictionVisitor) Visit(node *ast.Node) {
	if v.err != nil {
		return
	}

	call, ok := (*node).(*ast.CallNode)
	if !ok {
		return
	}

	id, ok := call.Callee.(*ast.IdentifierNode)
	if !ok {
		v.err = fmt.Errorf("%w: non-identifier call target", errUnknownIdentifier)
		return
	}

	if native, isCombinator := combinatorAliases[id.Value]; isCombinator {
		ast.Patch(node, &ast.BuiltinNode{Name: native, Arguments: call.Arguments})
		return
	}

	if !allowedCalls[id.Value] {
		v.err = fmt.Errorf("%w: %q", errUnknownIdentifier, id.Value)
	}
}
