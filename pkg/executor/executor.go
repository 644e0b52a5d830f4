// Package executor implements the node compilers: one per JDM node kind,
// each turning a node's declared content into a pure ctx -> partial
// result evaluator. A thread-safe registry resolves a compiler by node
// type at plan-compile time; the plan then holds the resolved NodeFunc
// values directly, so evaluation never touches the registry again.
package executor

import (
	"fmt"
	"sync"

	"github.com/smilemakc/mbflow/internal/telemetry"
	"github.com/smilemakc/mbflow/pkg/jdmexpr"
	"github.com/smilemakc/mbflow/pkg/models"
)

// NodeFunc is a compiled node: a pure function from the current evaluation
// context to a partial result mapping, merged into ctx (and, if the node is
// an output source, into the final output) by the runner.
type NodeFunc func(ctx map[string]any) map[string]any

// CompileInput carries the shared services a node compiler needs beyond
// the node itself.
type CompileInput struct {
	// Evaluator compiles and runs expr-lang expressions.
	Evaluator *jdmexpr.Evaluator

	// SwitchOutputHandles names which of a switch node's statement ids feed
	// the output sink directly. Only populated for switchNode compiles; nil
	// otherwise.
	SwitchOutputHandles map[string]bool

	// Logger receives Debug-level evaluation-failure diagnostics.
	Logger *telemetry.Logger
}

// Compiler turns a node's declared content into a NodeFunc, or reports why
// it cannot (models.CompileError).
type Compiler interface {
	Compile(node *models.Node, in *CompileInput) (NodeFunc, error)
}

// CompilerFunc adapts an ordinary function to the Compiler interface.
type CompilerFunc func(node *models.Node, in *CompileInput) (NodeFunc, error)

// Compile calls f.
func (f CompilerFunc) Compile(node *models.Node, in *CompileInput) (NodeFunc, error) {
	return f(node, in)
}

// Registry resolves a Compiler by node type string.
type Registry struct {
	mu        sync.RWMutex
	compilers map[string]Compiler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{compilers: make(map[string]Compiler)}
}

// NewDefaultRegistry creates a registry with the four built-in node
// compilers (expression, decision table, switch, function) registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(models.NodeKindExpression, CompilerFunc(compileExpressionNode))
	r.Register(models.NodeKindDecisionTable, CompilerFunc(compileDecisionTableNode))
	r.Register(models.NodeKindSwitch, CompilerFunc(compileSwitchNode))
	r.Register(models.NodeKindFunction, CompilerFunc(compileFunctionNode))
	return r
}

// Register registers compiler for nodeType, replacing any prior entry.
func (r *Registry) Register(nodeType string, compiler Compiler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if nodeType == "" {
		return fmt.Errorf("node type cannot be empty")
	}
	if compiler == nil {
		return fmt.Errorf("compiler cannot be nil")
	}
	r.compilers[nodeType] = compiler
	return nil
}

// Get retrieves the compiler registered for nodeType.
func (r *Registry) Get(nodeType string) (Compiler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	compiler, ok := r.compilers[nodeType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrExecutorNotFound, nodeType)
	}
	return compiler, nil
}

// Has reports whether a compiler is registered for nodeType.
func (r *Registry) Has(nodeType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.compilers[nodeType]
	return ok
}

// List returns the registered node types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.compilers))
	for t := range r.compilers {
		types = append(types, t)
	}
	return types
}

// Unregister removes the compiler registered for nodeType.
func (r *Registry) Unregister(nodeType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.compilers[nodeType]; !ok {
		return fmt.Errorf("%w: %s", models.ErrExecutorNotFound, nodeType)
	}
	delete(r.compilers, nodeType)
	return nil
}
