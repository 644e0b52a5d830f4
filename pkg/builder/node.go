// Package builder offers a fluent, functional-options API for assembling
// a JDM document in Go code instead of hand-writing its JSON.
package builder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/smilemakc/mbflow/pkg/models"
)

// NodeBuilder builds a single JDM node.
type NodeBuilder struct {
	id       string
	name     string
	nodeType string
	content  any
	err      error
}

// NodeOption configures a NodeBuilder.
type NodeOption func(*NodeBuilder) error

// NewNode creates a node builder for nodeType. An empty id gets a
// generated uuid.
func NewNode(id, nodeType, name string, opts ...NodeOption) *NodeBuilder {
	if id == "" {
		id = uuid.NewString()
	}
	nb := &NodeBuilder{id: id, nodeType: nodeType, name: name}
	for _, opt := range opts {
		if err := opt(nb); err != nil {
			nb.err = err
			return nb
		}
	}
	return nb
}

// Build constructs the final Node.
func (nb *NodeBuilder) Build() (*models.Node, error) {
	if nb.err != nil {
		return nil, nb.err
	}
	if nb.id == "" {
		return nil, fmt.Errorf("node id is required")
	}
	if nb.nodeType == "" {
		return nil, fmt.Errorf("node type is required")
	}
	return &models.Node{
		ID:      nb.id,
		Name:    nb.name,
		Type:    nb.nodeType,
		Content: nb.content,
	}, nil
}

// Input builds an inputNode, which carries no content.
func Input(id string) *NodeBuilder {
	return NewNode(id, models.NodeKindInput, "input")
}

// Output builds an outputNode, which carries no content.
func Output(id string) *NodeBuilder {
	return NewNode(id, models.NodeKindOutput, "output")
}

// WithExpressionEntries sets an expressionNode's ordered {key, value}
// assignments.
func WithExpressionEntries(entries ...models.ExpressionEntry) NodeOption {
	return func(nb *NodeBuilder) error {
		if nb.nodeType != models.NodeKindExpression {
			return fmt.Errorf("expression entries only apply to %s, got %s", models.NodeKindExpression, nb.nodeType)
		}
		nb.content = models.ExpressionContent{Entries: entries}
		return nil
	}
}

// Assign is a convenience constructor for a single expression entry.
func Assign(key, value string) models.ExpressionEntry {
	return models.ExpressionEntry{Key: key, Value: value}
}

// WithDecisionTable sets a decisionTableNode's inputs, outputs, and rules.
func WithDecisionTable(content models.DecisionTableContent) NodeOption {
	return func(nb *NodeBuilder) error {
		if nb.nodeType != models.NodeKindDecisionTable {
			return fmt.Errorf("decision table content only applies to %s, got %s", models.NodeKindDecisionTable, nb.nodeType)
		}
		nb.content = content
		return nil
	}
}

// WithSwitchStatements sets a switchNode's ordered branch statements.
func WithSwitchStatements(statements ...models.SwitchStatement) NodeOption {
	return func(nb *NodeBuilder) error {
		if nb.nodeType != models.NodeKindSwitch {
			return fmt.Errorf("switch statements only apply to %s, got %s", models.NodeKindSwitch, nb.nodeType)
		}
		nb.content = models.SwitchContent{Statements: statements}
		return nil
	}
}

// Branch is a convenience constructor for a single switch statement. An
// empty condition marks the default branch.
func Branch(id, condition string) models.SwitchStatement {
	return models.SwitchStatement{ID: id, Condition: condition}
}

// WithFunctionSource sets a functionNode's opaque source body.
func WithFunctionSource(source string) NodeOption {
	return func(nb *NodeBuilder) error {
		if nb.nodeType != models.NodeKindFunction {
			return fmt.Errorf("function source only applies to %s, got %s", models.NodeKindFunction, nb.nodeType)
		}
		nb.content = models.FunctionContent{Source: source}
		return nil
	}
}
