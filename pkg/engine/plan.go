// Package engine implements the graph scheduler and the runner: together
// they turn a JDM document into an immutable Plan and then evaluate that
// plan against an input by walking its topological order.
package engine

import (
	"github.com/google/uuid"
	"github.com/smilemakc/mbflow/internal/telemetry"
	"github.com/smilemakc/mbflow/pkg/executor"
	"github.com/smilemakc/mbflow/pkg/jdmexpr"
	"github.com/smilemakc/mbflow/pkg/models"
)

// scheduledNode is one entry of a compiled plan's execution order.
type scheduledNode struct {
	id    string
	guard GuardSet
	fn    executor.NodeFunc
}

// Plan is the immutable result of compiling a document: a scheduled order
// of node evaluators plus the output metadata the runner needs to decide
// what to merge into the final output.
type Plan struct {
	PlanID string

	inputNodeID   string
	scheduled     []scheduledNode
	outputSources map[string]bool
	switchOutputs map[string]map[string]bool
}

// Compile parses doc's nodes and edges, derives topological order and
// guard sets, and resolves each node's compiler from the default
// registry backed by a fresh expression evaluator, producing an
// immutable Plan ready for repeated Evaluate calls.
func Compile(doc *models.Document) (*Plan, error) {
	return compile(doc, executor.NewDefaultRegistry(), jdmexpr.New(), telemetry.Default())
}

func compile(doc *models.Document, registry *executor.Registry, evaluator *jdmexpr.Evaluator, logger *telemetry.Logger) (*Plan, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	inputNode, err := findInputNode(doc)
	if err != nil {
		return nil, err
	}

	order, err := topologicalOrder(doc)
	if err != nil {
		return nil, err
	}

	guards := deriveGuards(doc, inputNode.ID)
	outputSources, switchOutputs := deriveOutputMetadata(doc)

	scheduled := make([]scheduledNode, 0, len(order))
	for _, id := range order {
		node := doc.NodeByID(id)
		if node.Type == models.NodeKindInput {
			continue
		}

		compiler, err := registry.Get(node.Type)
		if err != nil {
			return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: err}
		}

		in := &executor.CompileInput{Evaluator: evaluator, Logger: logger}
		if node.Type == models.NodeKindSwitch {
			in.SwitchOutputHandles = switchOutputs[node.ID]
		}

		fn, err := compiler.Compile(node, in)
		if err != nil {
			return nil, err
		}

		scheduled = append(scheduled, scheduledNode{id: node.ID, guard: guards[node.ID], fn: fn})
	}

	return &Plan{
		PlanID:        uuid.NewString(),
		inputNodeID:   inputNode.ID,
		scheduled:     scheduled,
		outputSources: outputSources,
		switchOutputs: switchOutputs,
	}, nil
}

// Order returns the compiled node ids in scheduled (topological) order,
// excluding the input node. Exposed for diagnostics and the visualizer
// (pkg/visualization), which annotates each node with its guard set.
func (p *Plan) Order() []string {
	ids := make([]string, len(p.scheduled))
	for i, sn := range p.scheduled {
		ids[i] = sn.id
	}
	return ids
}

// Guard returns the guard set recorded for nodeID, or nil if the node
// carries no guard (it runs unconditionally, or is unknown to the plan).
func (p *Plan) Guard(nodeID string) GuardSet {
	for _, sn := range p.scheduled {
		if sn.id == nodeID {
			return sn.guard
		}
	}
	return nil
}

// IsOutputSource reports whether nodeID's result feeds the final output.
func (p *Plan) IsOutputSource(nodeID string) bool {
	return p.outputSources[nodeID]
}
