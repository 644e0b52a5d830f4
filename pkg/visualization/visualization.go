// Package visualization renders a JDM document (and, optionally, its
// compiled plan) as a Mermaid flowchart diagram.
//
// Example usage:
//
//	renderer := visualization.NewMermaidRenderer()
//	opts := visualization.DefaultRenderOptions()
//	diagram, err := renderer.Render(doc, nil, opts)
package visualization

import "github.com/smilemakc/mbflow/pkg/models"

// Renderer is the interface for rendering a document in a particular
// diagram format.
type Renderer interface {
	// Render converts doc (and, if supplied, its compiled plan's guard
	// annotations) into the target format.
	Render(doc *models.Document, plan PlanView, opts *RenderOptions) (string, error)

	// Format returns the format identifier (e.g. "mermaid").
	Format() string
}

// PlanView is the subset of pkg/engine.Plan the visualizer needs. Defined
// here so that this package does not import pkg/engine; *engine.Plan
// satisfies it.
type PlanView interface {
	Guard(nodeID string) map[string]string
	IsOutputSource(nodeID string) bool
}

// RenderOptions configures how a document is rendered.
type RenderOptions struct {
	// ShowGuards annotates each node with its plan guard set, when a plan
	// is supplied to Render. No-op without a plan.
	ShowGuards bool

	// Direction sets the diagram flow direction: "TB", "LR", "RL", "BT".
	Direction string

	// ThemeVariables allows customizing the Mermaid theme.
	ThemeVariables map[string]string
}

// DefaultRenderOptions returns the default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		ShowGuards: true,
		Direction:  "TB",
	}
}
