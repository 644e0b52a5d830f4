package visualization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smilemakc/mbflow/pkg/models"
)

// MermaidRenderer renders a JDM document as a Mermaid flowchart diagram.
type MermaidRenderer struct{}

// NewMermaidRenderer creates a new Mermaid renderer.
func NewMermaidRenderer() *MermaidRenderer {
	return &MermaidRenderer{}
}

// Format returns the format identifier.
func (r *MermaidRenderer) Format() string {
	return "mermaid"
}

// Render converts doc into Mermaid flowchart syntax. When plan is
// non-nil and opts.ShowGuards is set, each guarded node gains a guard-set
// line in its label and output-source nodes gain a "→ output" label line.
func (r *MermaidRenderer) Render(doc *models.Document, plan PlanView, opts *RenderOptions) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	var sb strings.Builder

	if len(opts.ThemeVariables) > 0 {
		sb.WriteString("---\n")
		sb.WriteString("config:\n")
		sb.WriteString("  theme: base\n")
		sb.WriteString("  themeVariables:\n")
		for key, value := range opts.ThemeVariables {
			sb.WriteString(fmt.Sprintf("    %s: \"%s\"\n", key, value))
		}
		sb.WriteString("---\n")
	}

	direction := opts.Direction
	if direction == "" {
		direction = "TB"
	}
	sb.WriteString("flowchart ")
	sb.WriteString(direction)
	sb.WriteString("\n")

	for _, node := range doc.Nodes {
		sb.WriteString("    ")
		sb.WriteString(r.renderNode(node, plan, opts))
		sb.WriteString("\n")
	}

	if len(doc.Edges) > 0 {
		sb.WriteString("\n")
		for _, edge := range doc.Edges {
			sb.WriteString("    ")
			sb.WriteString(r.renderEdge(edge))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(r.renderNodeStyles())
	sb.WriteString("\n")
	sb.WriteString(r.applyNodeClasses(doc))

	return sb.String(), nil
}

// renderNode formats a single node, shape-coded by kind: diamond for
// switch, hexagon for decision table, stadium for function, rectangle
// for expression.
func (r *MermaidRenderer) renderNode(node *models.Node, plan PlanView, opts *RenderOptions) string {
	label := r.buildNodeLabel(node, plan, opts)

	switch node.Type {
	case models.NodeKindSwitch:
		return fmt.Sprintf(`%s{"%s"}`, node.ID, label)
	case models.NodeKindDecisionTable:
		return fmt.Sprintf(`%s{{"%s"}}`, node.ID, label)
	case models.NodeKindFunction:
		return fmt.Sprintf(`%s(["%s"])`, node.ID, label)
	case models.NodeKindInput, models.NodeKindOutput:
		return fmt.Sprintf(`%s(("%s"))`, node.ID, label)
	default:
		return fmt.Sprintf(`%s["%s"]`, node.ID, label)
	}
}

func (r *MermaidRenderer) buildNodeLabel(node *models.Node, plan PlanView, opts *RenderOptions) string {
	label := node.Name
	if label == "" {
		label = node.ID
	}
	label = fmt.Sprintf("%s: %s", kindPrefix(node.Type), label)

	if opts.ShowGuards && plan != nil {
		if guard := plan.Guard(node.ID); len(guard) > 0 {
			label += "<br/>" + formatGuard(guard)
		}
		if plan.IsOutputSource(node.ID) {
			label += "<br/>→ output"
		}
	}

	label = strings.ReplaceAll(label, `"`, "&quot;")
	return label
}

func kindPrefix(kind string) string {
	switch kind {
	case models.NodeKindInput:
		return "Input"
	case models.NodeKindOutput:
		return "Output"
	case models.NodeKindExpression:
		return "Expression"
	case models.NodeKindDecisionTable:
		return "Table"
	case models.NodeKindSwitch:
		return "Switch"
	case models.NodeKindFunction:
		return "Function"
	default:
		return strings.ToUpper(kind)
	}
}

// formatGuard renders a guard set deterministically (sorted by switch id)
// so diagram output is stable across runs despite map iteration order.
func formatGuard(guard map[string]string) string {
	ids := make([]string, 0, len(guard))
	for id := range guard {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s=%s", id, guard[id]))
	}
	return "guard: " + strings.Join(parts, ", ")
}

// renderEdge formats an edge connection. A non-empty SourceHandle (a
// switch node's branch id) becomes the arrow label.
func (r *MermaidRenderer) renderEdge(edge *models.Edge) string {
	if edge.SourceHandle != "" {
		return fmt.Sprintf(`%s -- "%s" --> %s`, edge.SourceID, edge.SourceHandle, edge.TargetID)
	}
	return fmt.Sprintf("%s --> %s", edge.SourceID, edge.TargetID)
}

func (r *MermaidRenderer) renderNodeStyles() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("    %% Node kind styles\n")
	sb.WriteString("    classDef inputNode fill:#D0E6FF,stroke:#1A73E8,stroke-width:2px,color:#000\n")
	sb.WriteString("    classDef outputNode fill:#D0E6FF,stroke:#1A73E8,stroke-width:2px,color:#000\n")
	sb.WriteString("    classDef expressionNode fill:#FFE5C2,stroke:#F7931A,stroke-width:2px,color:#000\n")
	sb.WriteString("    classDef decisionTableNode fill:#FFD9E6,stroke:#EA4C89,stroke-width:2px,color:#000\n")
	sb.WriteString("    classDef switchNode fill:#DFF7E3,stroke:#34A853,stroke-width:2px,color:#000\n")
	sb.WriteString("    classDef functionNode fill:#E8D9FF,stroke:#8E57FF,stroke-width:2px,color:#000\n")
	return sb.String()
}

func (r *MermaidRenderer) applyNodeClasses(doc *models.Document) string {
	var sb strings.Builder

	nodesByClass := make(map[string][]string)
	for _, node := range doc.Nodes {
		className := node.Type
		nodesByClass[className] = append(nodesByClass[className], node.ID)
	}

	classNames := make([]string, 0, len(nodesByClass))
	for className := range nodesByClass {
		classNames = append(classNames, className)
	}
	sort.Strings(classNames)

	for _, className := range classNames {
		ids := nodesByClass[className]
		sb.WriteString("    class ")
		sb.WriteString(strings.Join(ids, ","))
		sb.WriteString(" ")
		sb.WriteString(className)
		sb.WriteString("\n")
	}

	return sb.String()
}
