package engine

import (
	"testing"

	"github.com/smilemakc/mbflow/pkg/models"
	"github.com/stretchr/testify/require"
)

func linearDoc() *models.Document {
	return &models.Document{
		Nodes: []*models.Node{
			{ID: "in", Type: models.NodeKindInput},
			{ID: "e1", Type: models.NodeKindExpression, Content: []any{
				map[string]any{"key": "x", "value": "1"},
			}},
			{ID: "out", Type: models.NodeKindOutput},
		},
		Edges: []*models.Edge{
			{SourceID: "in", TargetID: "e1"},
			{SourceID: "e1", TargetID: "out"},
		},
	}
}

func TestFindInputNode_ExactlyOne(t *testing.T) {
	node, err := findInputNode(linearDoc())
	require.NoError(t, err)
	require.Equal(t, "in", node.ID)
}

func TestFindInputNode_ZeroFails(t *testing.T) {
	doc := linearDoc()
	doc.Nodes = doc.Nodes[1:]
	_, err := findInputNode(doc)
	require.ErrorIs(t, err, models.ErrMissingInputNode)
}

func TestFindInputNode_MultipleFails(t *testing.T) {
	doc := linearDoc()
	doc.Nodes = append(doc.Nodes, &models.Node{ID: "in2", Type: models.NodeKindInput})
	_, err := findInputNode(doc)
	require.ErrorIs(t, err, models.ErrMissingInputNode)
}

func TestTopologicalOrder_ExcludesOutputNode(t *testing.T) {
	order, err := topologicalOrder(linearDoc())
	require.NoError(t, err)
	require.Equal(t, []string{"in", "e1"}, order)
}

func TestTopologicalOrder_DetectsCycle(t *testing.T) {
	doc := linearDoc()
	doc.Edges = append(doc.Edges, &models.Edge{SourceID: "e1", TargetID: "e1"})
	_, err := topologicalOrder(doc)
	require.ErrorIs(t, err, models.ErrCyclicGraph)
}

func switchDoc() *models.Document {
	return &models.Document{
		Nodes: []*models.Node{
			{ID: "in", Type: models.NodeKindInput},
			{ID: "s1", Type: models.NodeKindSwitch},
			{ID: "a", Type: models.NodeKindExpression},
			{ID: "b", Type: models.NodeKindExpression},
			{ID: "merge", Type: models.NodeKindExpression},
			{ID: "out", Type: models.NodeKindOutput},
		},
		Edges: []*models.Edge{
			{SourceID: "in", TargetID: "s1"},
			{SourceID: "s1", TargetID: "a", SourceHandle: "A"},
			{SourceID: "s1", TargetID: "b", SourceHandle: "B"},
			{SourceID: "a", TargetID: "merge"},
			{SourceID: "b", TargetID: "merge"},
			{SourceID: "merge", TargetID: "out"},
		},
	}
}

func TestDeriveGuards_AssignsSwitchBranchGuards(t *testing.T) {
	guards := deriveGuards(switchDoc(), "in")
	require.Equal(t, GuardSet{}, guards["in"])
	require.Equal(t, GuardSet{}, guards["s1"])
	require.Equal(t, GuardSet{"s1": "A"}, guards["a"])
	require.Equal(t, GuardSet{"s1": "B"}, guards["b"])
}

func TestDeriveGuards_FirstDiscoveredWins(t *testing.T) {
	// merge is reachable from both "a" (guard s1=A) and "b" (guard s1=B);
	// document declaration order means the edge from "a" is visited first.
	guards := deriveGuards(switchDoc(), "in")
	require.Equal(t, GuardSet{"s1": "A"}, guards["merge"])
}

func TestDeriveOutputMetadata_RecordsSourcesAndSwitchHandles(t *testing.T) {
	doc := &models.Document{
		Nodes: []*models.Node{
			{ID: "in", Type: models.NodeKindInput},
			{ID: "s1", Type: models.NodeKindSwitch},
			{ID: "out", Type: models.NodeKindOutput},
		},
		Edges: []*models.Edge{
			{SourceID: "in", TargetID: "s1"},
			{SourceID: "s1", TargetID: "out", SourceHandle: "A"},
		},
	}
	sources, switchOutputs := deriveOutputMetadata(doc)
	require.True(t, sources["s1"])
	require.True(t, switchOutputs["s1"]["A"])
}
