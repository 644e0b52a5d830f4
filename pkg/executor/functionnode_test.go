package executor

import (
	"testing"

	"github.com/smilemakc/mbflow/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestCompileFunctionNode_RecognizedShapeTalliesFlags(t *testing.T) {
	node := &models.Node{
		ID:      "F1",
		Type:    models.NodeKindFunction,
		Content: map[string]any{"source": "return Object.values(input?.flag ?? {}).reduce(...)"},
	}

	fn, err := compileFunctionNode(node, newCompileInput())
	require.NoError(t, err)

	ctx := map[string]any{"flag": map[string]any{
		"a": "red", "b": "red", "c": "critical", "d": "amber", "e": "unused",
	}}
	result := fn(ctx)
	require.Equal(t, 1, result["critical"])
	require.Equal(t, 2, result["red"])
	require.Equal(t, 1, result["amber"])
	require.Equal(t, 0, result["green"])
}

func TestCompileFunctionNode_DeclinesUnrecognizedBody(t *testing.T) {
	node := &models.Node{
		ID:      "F1",
		Type:    models.NodeKindFunction,
		Content: map[string]any{"source": "return input.total * 2"},
	}

	_, err := compileFunctionNode(node, newCompileInput())
	require.Error(t, err)

	var compileErr *models.CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Equal(t, models.ReasonNodeNotCompilable, compileErr.Reason)
	require.Equal(t, "F1", compileErr.NodeID)
}
