package executor

import (
	"testing"

	"github.com/smilemakc/mbflow/pkg/jdmvalue"
	"github.com/smilemakc/mbflow/pkg/models"
	"github.com/stretchr/testify/require"
)

func colorSwitchNode() *models.Node {
	return &models.Node{
		ID:   "S1",
		Type: models.NodeKindSwitch,
		Content: map[string]any{
			"statements": []any{
				map[string]any{"id": "A", "condition": "color == 'red'"},
				map[string]any{"id": "B", "condition": ""},
			},
		},
	}
}

func TestCompileSwitchNode_RecordsChosenHandle(t *testing.T) {
	in := newCompileInput()
	fn, err := compileSwitchNode(colorSwitchNode(), in)
	require.NoError(t, err)

	result := fn(map[string]any{"color": "red"})
	require.Equal(t, "A", result[jdmvalue.ReservedSwitchPrefix+"S1"])
}

func TestCompileSwitchNode_DefaultBranchWhenNoConditionMatches(t *testing.T) {
	in := newCompileInput()
	fn, err := compileSwitchNode(colorSwitchNode(), in)
	require.NoError(t, err)

	result := fn(map[string]any{"color": "green"})
	require.Equal(t, "B", result[jdmvalue.ReservedSwitchPrefix+"S1"])
}

func TestCompileSwitchNode_PassesThroughContextWhenBranchIsOutputSource(t *testing.T) {
	in := newCompileInput()
	in.SwitchOutputHandles = map[string]bool{"A": true}

	fn, err := compileSwitchNode(colorSwitchNode(), in)
	require.NoError(t, err)

	result := fn(map[string]any{"color": "red", "extra": 7})
	require.Equal(t, 7, result["extra"])
	// The guard key is still present here: the runner strips reserved
	// switch keys only when merging into output, never when merging into
	// ctx, so the compiled node must always emit it.
	require.Equal(t, "A", result[jdmvalue.ReservedSwitchPrefix+"S1"])
}

func TestCompileSwitchNode_OnlyGuardKeyWhenBranchNotOutputSource(t *testing.T) {
	in := newCompileInput()
	in.SwitchOutputHandles = map[string]bool{}

	fn, err := compileSwitchNode(colorSwitchNode(), in)
	require.NoError(t, err)

	result := fn(map[string]any{"color": "red", "extra": 7})
	require.NotContains(t, result, "extra")
	require.Equal(t, "A", result[jdmvalue.ReservedSwitchPrefix+"S1"])
}
