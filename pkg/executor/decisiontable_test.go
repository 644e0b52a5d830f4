package executor

import (
	"testing"

	"github.com/smilemakc/mbflow/pkg/models"
	"github.com/stretchr/testify/require"
)

func ageTierNode() *models.Node {
	return &models.Node{
		ID:   "D1",
		Type: models.NodeKindDecisionTable,
		Content: map[string]any{
			"inputs":  []any{map[string]any{"id": "i1", "field": "age"}},
			"outputs": []any{map[string]any{"id": "o1", "field": "tier"}},
			"rules": []any{
				map[string]any{"i1": "[0..17]", "o1": "'minor'"},
				map[string]any{"i1": "[18..64]", "o1": "'adult'"},
				map[string]any{"i1": "", "o1": "'senior'"},
			},
		},
	}
}

func TestCompileDecisionTableNode_FiresFirstMatchingRule(t *testing.T) {
	fn, err := compileDecisionTableNode(ageTierNode(), newCompileInput())
	require.NoError(t, err)

	require.Equal(t, "adult", fn(map[string]any{"age": 30})["tier"])
	require.Equal(t, "senior", fn(map[string]any{"age": 80})["tier"])
	require.Equal(t, "minor", fn(map[string]any{"age": 10})["tier"])
}

func TestCompileDecisionTableNode_AllWildcardsAlwaysFires(t *testing.T) {
	node := &models.Node{
		ID:   "D1",
		Type: models.NodeKindDecisionTable,
		Content: map[string]any{
			"inputs":  []any{map[string]any{"id": "i1", "field": "age"}},
			"outputs": []any{map[string]any{"id": "o1", "field": "tier"}},
			"rules":   []any{map[string]any{"i1": "", "o1": "'any'"}},
		},
	}

	fn, err := compileDecisionTableNode(node, newCompileInput())
	require.NoError(t, err)
	require.Equal(t, "any", fn(map[string]any{"age": 999})["tier"])
}

func TestCompileDecisionTableNode_NoRuleFiresReturnsEmpty(t *testing.T) {
	node := &models.Node{
		ID:   "D1",
		Type: models.NodeKindDecisionTable,
		Content: map[string]any{
			"inputs":  []any{map[string]any{"id": "i1", "field": "age"}},
			"outputs": []any{map[string]any{"id": "o1", "field": "tier"}},
			"rules":   []any{map[string]any{"i1": "[0..17]", "o1": "'minor'"}},
		},
	}

	fn, err := compileDecisionTableNode(node, newCompileInput())
	require.NoError(t, err)
	require.Empty(t, fn(map[string]any{"age": 99}))
}

func TestCompileDecisionTableNode_Membership(t *testing.T) {
	node := &models.Node{
		ID:   "D1",
		Type: models.NodeKindDecisionTable,
		Content: map[string]any{
			"inputs":  []any{map[string]any{"id": "i1", "field": "country"}},
			"outputs": []any{map[string]any{"id": "o1", "field": "allowed"}},
			"rules":   []any{map[string]any{"i1": "'US','CA','UK'", "o1": "true"}},
		},
	}

	fn, err := compileDecisionTableNode(node, newCompileInput())
	require.NoError(t, err)
	require.Equal(t, true, fn(map[string]any{"country": "CA"})["allowed"])
	require.Empty(t, fn(map[string]any{"country": "DE"}))
}

func TestCompileDecisionTableNode_EndsWith(t *testing.T) {
	node := &models.Node{
		ID:   "D1",
		Type: models.NodeKindDecisionTable,
		Content: map[string]any{
			"inputs":  []any{map[string]any{"id": "i1", "field": "host"}},
			"outputs": []any{map[string]any{"id": "o1", "field": "isGov"}},
			"rules":   []any{map[string]any{"i1": "endsWith($, '.gov')", "o1": "true"}},
		},
	}

	fn, err := compileDecisionTableNode(node, newCompileInput())
	require.NoError(t, err)
	require.Equal(t, true, fn(map[string]any{"host": "irs.gov"})["isGov"])
	require.Empty(t, fn(map[string]any{"host": "example.com"}))
}

func TestCompileDecisionTableNode_UncompilableInputCellDegradesToNeverFiring(t *testing.T) {
	node := &models.Node{
		ID:   "D1",
		Type: models.NodeKindDecisionTable,
		Content: map[string]any{
			"inputs":  []any{map[string]any{"id": "i1", "field": "age"}},
			"outputs": []any{map[string]any{"id": "o1", "field": "tier"}},
			"rules": []any{
				map[string]any{"i1": "$$$not valid$$$", "o1": "'never'"},
				map[string]any{"i1": "", "o1": "'default'"},
			},
		},
	}

	fn, err := compileDecisionTableNode(node, newCompileInput())
	require.NoError(t, err)
	require.Equal(t, "default", fn(map[string]any{"age": 30})["tier"])
}

func TestCompileDecisionTableNode_OutputCellCompileFailureIsHardError(t *testing.T) {
	node := &models.Node{
		ID:   "D1",
		Type: models.NodeKindDecisionTable,
		Content: map[string]any{
			"inputs":  []any{map[string]any{"id": "i1", "field": "age"}},
			"outputs": []any{map[string]any{"id": "o1", "field": "tier"}},
			"rules":   []any{map[string]any{"i1": "", "o1": "os.Getenv('X')"}},
		},
	}

	_, err := compileDecisionTableNode(node, newCompileInput())
	require.Error(t, err)

	var compileErr *models.CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Equal(t, models.ReasonConditionParse, compileErr.Reason)
}
