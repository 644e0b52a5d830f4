package builder

import (
	"testing"

	"github.com/smilemakc/mbflow/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestValidateExpressionEntries_Success(t *testing.T) {
	err := ValidateExpressionEntries([]models.ExpressionEntry{{Key: "x", Value: "1"}})
	require.NoError(t, err)
}

func TestValidateExpressionEntries_EmptyKeyFails(t *testing.T) {
	err := ValidateExpressionEntries([]models.ExpressionEntry{{Key: "", Value: "1"}})
	require.Error(t, err)
}

func TestValidateExpressionEntries_EmptyValueFails(t *testing.T) {
	err := ValidateExpressionEntries([]models.ExpressionEntry{{Key: "x", Value: ""}})
	require.Error(t, err)
}

func TestValidateSwitchStatements_Success(t *testing.T) {
	err := ValidateSwitchStatements([]string{"a", "b"}, []string{"x > 1", ""})
	require.NoError(t, err)
}

func TestValidateSwitchStatements_DuplicateIDFails(t *testing.T) {
	err := ValidateSwitchStatements([]string{"a", "a"}, []string{"x", "y"})
	require.Error(t, err)
}

func TestValidateSwitchStatements_MultipleDefaultsFails(t *testing.T) {
	err := ValidateSwitchStatements([]string{"a", "b"}, []string{"", ""})
	require.Error(t, err)
}

func TestValidateDecisionTableRule_MissingColumnFails(t *testing.T) {
	err := ValidateDecisionTableRule(map[string]string{"i1": "1"}, []string{"i1", "o1"})
	require.Error(t, err)
}

func TestValidateDecisionTableRule_Success(t *testing.T) {
	err := ValidateDecisionTableRule(map[string]string{"i1": "1", "o1": "2"}, []string{"i1", "o1"})
	require.NoError(t, err)
}

func TestDocumentBuilder_RejectsDuplicateSwitchBranchIDs(t *testing.T) {
	_, err := NewDocument().
		AddNode(Input("in")).
		AddNode(NewNode("s1", models.NodeKindSwitch, "s",
			WithSwitchStatements(Branch("a", "x > 1"), Branch("a", "x > 2")),
		)).
		AddNode(Output("out")).
		AddEdge(NewEdge("in", "s1")).
		AddEdge(NewEdge("s1", "out")).
		Build()
	require.Error(t, err)
}

func TestDocumentBuilder_RejectsDecisionTableMissingCell(t *testing.T) {
	table := models.DecisionTableContent{
		Inputs:  []models.DecisionTableField{{ID: "i1", Field: "age"}},
		Outputs: []models.DecisionTableField{{ID: "o1", Field: "tier"}},
		Rules:   []models.DecisionTableRule{{Cells: map[string]string{"i1": ">18"}}},
	}
	_, err := NewDocument().
		AddNode(Input("in")).
		AddNode(NewNode("t1", models.NodeKindDecisionTable, "tiers", WithDecisionTable(table))).
		AddNode(Output("out")).
		AddEdge(NewEdge("in", "t1")).
		AddEdge(NewEdge("t1", "out")).
		Build()
	require.Error(t, err)
}

func TestDocumentBuilder_RejectsEmptyExpressionKey(t *testing.T) {
	_, err := NewDocument().
		AddNode(Input("in")).
		AddNode(NewNode("e1", models.NodeKindExpression, "calc",
			WithExpressionEntries(models.ExpressionEntry{Key: "", Value: "1"}),
		)).
		AddNode(Output("out")).
		AddEdge(NewEdge("in", "e1")).
		AddEdge(NewEdge("e1", "out")).
		Build()
	require.Error(t, err)
}
