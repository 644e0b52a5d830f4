package builder

import (
	"fmt"

	"github.com/smilemakc/mbflow/pkg/models"
)

// ValidateExpressionEntries checks that every {key, value} assignment of
// an expressionNode names a non-empty dotted path and a non-empty
// expression body. Optional strict-mode helper; node content is not
// checked for expression validity until plan compile time.
func ValidateExpressionEntries(entries []models.ExpressionEntry) error {
	for i, e := range entries {
		if e.Key == "" {
			return fmt.Errorf("expression entry %d: key cannot be empty", i)
		}
		if e.Value == "" {
			return fmt.Errorf("expression entry %d (%s): value cannot be empty", i, e.Key)
		}
	}
	return nil
}

// ValidateSwitchStatements checks that switch statement ids are unique
// and non-empty, and that at most one statement is the default (empty
// condition) branch.
func ValidateSwitchStatements(ids []string, conditions []string) error {
	if len(ids) != len(conditions) {
		return fmt.Errorf("ids and conditions must have the same length")
	}

	seen := make(map[string]bool, len(ids))
	defaults := 0
	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("switch statement %d: id cannot be empty", i)
		}
		if seen[id] {
			return fmt.Errorf("switch statement %d: duplicate id %q", i, id)
		}
		seen[id] = true
		if conditions[i] == "" {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("switch node declares %d default branches, want at most 1", defaults)
	}
	return nil
}

// ValidateDecisionTableRule checks that a rule's cells cover every
// declared input and output column id.
func ValidateDecisionTableRule(cells map[string]string, columnIDs []string) error {
	for _, id := range columnIDs {
		if _, ok := cells[id]; !ok {
			return fmt.Errorf("rule is missing cell for column %q", id)
		}
	}
	return nil
}

// validateNodeContent runs the content-shape validator matching node's
// content, at DocumentBuilder.Build time. Nodes with no recognized
// content (input/output nodes, or a type this package doesn't set
// content for) are left to models.Document.Validate.
func validateNodeContent(node *models.Node) error {
	switch content := node.Content.(type) {
	case models.ExpressionContent:
		if err := ValidateExpressionEntries(content.Entries); err != nil {
			return fmt.Errorf("node %q: %w", node.ID, err)
		}
	case models.SwitchContent:
		ids := make([]string, len(content.Statements))
		conditions := make([]string, len(content.Statements))
		for i, stmt := range content.Statements {
			ids[i] = stmt.ID
			conditions[i] = stmt.Condition
		}
		if err := ValidateSwitchStatements(ids, conditions); err != nil {
			return fmt.Errorf("node %q: %w", node.ID, err)
		}
	case models.DecisionTableContent:
		columnIDs := make([]string, 0, len(content.Inputs)+len(content.Outputs))
		for _, f := range content.Inputs {
			columnIDs = append(columnIDs, f.ID)
		}
		for _, f := range content.Outputs {
			columnIDs = append(columnIDs, f.ID)
		}
		for _, rule := range content.Rules {
			if err := ValidateDecisionTableRule(rule.Cells, columnIDs); err != nil {
				return fmt.Errorf("node %q: %w", node.ID, err)
			}
		}
	}
	return nil
}
