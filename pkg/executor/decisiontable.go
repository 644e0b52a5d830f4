package executor

import (
	"fmt"

	"github.com/expr-lang/expr/vm"
	"github.com/smilemakc/mbflow/pkg/jdmcondition"
	"github.com/smilemakc/mbflow/pkg/jdmvalue"
	"github.com/smilemakc/mbflow/pkg/models"
)

// compiledCondition is one input column's compiled predicate for one rule.
// True wildcard cells (empty or absent) never become a compiledCondition
// at all: compileInputCell returns nil and the column is omitted from the
// rule's conditions. program == nil here instead marks a cell that
// compileInputCell tried and failed to compile — ruleMatches treats that
// as always-false, the opposite of a wildcard.
type compiledCondition struct {
	field   string
	program *vm.Program
}

type compiledRule struct {
	id         string
	conditions []compiledCondition
	outputs    []compiledAssignment
}

// compileDecisionTableNode implements the decision-table node compiler.
// Rules fire top-to-bottom; the first rule whose non-wildcard input
// conditions all hold produces the partial result.
//
// An empty or absent input cell is a wildcard (matches always). A cell
// that the condition compiler translates but the expression evaluator
// then fails to compile
// degrades the condition to always-false and is logged at Warn — it can
// never fire, but compilation still succeeds. An output cell's expression
// failing to compile has no such fallback and fails the whole plan compile
// with CompileError{Reason: ConditionParse}.
func compileDecisionTableNode(node *models.Node, in *CompileInput) (NodeFunc, error) {
	raw, err := models.DecodeContent(models.NodeKindDecisionTable, node.Content)
	if err != nil {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: err}
	}
	content, ok := raw.(models.DecisionTableContent)
	if !ok {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: fmt.Errorf("unexpected content shape")}
	}

	fieldByID := make(map[string]string, len(content.Inputs)+len(content.Outputs))
	for _, f := range content.Inputs {
		fieldByID[f.ID] = f.Field
	}
	outputFieldByID := make(map[string]string, len(content.Outputs))
	for _, f := range content.Outputs {
		outputFieldByID[f.ID] = f.Field
	}

	rules := make([]compiledRule, 0, len(content.Rules))
	for idx, rule := range content.Rules {
		ruleID := rule.ID
		if ruleID == "" {
			ruleID = fmt.Sprintf("rule[%d]", idx)
		}

		compiled := compiledRule{id: ruleID}

		for _, col := range content.Inputs {
			cell := rule.Cells[col.ID]
			cond, err := compileInputCell(in, node.ID, ruleID, col, cell)
			if err != nil {
				return nil, err
			}
			if cond != nil {
				compiled.conditions = append(compiled.conditions, *cond)
			}
		}

		for _, col := range content.Outputs {
			cell, present := rule.Cells[col.ID]
			if !present || cell == "" {
				continue
			}
			program, err := in.Evaluator.Compile(cell)
			if err != nil {
				return nil, &models.CompileError{Reason: models.ReasonConditionParse, RuleID: ruleID, CellID: col.ID, Err: err}
			}
			compiled.outputs = append(compiled.outputs, compiledAssignment{key: col.Field, program: program})
		}

		rules = append(rules, compiled)
	}

	return func(ctx map[string]any) map[string]any {
		for _, rule := range rules {
			if !ruleMatches(in, node.ID, rule, ctx) {
				continue
			}
			return applyOutputs(in, node.ID, rule, ctx)
		}
		return map[string]any{}
	}, nil
}

// compileInputCell translates one input cell via the Condition Compiler
// and compiles the result, returning nil (wildcard, always matches) when
// the cell is empty or absent.
func compileInputCell(in *CompileInput, nodeID, ruleID string, col models.DecisionTableField, cell string) (*compiledCondition, error) {
	exprText, ok := jdmcondition.CompileCell(cell, col.Field)
	if !ok {
		return nil, nil
	}

	program, err := in.Evaluator.Compile(exprText)
	if err != nil {
		in.Logger.Warn("condition cell failed to compile, rule can never fire",
			"nodeId", nodeID, "ruleId", ruleID, "cellId", col.ID, "error", err)
		return &compiledCondition{field: col.Field, program: nil}, nil
	}
	return &compiledCondition{field: col.Field, program: program}, nil
}

func ruleMatches(in *CompileInput, nodeID string, rule compiledRule, ctx map[string]any) bool {
	for _, cond := range rule.conditions {
		if cond.program == nil {
			return false
		}
		result, err := in.Evaluator.Run(cond.program, ctx)
		if err != nil {
			in.Logger.Debug("decision table condition evaluation failed, rule skipped",
				"nodeId", nodeID, "ruleId", rule.id, "field", cond.field, "error", err)
			return false
		}
		ok, _ := result.(bool)
		if !ok {
			return false
		}
	}
	return true
}

func applyOutputs(in *CompileInput, nodeID string, rule compiledRule, ctx map[string]any) map[string]any {
	result := make(map[string]any)
	for _, out := range rule.outputs {
		value, err := in.Evaluator.Run(out.program, ctx)
		if err != nil {
			in.Logger.Debug("decision table output evaluation failed",
				"nodeId", nodeID, "ruleId", rule.id, "key", out.key, "error", err)
			return map[string]any{}
		}
		jdmvalue.SetByPath(result, out.key, value)
	}
	return result
}
