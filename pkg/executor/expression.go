package executor

import (
	"fmt"

	"github.com/expr-lang/expr/vm"
	"github.com/smilemakc/mbflow/pkg/jdmvalue"
	"github.com/smilemakc/mbflow/pkg/models"
)

type compiledAssignment struct {
	key     string
	program *vm.Program
}

// compileExpressionNode implements the expression node compiler: each
// {key, value} entry is compiled once at plan time, then evaluated in
// declaration order against ctx and assigned at its dotted path. A
// runtime evaluation failure on any entry discards the whole node's
// partial result.
func compileExpressionNode(node *models.Node, in *CompileInput) (NodeFunc, error) {
	raw, err := models.DecodeContent(models.NodeKindExpression, node.Content)
	if err != nil {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: err}
	}
	content, ok := raw.(models.ExpressionContent)
	if !ok {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: fmt.Errorf("unexpected content shape")}
	}

	assignments := make([]compiledAssignment, 0, len(content.Entries))
	for _, entry := range content.Entries {
		program, err := in.Evaluator.Compile(entry.Value)
		if err != nil {
			return nil, &models.CompileError{Reason: models.ReasonConditionParse, RuleID: node.ID, CellID: entry.Key, Err: err}
		}
		assignments = append(assignments, compiledAssignment{key: entry.Key, program: program})
	}

	return func(ctx map[string]any) map[string]any {
		result := make(map[string]any)
		for _, a := range assignments {
			value, err := in.Evaluator.Run(a.program, ctx)
			if err != nil {
				in.Logger.Debug("expression node evaluation failed", "nodeId", node.ID, "key", a.key, "error", err)
				return map[string]any{}
			}
			jdmvalue.SetByPath(result, a.key, value)
		}
		return result
	}, nil
}
