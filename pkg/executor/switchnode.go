package executor

import (
	"fmt"

	"github.com/expr-lang/expr/vm"
	"github.com/smilemakc/mbflow/pkg/jdmvalue"
	"github.com/smilemakc/mbflow/pkg/models"
)

type compiledStatement struct {
	handle  string
	program *vm.Program // nil means an unconditional (default) branch
}

// compileSwitchNode implements the switch node compiler. Statements are
// evaluated top-to-bottom; the first true one's id becomes the chosen
// branch handle, recorded into the reserved "__switch_<nodeId>" context
// key so downstream guard checks can gate on it. That guard key must
// reach ctx on every run, even when this branch also feeds the output
// sink directly — so the partial result here never strips reserved keys
// itself. The runner is what strips them, and only when it merges a
// partial result into the final output, never when merging into ctx
// (pkg/engine's Evaluate calls jdmvalue.StripSwitchKeys there). When the
// chosen branch is connected straight to the output sink
// (in.SwitchOutputHandles), the partial result also carries the entire
// current context; otherwise only the guard key is returned and
// downstream nodes take it from there.
func compileSwitchNode(node *models.Node, in *CompileInput) (NodeFunc, error) {
	raw, err := models.DecodeContent(models.NodeKindSwitch, node.Content)
	if err != nil {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: err}
	}
	content, ok := raw.(models.SwitchContent)
	if !ok {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: fmt.Errorf("unexpected content shape")}
	}

	statements := make([]compiledStatement, 0, len(content.Statements))
	for _, stmt := range content.Statements {
		if stmt.Condition == "" {
			statements = append(statements, compiledStatement{handle: stmt.ID})
			continue
		}
		program, err := in.Evaluator.Compile(stmt.Condition)
		if err != nil {
			in.Logger.Warn("switch condition failed to compile, branch can never be chosen",
				"nodeId", node.ID, "statementId", stmt.ID, "error", err)
			statements = append(statements, compiledStatement{handle: stmt.ID, program: alwaysFalse(in)})
			continue
		}
		statements = append(statements, compiledStatement{handle: stmt.ID, program: program})
	}

	guardKey := jdmvalue.ReservedSwitchPrefix + node.ID
	outputHandles := in.SwitchOutputHandles

	return func(ctx map[string]any) map[string]any {
		chosen := chooseBranch(in, node.ID, statements, ctx)
		if chosen == "" {
			return map[string]any{}
		}

		result := map[string]any{guardKey: chosen}
		if outputHandles[chosen] {
			for k, v := range ctx {
				result[k] = v
			}
			result[guardKey] = chosen
		}
		return result
	}, nil
}

func chooseBranch(in *CompileInput, nodeID string, statements []compiledStatement, ctx map[string]any) string {
	for _, stmt := range statements {
		if stmt.program == nil {
			return stmt.handle
		}
		result, err := in.Evaluator.Run(stmt.program, ctx)
		if err != nil {
			in.Logger.Debug("switch condition evaluation failed, falling through",
				"nodeId", nodeID, "statementId", stmt.handle, "error", err)
			continue
		}
		if ok, _ := result.(bool); ok {
			return stmt.handle
		}
	}
	return ""
}

// alwaysFalse compiles a literal "false" program, used to represent a
// switch statement whose condition failed to compile: it can never be
// chosen but plan compilation still succeeds.
func alwaysFalse(in *CompileInput) *vm.Program {
	program, _ := in.Evaluator.Compile("false")
	return program
}
