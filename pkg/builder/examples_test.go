package builder_test

import (
	"fmt"

	"github.com/smilemakc/mbflow/pkg/builder"
	"github.com/smilemakc/mbflow/pkg/models"
)

// Example of assembling a small switch-driven JDM document.
func ExampleNewDocument_switchDocument() {
	doc, err := builder.NewDocument().
		AddNode(builder.Input("in")).
		AddNode(builder.NewNode("s1", models.NodeKindSwitch, "risk tier",
			builder.WithSwitchStatements(
				builder.Branch("high", "score > 80"),
				builder.Branch("low", ""),
			),
		)).
		AddNode(builder.NewNode("flag", models.NodeKindExpression, "flag high risk",
			builder.WithExpressionEntries(builder.Assign("flagged", "true")),
		)).
		AddNode(builder.Output("out")).
		AddEdge(builder.NewEdge("in", "s1")).
		AddEdge(builder.NewEdge("s1", "flag", builder.FromBranch("high"))).
		AddEdge(builder.NewEdge("flag", "out")).
		Build()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(len(doc.Nodes))
	fmt.Println(len(doc.Edges))
	// Output:
	// 4
	// 3
}
