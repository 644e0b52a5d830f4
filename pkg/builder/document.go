package builder

import "github.com/smilemakc/mbflow/pkg/models"

// DocumentBuilder accumulates nodes and edges into a JDM document.
type DocumentBuilder struct {
	nodes []*models.Node
	edges []*models.Edge
	err   error
}

// NewDocument creates an empty document builder.
func NewDocument() *DocumentBuilder {
	return &DocumentBuilder{}
}

// AddNode appends the node built by nb. If nb failed to build, the error
// is captured and surfaced by Build.
func (db *DocumentBuilder) AddNode(nb *NodeBuilder) *DocumentBuilder {
	if db.err != nil {
		return db
	}
	node, err := nb.Build()
	if err != nil {
		db.err = err
		return db
	}
	db.nodes = append(db.nodes, node)
	return db
}

// AddEdge appends the edge built by eb. If eb failed to build, the error
// is captured and surfaced by Build.
func (db *DocumentBuilder) AddEdge(eb *EdgeBuilder) *DocumentBuilder {
	if db.err != nil {
		return db
	}
	edge, err := eb.Build()
	if err != nil {
		db.err = err
		return db
	}
	db.edges = append(db.edges, edge)
	return db
}

// Build assembles and validates the document. Each node's content is
// checked against its own shape's rules (switch branch uniqueness and
// default cardinality, decision-table rule column coverage, expression
// entry well-formedness) before the document as a whole is validated.
func (db *DocumentBuilder) Build() (*models.Document, error) {
	if db.err != nil {
		return nil, db.err
	}
	for _, node := range db.nodes {
		if err := validateNodeContent(node); err != nil {
			return nil, err
		}
	}
	doc := &models.Document{Nodes: db.nodes, Edges: db.edges}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
