package builder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/smilemakc/mbflow/pkg/models"
)

// EdgeBuilder builds a single JDM edge.
type EdgeBuilder struct {
	id           string
	sourceID     string
	targetID     string
	sourceHandle string
	err          error
}

// EdgeOption configures an EdgeBuilder.
type EdgeOption func(*EdgeBuilder) error

// NewEdge creates an edge builder connecting sourceID to targetID. The id
// is auto-generated unless overridden with WithEdgeID.
func NewEdge(sourceID, targetID string, opts ...EdgeOption) *EdgeBuilder {
	eb := &EdgeBuilder{id: uuid.NewString(), sourceID: sourceID, targetID: targetID}
	for _, opt := range opts {
		if err := opt(eb); err != nil {
			eb.err = err
			return eb
		}
	}
	return eb
}

// Build constructs the final Edge.
func (eb *EdgeBuilder) Build() (*models.Edge, error) {
	if eb.err != nil {
		return nil, eb.err
	}
	if eb.sourceID == "" || eb.targetID == "" {
		return nil, fmt.Errorf("edge requires a source and target node id")
	}
	return &models.Edge{
		ID:           eb.id,
		SourceID:     eb.sourceID,
		TargetID:     eb.targetID,
		SourceHandle: eb.sourceHandle,
	}, nil
}

// WithEdgeID overrides the auto-generated edge id.
func WithEdgeID(id string) EdgeOption {
	return func(eb *EdgeBuilder) error {
		if id == "" {
			return fmt.Errorf("edge id cannot be empty")
		}
		eb.id = id
		return nil
	}
}

// FromBranch names the switch statement id this edge belongs to — the
// edge's SourceHandle. Only meaningful when sourceID names a switchNode.
func FromBranch(handle string) EdgeOption {
	return func(eb *EdgeBuilder) error {
		if handle == "" {
			return fmt.Errorf("branch handle cannot be empty")
		}
		eb.sourceHandle = handle
		return nil
	}
}
