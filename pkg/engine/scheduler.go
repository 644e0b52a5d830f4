package engine

import "github.com/smilemakc/mbflow/pkg/models"

// GuardSet maps a switch node id to the branch handle that must be the
// current choice on that switch for a guarded node to run. An alias, not
// a distinct named type, so pkg/engine's exported Guard accessor
// satisfies pkg/visualization's PlanView interface without that package
// importing pkg/engine.
type GuardSet = map[string]string

// findInputNode enforces invariant (ii): exactly one inputNode per document.
func findInputNode(doc *models.Document) (*models.Node, error) {
	var found *models.Node
	count := 0
	for _, n := range doc.Nodes {
		if n.Type == models.NodeKindInput {
			count++
			found = n
		}
	}
	if count != 1 {
		return nil, &models.CompileError{Reason: models.ReasonMissingInputNode, Err: models.ErrMissingInputNode}
	}
	return found, nil
}

// topologicalOrder returns non-output node ids in execution order using
// Kahn's algorithm, the flat sequential variant rather than a wave-parallel
// scheduler, since evaluation is single-threaded per plan. The traversal is
// seeded with the input node only; any non-output node it never reaches
// (a cycle, or a node with no path from the input) fails compilation with
// ReasonCyclicGraph. outputNodes are
// excluded from the returned order: they carry no compiler of their own,
// only output_sources membership (computed separately by
// deriveOutputMetadata).
func topologicalOrder(doc *models.Document) ([]string, error) {
	indegree := make(map[string]int, len(doc.Nodes))
	adjacency := make(map[string][]string, len(doc.Nodes))
	for _, n := range doc.Nodes {
		indegree[n.ID] = 0
	}
	for _, e := range doc.Edges {
		adjacency[e.SourceID] = append(adjacency[e.SourceID], e.TargetID)
		indegree[e.TargetID]++
	}

	var queue []string
	for _, n := range doc.Nodes {
		if n.Type == models.NodeKindInput && indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(doc.Nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, next := range adjacency[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	reached := make(map[string]bool, len(order))
	for _, id := range order {
		reached[id] = true
	}
	for _, n := range doc.Nodes {
		if !reached[n.ID] && n.Type != models.NodeKindOutput {
			return nil, &models.CompileError{Reason: models.ReasonCyclicGraph, Err: models.ErrCyclicGraph}
		}
	}

	scheduled := make([]string, 0, len(order))
	for _, id := range order {
		if node := doc.NodeByID(id); node != nil && node.Type != models.NodeKindOutput {
			scheduled = append(scheduled, id)
		}
	}
	return scheduled, nil
}

// deriveGuards computes the guard set each node must satisfy to run, via a
// depth-first walk from the input node. The guard recorded for a node is
// whichever path reaches it first; a node is never revisited once a guard
// has been assigned. Child edges are visited in document declaration order
// (EdgesFrom preserves it), so "first discovered" is a deterministic
// property of the document text, not of map iteration order.
//
// This intentionally does not compute guards as disjunctions across every
// reachable path: a node reachable through two distinct switch branches
// keeps only the first-discovered guard, and may run unexpectedly under
// the other branch. That limitation is preserved deliberately rather than
// silently fixed here.
func deriveGuards(doc *models.Document, inputID string) map[string]GuardSet {
	guards := map[string]GuardSet{inputID: {}}
	visited := map[string]bool{inputID: true}

	var visit func(nodeID string, guard GuardSet)
	visit = func(nodeID string, guard GuardSet) {
		source := doc.NodeByID(nodeID)
		for _, e := range doc.EdgesFrom(nodeID) {
			if visited[e.TargetID] {
				continue
			}
			visited[e.TargetID] = true

			next := guard
			if e.SourceHandle != "" && source != nil && source.Type == models.NodeKindSwitch {
				next = extendGuard(guard, nodeID, e.SourceHandle)
			}
			guards[e.TargetID] = next
			visit(e.TargetID, next)
		}
	}
	visit(inputID, GuardSet{})
	return guards
}

func extendGuard(base GuardSet, switchID, handle string) GuardSet {
	out := make(GuardSet, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[switchID] = handle
	return out
}

// deriveOutputMetadata computes output_sources (node ids with an edge
// reaching any outputNode) and switch_outputs (for a switch node among
// those sources, the set of sourceHandles whose edge reaches an
// outputNode).
func deriveOutputMetadata(doc *models.Document) (outputSources map[string]bool, switchOutputs map[string]map[string]bool) {
	outputSources = make(map[string]bool)
	switchOutputs = make(map[string]map[string]bool)

	for _, e := range doc.Edges {
		target := doc.NodeByID(e.TargetID)
		if target == nil || target.Type != models.NodeKindOutput {
			continue
		}
		outputSources[e.SourceID] = true

		source := doc.NodeByID(e.SourceID)
		if source == nil || source.Type != models.NodeKindSwitch || e.SourceHandle == "" {
			continue
		}
		set, ok := switchOutputs[e.SourceID]
		if !ok {
			set = make(map[string]bool)
			switchOutputs[e.SourceID] = set
		}
		set[e.SourceHandle] = true
	}
	return outputSources, switchOutputs
}
