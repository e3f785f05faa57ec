package queryplan

import (
	"github.com/samsarahq/go/oops"

	"github.com/opengraphfed/queryplanner/querygraph"
	"github.com/opengraphfed/queryplanner/selection"
	"github.com/opengraphfed/queryplanner/walk"
)

// segment is a maximal run of consecutive FieldMove edges executed against
// a single subgraph, as produced by splitting an OperationPath at every
// EntityMove edge (spec.md §4.4 step 1).
type segment struct {
	graphID string
	edges   []*querygraph.Edge
}

// Synthesize turns a terminal OperationPath into an executable plan
// (spec.md §4.4). operationKind is "query", "mutation", or "subscription".
func Synthesize(operationKind string, path *walk.OperationPath) (*QueryPlan, error) {
	if path == nil {
		return nil, oops.Errorf("cannot synthesize a plan from a nil path")
	}
	if len(path.Edges) != len(path.RequiredPathsForEdges) {
		return nil, oops.Errorf("invariant violation: path has %d edges but %d requirement slots",
			len(path.Edges), len(path.RequiredPathsForEdges))
	}
	if len(path.Edges) == 0 {
		return nil, oops.Errorf("cannot synthesize a plan from an empty path")
	}

	segments, entityEdges := splitSegments(path)

	var nodes []Node

	firstReq := requirementOf(entityEdges, 0)
	nodes = append(nodes, &Fetch{
		ServiceName:   segments[0].graphID,
		Operation:     rootOperationText(operationKind, segments[0].edges, firstReq),
		OperationKind: operationKindOrDefault(operationKind),
	})

	fieldPath := fieldPathThrough(segments[0].edges)

	for i, entityEdge := range entityEdges {
		targetSeg := segments[i+1]
		if len(targetSeg.edges) == 0 {
			return nil, oops.Errorf("missing target field downstream of entity move into %s", targetSeg.graphID)
		}

		nextReq := requirementOf(entityEdges, i+1)

		requiresNode := selection.Node{Fragment: &selection.FragmentNode{
			TypeName:     entityEdge.Head.TypeName,
			SelectionSet: entityEdge.Requirement.SelectionSet,
		}}

		inner := &Fetch{
			ServiceName:    targetSeg.graphID,
			Requires:       &requiresNode,
			VariableUsages: []string{"representations"},
			Operation:      entityOperationText(entityEdge.Head.TypeName, targetSeg.edges, nextReq),
			OperationKind:  "query",
			EntityType:     entityEdge.Head.TypeName,
		}

		nodes = append(nodes, &Flatten{
			Path: append([]string{}, fieldPath...),
			Node: inner,
		})

		fieldPath = append(fieldPath, fieldPathThrough(targetSeg.edges)...)
	}

	if len(nodes) == 1 {
		return &QueryPlan{Node: nodes[0]}, nil
	}
	return &QueryPlan{Node: &Sequence{Nodes: nodes}}, nil
}

// splitSegments groups path's edges into per-subgraph runs, returning the
// runs and the EntityMove edges that separate them (len(entityEdges) ==
// len(segments)-1).
func splitSegments(path *walk.OperationPath) ([]segment, []*querygraph.Edge) {
	segments := []segment{{graphID: path.RootNode.SubgraphID}}
	var entityEdges []*querygraph.Edge

	for _, e := range path.Edges {
		if e.Move.Kind == querygraph.MoveEntity {
			entityEdges = append(entityEdges, e)
			segments = append(segments, segment{graphID: e.Tail.SubgraphID})
			continue
		}
		cur := &segments[len(segments)-1]
		cur.edges = append(cur.edges, e)
	}

	return segments, entityEdges
}

// fieldPathThrough renders edges as Flatten path components: one element
// per FieldMove name, with "@" appended after any field returning a list.
func fieldPathThrough(edges []*querygraph.Edge) []string {
	var out []string
	for _, e := range edges {
		out = append(out, e.Move.FieldName)
		if e.Move.IsList {
			out = append(out, "@")
		}
	}
	return out
}

// requirementOf returns the Requirement of entityEdges[i], or nil if i is
// out of range (there is no further entity jump after this segment).
func requirementOf(entityEdges []*querygraph.Edge, i int) *selection.Selection {
	if i < 0 || i >= len(entityEdges) {
		return nil
	}
	return entityEdges[i].Requirement
}

func operationKindOrDefault(kind string) string {
	if kind == "" {
		return "query"
	}
	return kind
}
