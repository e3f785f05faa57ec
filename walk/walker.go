package walk

import (
	"github.com/samsarahq/go/oops"

	"github.com/opengraphfed/queryplanner/querygraph"
	"github.com/opengraphfed/queryplanner/selection"
)

// OperationType selects which root type a walk starts from.
type OperationType int

const (
	Query OperationType = iota
	Mutation
	Subscription
)

func (t OperationType) rootTypeName() string {
	switch t {
	case Mutation:
		return "Mutation"
	case Subscription:
		return "Subscription"
	default:
		return "Query"
	}
}

// Walker finds cost-minimal OperationPaths through a single, immutable
// Graph. A Walker (and the Graph it wraps) is safe for concurrent use
// (spec.md §5): WalkQuery has no interior mutable state.
type Walker struct {
	graph *querygraph.Graph
}

// NewWalker wraps a built query graph for path-finding.
func NewWalker(graph *querygraph.Graph) *Walker {
	return &Walker{graph: graph}
}

// WalkQuery returns the minimum-cost path realizing steps from
// operationType's root, or nil if no such path exists (spec.md §4.3.1).
func (w *Walker) WalkQuery(operationType OperationType, steps []FieldStep) (*OperationPath, error) {
	rootTypeName := operationType.rootTypeName()
	rootNodes := w.graph.NodesForType(rootTypeName)
	if len(rootNodes) == 0 {
		return nil, oops.Errorf("no root type %s in query graph", rootTypeName)
	}

	paths := make([]*OperationPath, 0, len(rootNodes))
	for _, n := range rootNodes {
		paths = append(paths, &OperationPath{RootNode: n})
	}

	for _, step := range steps {
		var next []*OperationPath
		for _, p := range paths {
			direct, err := w.findDirectPaths(p, step, Excluded{})
			if err != nil {
				return nil, err
			}
			next = append(next, direct...)

			indirect, err := w.findIndirectPaths(p, step, Excluded{})
			if err != nil {
				return nil, err
			}
			next = append(next, indirect...)
		}

		next = bestPerTailSubgraph(next)
		if len(next) == 0 {
			return nil, nil
		}
		paths = next
	}

	return minCost(paths), nil
}

// findDirectPaths expands path by every outgoing field-move edge matching
// step, skipping edges already on the path (spec.md §4.3.2).
func (w *Walker) findDirectPaths(path *OperationPath, step FieldStep, excluded Excluded) ([]*OperationPath, error) {
	var out []*OperationPath
	for _, e := range w.graph.EdgesFrom(path.Tail()) {
		if e.Move.Kind != querygraph.MoveField || e.Move.FieldName != step.Name {
			continue
		}
		if path.hasEdge(e) || excluded.hasEdge(e) {
			continue
		}

		ok, subPaths, err := w.canSatisfyEdge(e, path, excluded)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		out = append(out, path.advance(e).addRequiredPaths(subPaths))
	}
	return out, nil
}

// frontierEntry is one unit of work in findIndirectPaths's LIFO search.
type frontierEntry struct {
	visitedGraphs       map[string]bool
	visitedRequirements []selection.Selection
	currentPath         *OperationPath
}

// findIndirectPaths explores entity-move edges only, looking for a
// sequence of subgraph hops that lands somewhere step can be taken
// directly (spec.md §4.3.3).
func (w *Walker) findIndirectPaths(path *OperationPath, step FieldStep, excluded Excluded) ([]*OperationPath, error) {
	sourceSubgraph := path.Tail().SubgraphID

	stack := []frontierEntry{{
		visitedGraphs: map[string]bool{sourceSubgraph: true},
		currentPath:   path,
	}}

	var results []*OperationPath

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, e := range w.graph.EdgesFrom(cur.currentPath.Tail()) {
			// Rule 1: don't revisit a subgraph on this branch, and don't
			// hop into a subgraph already pinned by an outer requirement
			// context.
			if cur.visitedGraphs[e.Tail.SubgraphID] || excluded.hasGraph(e.Tail.SubgraphID) {
				continue
			}
			// Rule 2: never hop back to where we started.
			if e.Tail.SubgraphID == sourceSubgraph {
				continue
			}
			// Rule 3: entity moves only.
			if e.Move.Kind != querygraph.MoveEntity {
				continue
			}
			if excluded.hasEdge(e) {
				continue
			}
			if e.Requirement != nil && excluded.hasRequirement(*e.Requirement) {
				continue
			}
			// Rule 4: a cheaper edge with this requirement exists on
			// some other branch.
			if e.Requirement != nil && requirementSeen(cur.visitedRequirements, *e.Requirement) {
				continue
			}

			// Rule 5: the jump's requirement must be resolvable here.
			ok, subPaths, err := w.canSatisfyEdge(e, cur.currentPath, excluded)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			newPath := cur.currentPath.advance(e).addRequiredPaths(subPaths)

			direct, err := w.findDirectPaths(newPath, step, excluded)
			if err != nil {
				return nil, err
			}
			if len(direct) > 0 {
				results = append(results, direct...)
				continue
			}

			nextVisitedGraphs := make(map[string]bool, len(cur.visitedGraphs)+1)
			for k, v := range cur.visitedGraphs {
				nextVisitedGraphs[k] = v
			}
			nextVisitedGraphs[e.Tail.SubgraphID] = true

			nextVisitedRequirements := cur.visitedRequirements
			if e.Requirement != nil {
				nextVisitedRequirements = append(append([]selection.Selection{}, cur.visitedRequirements...), *e.Requirement)
			}

			stack = append(stack, frontierEntry{
				visitedGraphs:       nextVisitedGraphs,
				visitedRequirements: nextVisitedRequirements,
				currentPath:         newPath,
			})
		}
	}

	return bestPerTailSubgraph(results), nil
}

func requirementSeen(seen []selection.Selection, sel selection.Selection) bool {
	for _, s := range seen {
		if s.Equal(sel) {
			return true
		}
	}
	return false
}
