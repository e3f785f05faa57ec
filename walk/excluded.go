package walk

import (
	"github.com/opengraphfed/queryplanner/querygraph"
	"github.com/opengraphfed/queryplanner/selection"
)

// Excluded tracks the context a recursive satisfiability call must not
// re-use: subgraphs already pinned by an outer context, requirements
// already being resolved (to avoid an edge satisfying itself), and edges
// already committed to. Every extension method returns a new value,
// keeping exclusion branch-local (spec.md §4.3.4, §9).
type Excluded struct {
	GraphIDs     map[string]bool
	Requirements []selection.Selection
	Edges        map[*querygraph.Edge]bool
}

func (ex Excluded) withGraph(id string) Excluded {
	graphIDs := make(map[string]bool, len(ex.GraphIDs)+1)
	for k, v := range ex.GraphIDs {
		graphIDs[k] = v
	}
	graphIDs[id] = true
	return Excluded{GraphIDs: graphIDs, Requirements: ex.Requirements, Edges: ex.Edges}
}

func (ex Excluded) withRequirement(sel selection.Selection) Excluded {
	reqs := make([]selection.Selection, len(ex.Requirements), len(ex.Requirements)+1)
	copy(reqs, ex.Requirements)
	reqs = append(reqs, sel)
	return Excluded{GraphIDs: ex.GraphIDs, Requirements: reqs, Edges: ex.Edges}
}

func (ex Excluded) withEdge(e *querygraph.Edge) Excluded {
	edges := make(map[*querygraph.Edge]bool, len(ex.Edges)+1)
	for k, v := range ex.Edges {
		edges[k] = v
	}
	edges[e] = true
	return Excluded{GraphIDs: ex.GraphIDs, Requirements: ex.Requirements, Edges: edges}
}

func (ex Excluded) hasGraph(id string) bool {
	return ex.GraphIDs[id]
}

func (ex Excluded) hasEdge(e *querygraph.Edge) bool {
	return ex.Edges[e]
}

func (ex Excluded) hasRequirement(sel selection.Selection) bool {
	for _, r := range ex.Requirements {
		if r.Equal(sel) {
			return true
		}
	}
	return false
}
