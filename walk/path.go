// Package walk implements the path-finding / satisfiability walker:
// spec.md §4.3. Given a sequence of field steps, it explores direct and
// indirect (entity-jump) paths through a query graph, recursively
// verifying that every entity jump's requirement can itself be satisfied,
// and returns a cost-minimal OperationPath.
package walk

import (
	"github.com/opengraphfed/queryplanner/querygraph"
)

// FieldStep is one step in the field sequence being walked.
type FieldStep struct {
	Name string
}

// OperationPath is an immutable (copy-on-extend) walk through a Graph,
// together with, for every edge that carried a requirement, the resolver
// sub-paths that must execute before that edge is taken.
//
// Invariants (spec.md §3, §8): len(Edges) == len(RequiredPathsForEdges);
// RequiredPathsForEdges[i] is non-empty only when Edges[i] carried a
// requirement; Cost is the sum of every edge's base cost plus the cost of
// every attached requirement sub-path.
type OperationPath struct {
	RootNode              *querygraph.Node
	Edges                 []*querygraph.Edge
	RequiredPathsForEdges [][]*OperationPath
	Cost                  int
}

// Tail returns the node this path currently sits on.
func (p *OperationPath) Tail() *querygraph.Node {
	if len(p.Edges) == 0 {
		return p.RootNode
	}
	return p.Edges[len(p.Edges)-1].Tail
}

// hasEdge reports whether e already appears on this path (identity, not
// value, comparison — spec.md §8's No-revisit property).
func (p *OperationPath) hasEdge(e *querygraph.Edge) bool {
	for _, pe := range p.Edges {
		if pe == e {
			return true
		}
	}
	return false
}

// clone returns a copy of p sharing no mutable backing array with p, so
// that advancing one branch never perturbs a sibling branch explored from
// the same ancestor path.
func (p *OperationPath) clone() *OperationPath {
	edges := make([]*querygraph.Edge, len(p.Edges))
	copy(edges, p.Edges)

	reqs := make([][]*OperationPath, len(p.RequiredPathsForEdges))
	for i, r := range p.RequiredPathsForEdges {
		if r == nil {
			continue
		}
		rc := make([]*OperationPath, len(r))
		copy(rc, r)
		reqs[i] = rc
	}

	return &OperationPath{
		RootNode:              p.RootNode,
		Edges:                 edges,
		RequiredPathsForEdges: reqs,
		Cost:                  p.Cost,
	}
}

// advance returns a new path extending p by e, charging e's base cost.
func (p *OperationPath) advance(e *querygraph.Edge) *OperationPath {
	np := p.clone()
	np.Edges = append(np.Edges, e)
	np.RequiredPathsForEdges = append(np.RequiredPathsForEdges, nil)
	np.Cost += e.BaseCost()
	return np
}

// addRequiredPaths attaches the resolver sub-paths discovered for the most
// recently advanced edge, charging their cost onto this path (spec.md §9,
// Open Question 2: the over-counting here is intentional and preserved).
func (p *OperationPath) addRequiredPaths(paths []*OperationPath) *OperationPath {
	np := p.clone()
	if len(np.Edges) == 0 {
		return np
	}
	idx := len(np.Edges) - 1
	np.RequiredPathsForEdges[idx] = paths
	for _, rp := range paths {
		np.Cost += rp.Cost
	}
	return np
}
