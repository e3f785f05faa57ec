package walk

import (
	"github.com/samsarahq/go/oops"

	"github.com/opengraphfed/queryplanner/querygraph"
	"github.com/opengraphfed/queryplanner/selection"
)

// moveRequirement is one unresolved node of an entity edge's requirement
// selection, paired with the candidate paths it must be resolved from
// (spec.md §4.3.4).
type moveRequirement struct {
	node  selection.Node
	paths []*OperationPath
}

// canSatisfyEdge checks whether e's requirement (if any) can be resolved
// from the current position, returning the resolver sub-paths that must
// execute before e is taken.
func (w *Walker) canSatisfyEdge(e *querygraph.Edge, path *OperationPath, excluded Excluded) (bool, []*OperationPath, error) {
	if e.Requirement == nil {
		return true, nil, nil
	}

	// The requirement walk must not trivially re-use the edge it is
	// trying to satisfy, nor hop back into subgraphs already pinned by
	// the outer context.
	excluded = excluded.withGraph(e.Tail.SubgraphID).withRequirement(*e.Requirement).withEdge(e)

	stack := make([]moveRequirement, 0, len(e.Requirement.SelectionSet))
	for _, node := range e.Requirement.SelectionSet {
		stack = append(stack, moveRequirement{node: node, paths: []*OperationPath{path.clone()}})
	}

	var discovered []*OperationPath

	for len(stack) > 0 {
		mr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if mr.node.Field == nil {
			return false, nil, oops.Errorf("unsupported construct: fragment in requirement on %s", e.Tail.TypeName)
		}

		survivors, err := w.validateFieldRequirement(mr, excluded)
		if err != nil {
			return false, nil, err
		}
		if len(survivors) == 0 {
			return false, nil, nil
		}

		if len(mr.node.Field.SelectionSet) == 0 {
			discovered = append(discovered, survivors...)
			continue
		}

		for _, child := range mr.node.Field.SelectionSet {
			childPaths := make([]*OperationPath, len(survivors))
			copy(childPaths, survivors)
			stack = append(stack, moveRequirement{node: child, paths: childPaths})
		}
	}

	return true, discovered, nil
}

// validateFieldRequirement tries to read mr.node's field from every
// candidate path, via both direct and indirect search, and reduces the
// survivors to one per terminal subgraph.
func (w *Walker) validateFieldRequirement(mr moveRequirement, excluded Excluded) ([]*OperationPath, error) {
	step := FieldStep{Name: mr.node.Field.FieldName}

	var survivors []*OperationPath
	for _, candidate := range mr.paths {
		direct, err := w.findDirectPaths(candidate, step, excluded)
		if err != nil {
			return nil, err
		}
		survivors = append(survivors, direct...)

		indirect, err := w.findIndirectPaths(candidate, step, excluded)
		if err != nil {
			return nil, err
		}
		survivors = append(survivors, indirect...)
	}

	return bestPerTailSubgraph(survivors), nil
}
