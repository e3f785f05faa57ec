// Package queryplan translates a walked OperationPath (and its recursively
// discovered requirement sub-paths) into the executable Fetch/Sequence/
// Parallel/Flatten tree described by spec.md §3 and §4.4.
package queryplan

import "github.com/opengraphfed/queryplanner/selection"

// Node is the closed tagged union over plan node kinds.
type Node interface {
	isPlanNode()
}

// Fetch asks one subgraph to resolve a selection set.
type Fetch struct {
	ServiceName    string
	Requires       *selection.Node // a Fragment, set only on entity fetches
	VariableUsages []string
	Operation      string
	OperationKind  string // "query" | "mutation" | "subscription"

	// EntityType is the inline fragment's type condition, set only when
	// this Fetch is an _entities lookup. The pretty-printer uses it to
	// render the "{ ... on T { ... } } =>" shorthand.
	EntityType string
}

func (*Fetch) isPlanNode() {}

// Sequence runs its nodes one after another, each depending on the result
// of the one before it.
type Sequence struct {
	Nodes []Node
}

func (*Sequence) isPlanNode() {}

// Parallel runs its nodes concurrently; nothing in this planner currently
// emits one (spec.md §4.4 leaves parallel grouping as an optimization),
// but the tree needs the variant to stay a faithful closed union.
type Parallel struct {
	Nodes []Node
}

func (*Parallel) isPlanNode() {}

// Flatten applies Node to every element reached by walking Path from the
// root response, with "@" marking a list expansion.
type Flatten struct {
	Path []string
	Node Node
}

func (*Flatten) isPlanNode() {}

// QueryPlan is the root of a synthesized plan.
type QueryPlan struct {
	Node Node
}
