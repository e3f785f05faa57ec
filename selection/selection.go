// Package selection implements the canonical, comparable representation of
// a GraphQL selection set used for entity keys and requirements (spec.md
// §4.1), plus a per-subgraph memoizing resolver that parses a key/requires
// field-set string against a subgraph's type table.
package selection

import "sort"

// Node is either a Field or a Fragment selection, canonically sorted
// within its enclosing Selection (spec.md §3).
type Node struct {
	// Field is set when this node selects a field.
	Field *FieldNode
	// Fragment is set when this node is an inline fragment; spec.md's
	// Non-goals forbid fragments inside key/requires selections reaching
	// the resolver, but the type exists so a Selection can still describe
	// one if a future caller constructs it directly.
	Fragment *FragmentNode
}

// FieldNode selects one field, optionally recursing into a nested
// selection set.
type FieldNode struct {
	TypeName     string
	FieldName    string
	SelectionSet []Node
}

// FragmentNode narrows to a concrete type within a selection set.
type FragmentNode struct {
	TypeName     string
	SelectionSet []Node
}

// Selection is the canonical, comparable unit attached to entity keys and
// requirements.
type Selection struct {
	TypeName        string
	KeyFieldsString string
	SelectionSet    []Node
}

// Equal implements spec.md §3's Selection equality: typeName must match,
// and either the raw key strings match verbatim (fast path) or the
// canonically sorted selection sets are structurally equal.
func (s Selection) Equal(other Selection) bool {
	if s.TypeName != other.TypeName {
		return false
	}
	if s.KeyFieldsString == other.KeyFieldsString {
		return true
	}
	return nodesEqual(s.SelectionSet, other.SelectionSet)
}

func nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b Node) bool {
	if (a.Field == nil) != (b.Field == nil) {
		return false
	}
	if a.Field != nil {
		return a.Field.TypeName == b.Field.TypeName &&
			a.Field.FieldName == b.Field.FieldName &&
			nodesEqual(a.Field.SelectionSet, b.Field.SelectionSet)
	}
	if (a.Fragment == nil) != (b.Fragment == nil) {
		return false
	}
	if a.Fragment != nil {
		return a.Fragment.TypeName == b.Fragment.TypeName &&
			nodesEqual(a.Fragment.SelectionSet, b.Fragment.SelectionSet)
	}
	return true
}

// sortNodes applies the canonical sort from spec.md §4.1: fields before
// fragments; fields sorted by "<typeName>.<fieldName>"; fragments sorted
// by typeName. The sort is stable and applied recursively.
func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if (a.Field != nil) != (b.Field != nil) {
			return a.Field != nil // fields before fragments
		}
		if a.Field != nil {
			return a.Field.TypeName+"."+a.Field.FieldName < b.Field.TypeName+"."+b.Field.FieldName
		}
		return a.Fragment.TypeName < b.Fragment.TypeName
	})
	for _, n := range nodes {
		if n.Field != nil {
			sortNodes(n.Field.SelectionSet)
		}
		if n.Fragment != nil {
			sortNodes(n.Fragment.SelectionSet)
		}
	}
}

// FieldNames returns the top-level field names of a selection set, in
// their order within the set.
func FieldNames(nodes []Node) []string {
	var names []string
	for _, n := range nodes {
		if n.Field != nil {
			names = append(names, n.Field.FieldName)
		}
	}
	return names
}
