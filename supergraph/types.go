// Package supergraph parses a composed federation supergraph SDL document
// and exposes the per-subgraph type tables the query graph builder needs.
//
// The planner itself never composes subgraph schemas into a supergraph;
// that step happens upstream (schema composition tooling) and is out of
// scope here. This package only reads the join-spec directives a
// composition tool already emitted.
package supergraph

import "sort"

// TypeKind mirrors the handful of GraphQL type kinds the planner cares
// about. Directive and interface-object bookkeeping is carried for every
// kind, but only Object participates in key-joining (see querygraph).
type TypeKind int

const (
	KindObject TypeKind = iota
	KindInterface
	KindEnum
	KindUnion
	KindInputObject
	KindScalar
)

func (k TypeKind) String() string {
	switch k {
	case KindObject:
		return "OBJECT"
	case KindInterface:
		return "INTERFACE"
	case KindEnum:
		return "ENUM"
	case KindUnion:
		return "UNION"
	case KindInputObject:
		return "INPUT_OBJECT"
	case KindScalar:
		return "SCALAR"
	default:
		return "UNKNOWN"
	}
}

// JoinType is the semantic content of one @join__type directive. A type
// definition may carry several, one per subgraph that owns or extends it.
type JoinType struct {
	Graph             string
	Key               *string // keyFieldsString; nil when the directive carries no key
	Extension         bool
	Resolvable        bool
	IsInterfaceObject bool
}

// JoinField is the semantic content of one @join__field directive.
type JoinField struct {
	// Graph is empty when the directive omits the graph argument, meaning
	// the field applies uniformly across every subgraph that @join__type
	// lists for the enclosing type.
	Graph          string
	Requires       *string
	Provides       *string
	Type           *string
	External       bool
	Override       *string
	UsedOverridden bool
}

// ObjectTypeField is one field of an ObjectType, annotated with the
// @join__field metadata that determined which subgraph(s) own it.
type ObjectTypeField struct {
	Name   string
	Type   string // named-type string, wrappers stripped
	IsList bool
	Join   JoinField
}

// ObjectType is a type as seen from one subgraph's vantage point: only the
// fields that subgraph can resolve, plus the full set of JoinType entries
// (so the builder can discover sibling subgraphs for key-joining).
type ObjectType struct {
	Name   string
	Kind   TypeKind
	Fields []ObjectTypeField
	Join   []JoinType
}

// IsEntity reports whether this type has at least one resolvable key,
// making it eligible for cross-subgraph entity jumps.
func (t *ObjectType) IsEntity() bool {
	for _, j := range t.Join {
		if j.Resolvable && j.Key != nil {
			return true
		}
	}
	return false
}

// KeysFor returns the resolvable key strings declared for this type in the
// named subgraph, in declaration order. A type may carry more than one key
// (e.g. `@key(fields: "id") @key(fields: "id pid")`).
func (t *ObjectType) KeysFor(graph string) []string {
	var keys []string
	for _, j := range t.Join {
		if j.Graph == graph && j.Resolvable && j.Key != nil {
			keys = append(keys, *j.Key)
		}
	}
	return keys
}

// Subgraph is one backend service's view of the supergraph: the types it
// can resolve fields on, and which of those are entities.
type Subgraph struct {
	GraphID     string
	Types       map[string]*ObjectType
	EntityTypes map[string]struct{}
}

// Supergraph maps graph id to that subgraph's type table.
type Supergraph map[string]*Subgraph

// GraphIDs returns the subgraph identifiers in sorted order, useful
// anywhere iteration order must be deterministic.
func (s Supergraph) GraphIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
