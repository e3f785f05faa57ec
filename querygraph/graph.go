// Package querygraph flattens a multi-subgraph supergraph into a single
// directed graph of (type, subgraph) nodes and typed move edges (spec.md
// §3, §4.2).
package querygraph

import (
	"github.com/opengraphfed/queryplanner/selection"
	"github.com/opengraphfed/queryplanner/supergraph"
)

// Node is one (type, subgraph) pair. Identity is by Index; the builder
// creates at most one Node per TypeName/SubgraphID pair.
type Node struct {
	Index      int
	SubgraphID string
	TypeName   string
	TypeKind   supergraph.TypeKind
}

// MoveKind discriminates the closed Move variant (spec.md §3).
type MoveKind int

const (
	MoveField MoveKind = iota
	MoveEntity
	MoveAbstract
	MoveInterfaceObject
)

// Move is a tagged union over the four edge kinds the planner knows about.
// Exactly the fields relevant to Kind are populated.
type Move struct {
	Kind MoveKind

	// MoveField
	FieldName string
	IsList    bool

	// MoveAbstract / MoveInterfaceObject
	FromType string
	FromKind supergraph.TypeKind
	ToType   string
	ToKind   supergraph.TypeKind
}

func (m Move) String() string {
	switch m.Kind {
	case MoveField:
		return "field:" + m.FieldName
	case MoveEntity:
		return "entity"
	case MoveAbstract:
		return "abstract:" + m.FromType + "->" + m.ToType
	case MoveInterfaceObject:
		return "interfaceObject:" + m.FromType + "->" + m.ToType
	default:
		return "unknown"
	}
}

// Edge connects Head to Tail via Move. Requirement is non-nil only for
// MoveEntity edges: the selection that must be resolvable at Head before
// the jump may be taken.
type Edge struct {
	Head        *Node
	Tail        *Node
	Move        Move
	Requirement *selection.Selection
}

// BaseCost is the per-edge cost spec.md §4.3.5 assigns before any
// requirement sub-paths are added: a direct field traversal is cheap,
// every other move (an inter-subgraph hop) is expensive.
func (e *Edge) BaseCost() int {
	if e.Move.Kind == MoveField {
		return 1
	}
	return 10
}

// Graph is the merged query graph for a whole supergraph: immutable once
// built (spec.md §3's Lifecycle/Ownership notes), safe to share across
// concurrent planning calls.
type Graph struct {
	ID    string
	Nodes []*Node
	Edges []*Edge

	edgesByHead map[int][]*Edge
	edgesByTail map[int][]*Edge
	nodesByType map[string][]*Node
}

// NodesForType returns every node (across every subgraph) for typeName, in
// the order they were added.
func (g *Graph) NodesForType(typeName string) []*Node {
	return g.nodesByType[typeName]
}

// EdgesFrom returns the outgoing edges of node, in the order they were
// added.
func (g *Graph) EdgesFrom(node *Node) []*Edge {
	return g.edgesByHead[node.Index]
}

// EdgesTo returns the incoming edges of node.
func (g *Graph) EdgesTo(node *Node) []*Edge {
	return g.edgesByTail[node.Index]
}

func newGraph(id string) *Graph {
	return &Graph{
		ID:          id,
		edgesByHead: make(map[int][]*Edge),
		edgesByTail: make(map[int][]*Edge),
		nodesByType: make(map[string][]*Node),
	}
}

func (g *Graph) addNode(subgraphID, typeName string, kind supergraph.TypeKind) *Node {
	n := &Node{
		Index:      len(g.Nodes),
		SubgraphID: subgraphID,
		TypeName:   typeName,
		TypeKind:   kind,
	}
	g.Nodes = append(g.Nodes, n)
	g.nodesByType[typeName] = append(g.nodesByType[typeName], n)
	return n
}

func (g *Graph) addEdge(head, tail *Node, move Move, requirement *selection.Selection) *Edge {
	e := &Edge{Head: head, Tail: tail, Move: move, Requirement: requirement}
	g.Edges = append(g.Edges, e)
	g.edgesByHead[head.Index] = append(g.edgesByHead[head.Index], e)
	g.edgesByTail[tail.Index] = append(g.edgesByTail[tail.Index], e)
	return e
}
