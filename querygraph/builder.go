package querygraph

import (
	"sort"

	"github.com/samsarahq/go/oops"

	"github.com/opengraphfed/queryplanner/selection"
	"github.com/opengraphfed/queryplanner/supergraph"
)

const (
	rootQuery        = "Query"
	rootMutation     = "Mutation"
	rootSubscription = "Subscription"
)

// Build flattens a Supergraph into one merged Graph, per spec.md §4.2:
// one per-subgraph traversal from its root operation types and entity
// types, merged into a single node/edge space, then joined across
// subgraphs by resolvable keys.
func Build(sg supergraph.Supergraph) (*Graph, error) {
	b := &builder{
		supergraph: sg,
		resolvers:  make(map[string]*selection.Resolver, len(sg)),
		visited:    make(map[nodeKey]*Node),
		graph:      newGraph("supergraph"),
	}
	for _, id := range sg.GraphIDs() {
		b.resolvers[id] = selection.NewResolver(sg[id])
	}

	for _, graphID := range sg.GraphIDs() {
		if err := b.addSubgraph(sg[graphID]); err != nil {
			return nil, err
		}
	}

	if err := b.joinByKeys(); err != nil {
		return nil, err
	}

	return b.graph, nil
}

type nodeKey struct {
	subgraphID string
	typeName   string
}

type builder struct {
	supergraph supergraph.Supergraph
	resolvers  map[string]*selection.Resolver
	visited    map[nodeKey]*Node
	graph      *Graph
}

// addSubgraph walks one subgraph's reachable types, starting from its root
// operation types and every entity type, creating a Node per object type
// and a MoveField Edge per non-external field.
func (b *builder) addSubgraph(sg *supergraph.Subgraph) error {
	var roots []string
	for _, name := range []string{rootQuery, rootMutation, rootSubscription} {
		if _, ok := sg.Types[name]; ok {
			roots = append(roots, name)
		}
	}

	entityNames := make([]string, 0, len(sg.EntityTypes))
	for name := range sg.EntityTypes {
		entityNames = append(entityNames, name)
	}
	sort.Strings(entityNames)

	for _, name := range append(roots, entityNames...) {
		if _, err := b.visitType(sg, name); err != nil {
			return err
		}
	}
	return nil
}

// visitType returns the Node for (sg, typeName), creating it (and
// recursively its field edges) on first visit.
func (b *builder) visitType(sg *supergraph.Subgraph, typeName string) (*Node, error) {
	key := nodeKey{subgraphID: sg.GraphID, typeName: typeName}
	if n, ok := b.visited[key]; ok {
		return n, nil
	}

	typ, ok := sg.Types[typeName]
	if !ok {
		// The type exists in the supergraph but this subgraph doesn't
		// host it (e.g. it's only reachable through another subgraph's
		// field). Scalars also land here.
		kind := supergraph.KindScalar
		node := b.graph.addNode(sg.GraphID, typeName, kind)
		b.visited[key] = node
		return node, nil
	}

	node := b.graph.addNode(sg.GraphID, typeName, typ.Kind)
	b.visited[key] = node

	if typ.Kind != supergraph.KindObject {
		// Interfaces/unions/enums/input objects/scalars are leaves for
		// the purposes of field-move traversal; abstract moves beyond
		// structural recognition are out of scope (spec.md §1).
		return node, nil
	}

	for _, field := range typ.Fields {
		if field.Join.External {
			continue
		}

		tail, err := b.visitType(sg, field.Type)
		if err != nil {
			return nil, oops.Wrapf(err, "building field %s.%s", typeName, field.Name)
		}

		b.graph.addEdge(node, tail, Move{
			Kind:      MoveField,
			FieldName: field.Name,
			IsList:    field.IsList,
		}, nil)
	}

	return node, nil
}

// joinByKeys implements spec.md §4.2 step 3: for every resolvable key a
// subgraph declares on an object type, add an entity edge from every other
// subgraph hosting that type back to the key's owner.
//
// Only Object types participate (spec.md §9, Open Question 3): interface
// and union keys are silently skipped until abstract-move machinery
// exists.
func (b *builder) joinByKeys() error {
	typeNames := make(map[string]struct{})
	for _, graphID := range b.supergraph.GraphIDs() {
		for name, typ := range b.supergraph[graphID].Types {
			if typ.Kind == supergraph.KindObject {
				typeNames[name] = struct{}{}
			}
		}
	}

	sortedNames := make([]string, 0, len(typeNames))
	for name := range typeNames {
		sortedNames = append(sortedNames, name)
	}
	sort.Strings(sortedNames)

	for _, typeName := range sortedNames {
		hosts := b.hostsOf(typeName)
		for _, target := range hosts {
			targetType := b.supergraph[target].Types[typeName]
			keys := targetType.KeysFor(target)
			if len(keys) == 0 {
				continue
			}

			for _, source := range hosts {
				if source == target {
					continue
				}
				for _, key := range keys {
					sel, err := b.resolvers[target].Resolve(typeName, key)
					if err != nil {
						return oops.Wrapf(err, "resolving key %q for %s/%s", key, typeName, target)
					}

					head := b.visited[nodeKey{subgraphID: source, typeName: typeName}]
					tail := b.visited[nodeKey{subgraphID: target, typeName: typeName}]
					if head == nil || tail == nil {
						continue
					}

					b.graph.addEdge(head, tail, Move{Kind: MoveEntity}, &sel)
				}
			}
		}
	}

	return nil
}

// hostsOf returns every subgraph id hosting typeName, sorted, restricted
// to subgraphs this builder actually created a node for.
func (b *builder) hostsOf(typeName string) []string {
	var hosts []string
	for _, graphID := range b.supergraph.GraphIDs() {
		if _, ok := b.supergraph[graphID].Types[typeName]; ok {
			if _, visited := b.visited[nodeKey{subgraphID: graphID, typeName: typeName}]; visited {
				hosts = append(hosts, graphID)
			}
		}
	}
	return hosts
}
