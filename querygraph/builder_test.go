package querygraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengraphfed/queryplanner/supergraph"
)

const twoSubgraphSDL = `
directive @join__type(graph: join__Graph!, key: String, extension: Boolean = false, resolvable: Boolean = true, isInterfaceObject: Boolean = false) repeatable on OBJECT | INTERFACE
directive @join__field(graph: join__Graph, requires: String, provides: String, type: String, external: Boolean = false, override: String, usedOverridden: Boolean = false) on FIELD_DEFINITION
enum join__Graph { A B }

type Query @join__type(graph: B) {
  users: [User] @join__field(graph: B)
}

type User
  @join__type(graph: A, key: "id")
  @join__type(graph: B, key: "id")
{
  id: ID!
  name: String @join__field(graph: B)
  age: Int @join__field(graph: A)
}
`

func mustParse(t *testing.T, sdl string) supergraph.Supergraph {
	t.Helper()
	sg, err := supergraph.Parse(sdl)
	require.NoError(t, err)
	return sg
}

func TestBuild_fieldMoveEdgeFromQueryToUser(t *testing.T) {
	sg := mustParse(t, twoSubgraphSDL)
	g, err := Build(sg)
	require.NoError(t, err)

	queryNodes := g.NodesForType("Query")
	require.Len(t, queryNodes, 1)
	require.Equal(t, "B", queryNodes[0].SubgraphID)

	edges := g.EdgesFrom(queryNodes[0])
	require.Len(t, edges, 1)
	assert.Equal(t, MoveField, edges[0].Move.Kind)
	assert.Equal(t, "users", edges[0].Move.FieldName)
	assert.True(t, edges[0].Move.IsList)
	assert.Equal(t, "B", edges[0].Tail.SubgraphID)
	assert.Equal(t, "User", edges[0].Tail.TypeName)
}

func TestBuild_entityEdgeJoinsBothDirections(t *testing.T) {
	sg := mustParse(t, twoSubgraphSDL)
	g, err := Build(sg)
	require.NoError(t, err)

	userNodes := g.NodesForType("User")
	require.Len(t, userNodes, 2)

	var bNode, aNode *Node
	for _, n := range userNodes {
		switch n.SubgraphID {
		case "A":
			aNode = n
		case "B":
			bNode = n
		}
	}
	require.NotNil(t, aNode)
	require.NotNil(t, bNode)

	var entityEdge *Edge
	for _, e := range g.EdgesFrom(bNode) {
		if e.Move.Kind == MoveEntity {
			entityEdge = e
		}
	}
	require.NotNil(t, entityEdge, "expected an entity jump from B's User to A's User")
	assert.Equal(t, aNode, entityEdge.Tail)
	require.NotNil(t, entityEdge.Requirement)
	assert.Equal(t, "User", entityEdge.Requirement.TypeName)
	assert.Equal(t, []string{"id"}, entityRequirementFieldNames(entityEdge))

	var reverseEdge *Edge
	for _, e := range g.EdgesFrom(aNode) {
		if e.Move.Kind == MoveEntity {
			reverseEdge = e
		}
	}
	require.NotNil(t, reverseEdge, "expected an entity jump from A's User to B's User")
	assert.Equal(t, bNode, reverseEdge.Tail)
	require.NotNil(t, reverseEdge.Requirement)
	assert.Equal(t, []string{"id"}, entityRequirementFieldNames(reverseEdge))
}

func entityRequirementFieldNames(e *Edge) []string {
	var names []string
	for _, n := range e.Requirement.SelectionSet {
		if n.Field != nil {
			names = append(names, n.Field.FieldName)
		}
	}
	return names
}
