package supergraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const s1SDL = `
directive @join__type(graph: join__Graph!, key: String, extension: Boolean = false, resolvable: Boolean = true, isInterfaceObject: Boolean = false) repeatable on OBJECT | INTERFACE
directive @join__field(graph: join__Graph, requires: String, provides: String, type: String, external: Boolean = false, override: String, usedOverridden: Boolean = false) on FIELD_DEFINITION
enum join__Graph {
  A
  B
}

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

func TestParse_buildsPerSubgraphTypeTables(t *testing.T) {
	sg, err := Parse(s1SDL)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"A", "B"}, sg.GraphIDs())

	userA := sg["A"].Types["User"]
	require.NotNil(t, userA)
	assert.True(t, userA.IsEntity())
	assert.Equal(t, []string{"id"}, userA.KeysFor("A"))

	var fieldNamesA []string
	for _, f := range userA.Fields {
		fieldNamesA = append(fieldNamesA, f.Name)
	}
	assert.ElementsMatch(t, []string{"id", "age"}, fieldNamesA)

	userB := sg["B"].Types["User"]
	require.NotNil(t, userB)
	var fieldNamesB []string
	for _, f := range userB.Fields {
		fieldNamesB = append(fieldNamesB, f.Name)
	}
	assert.ElementsMatch(t, []string{"id", "name"}, fieldNamesB)

	queryB := sg["B"].Types["Query"]
	require.NotNil(t, queryB)
	require.Len(t, queryB.Fields, 1)
	assert.True(t, queryB.Fields[0].IsList)
}

func TestParse_missingJoinTypeIsFatal(t *testing.T) {
	_, err := Parse(`
type Query { ping: String }
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no @join__type directive")
}

func TestParse_duplicateNodeInOneSubgraphIsFatal(t *testing.T) {
	_, err := Parse(`
type Query @join__type(graph: A) @join__type(graph: A) {
  ping: String
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node")
}

func TestParse_undefinedFieldTypeIsFatal(t *testing.T) {
	_, err := Parse(`
type Query @join__type(graph: A) {
  widget: Widget
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined type")
}

func TestParse_malformedDirectiveArgumentKindIsFatal(t *testing.T) {
	_, err := Parse(`
type Query @join__type(graph: "A") {
  ping: String
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an enum value")
}

func TestParse_externalFieldExcludedFromSubgraphOwnership(t *testing.T) {
	sdl := `
type Query @join__type(graph: A) {
  ping: String
}
type User @join__type(graph: A, key: "id") @join__type(graph: B, key: "id") {
  id: ID!
  name: String @join__field(graph: A, external: true)
}
`
	sg, err := Parse(sdl)
	require.NoError(t, err)

	userA := sg["A"].Types["User"]
	for _, f := range userA.Fields {
		assert.NotEqual(t, "name", f.Name, "external field must not be owned by A")
	}
}
