package queryplan

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengraphfed/queryplanner/querygraph"
	"github.com/opengraphfed/queryplanner/selection"
	"github.com/opengraphfed/queryplanner/supergraph"
	"github.com/opengraphfed/queryplanner/walk"
)

const s1SDL = `
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

func walkS1(t *testing.T) *walk.OperationPath {
	t.Helper()
	sg, err := supergraph.Parse(s1SDL)
	require.NoError(t, err)
	g, err := querygraph.Build(sg)
	require.NoError(t, err)
	w := walk.NewWalker(g)
	path, err := w.WalkQuery(walk.Query, []walk.FieldStep{{Name: "users"}, {Name: "age"}})
	require.NoError(t, err)
	require.NotNil(t, path)
	return path
}

func TestSynthesize_s1RootFetchSelectsTypenameAndKey(t *testing.T) {
	path := walkS1(t)

	plan, err := Synthesize("query", path)
	require.NoError(t, err)

	seq, ok := plan.Node.(*Sequence)
	require.True(t, ok, "expected a Sequence for a plan crossing subgraphs")
	require.Len(t, seq.Nodes, 2)

	root, ok := seq.Nodes[0].(*Fetch)
	require.True(t, ok)
	assert.Equal(t, "B", root.ServiceName)
	assert.Equal(t, "{ users { __typename id } }", root.Operation)

	flatten, ok := seq.Nodes[1].(*Flatten)
	require.True(t, ok)
	assert.Equal(t, []string{"users", "@"}, flatten.Path)

	entityFetch, ok := flatten.Node.(*Fetch)
	require.True(t, ok)
	assert.Equal(t, "A", entityFetch.ServiceName)
	assert.Equal(t, []string{"representations"}, entityFetch.VariableUsages)
	assert.Equal(t, "User", entityFetch.EntityType)
	require.NotNil(t, entityFetch.Requires)
	require.NotNil(t, entityFetch.Requires.Fragment)
	assert.Equal(t, "User", entityFetch.Requires.Fragment.TypeName)
	assert.Contains(t, entityFetch.Operation, "_entities(representations:$representations)")
	assert.Contains(t, entityFetch.Operation, "... on User{age}")
}

func TestPretty_s1MatchesExpectedShape(t *testing.T) {
	path := walkS1(t)
	plan, err := Synthesize("query", path)
	require.NoError(t, err)

	out := Pretty(plan)
	assert.Contains(t, out, `Fetch(service: "B") { { users { __typename id } } }`)
	assert.Contains(t, out, `Flatten(path: "users.@")`)
	assert.Contains(t, out, `Fetch(service: "A")`)
	assert.Contains(t, out, "{ ... on User { ... } } =>")
	assert.NotContains(t, out, "_entities", "entity-fetch boilerplate must be stripped from pretty output")
}

func TestSynthesize_isDeterministic(t *testing.T) {
	path := walkS1(t)

	first, err := Synthesize("query", path)
	require.NoError(t, err)
	second, err := Synthesize("query", path)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated Synthesize calls diverged (-first +second):\n%s", diff)
	}
	assert.Equal(t, Pretty(first), Pretty(second))
}

func TestSynthesize_s1MatchesExpectedPlanTree(t *testing.T) {
	path := walkS1(t)
	plan, err := Synthesize("query", path)
	require.NoError(t, err)

	want := &QueryPlan{
		Node: &Sequence{
			Nodes: []Node{
				&Fetch{
					ServiceName:   "B",
					Operation:     "{ users { __typename id } }",
					OperationKind: "query",
				},
				&Flatten{
					Path: []string{"users", "@"},
					Node: &Fetch{
						ServiceName:    "A",
						Requires:       &selection.Node{Fragment: &selection.FragmentNode{TypeName: "User", SelectionSet: []selection.Node{{Field: &selection.FieldNode{TypeName: "User", FieldName: "id"}}}}},
						VariableUsages: []string{"representations"},
						Operation:      `query($representations:[_Any!]!){_entities(representations:$representations){... on User{age}}}`,
						OperationKind:  "query",
						EntityType:     "User",
					},
				},
			},
		},
	}

	if diff := cmp.Diff(want, plan); diff != "" {
		t.Fatalf("synthesized plan tree mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_rejectsInvariantViolation(t *testing.T) {
	path := walkS1(t)
	path.RequiredPathsForEdges = path.RequiredPathsForEdges[:1]

	_, err := Synthesize("query", path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invariant violation"))
}
