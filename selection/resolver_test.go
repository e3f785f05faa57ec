package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengraphfed/queryplanner/supergraph"
)

func productSubgraph() *supergraph.Subgraph {
	return &supergraph.Subgraph{
		GraphID: "products",
		Types: map[string]*supergraph.ObjectType{
			"Product": {
				Name: "Product",
				Kind: supergraph.KindObject,
				Fields: []supergraph.ObjectTypeField{
					{Name: "id", Type: "ID"},
					{Name: "pid", Type: "ID"},
					{Name: "category", Type: "Category"},
				},
			},
			"Category": {
				Name: "Category",
				Kind: supergraph.KindObject,
				Fields: []supergraph.ObjectTypeField{
					{Name: "id", Type: "ID"},
					{Name: "tag", Type: "String"},
				},
			},
		},
	}
}

func TestResolver_ResolveNestedKeyFields(t *testing.T) {
	r := NewResolver(productSubgraph())

	sel, err := r.Resolve("Product", "id pid category { id tag }")
	require.NoError(t, err)

	assert.Equal(t, "Product", sel.TypeName)
	names := FieldNames(sel.SelectionSet)
	assert.Equal(t, []string{"category", "id", "pid"}, names)
}

func TestResolver_ResolveIsMemoized(t *testing.T) {
	r := NewResolver(productSubgraph())

	first, err := r.Resolve("Product", "id")
	require.NoError(t, err)
	second, err := r.Resolve("Product", "id")
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Len(t, r.memo, 1)
}

func TestResolver_RejectsUnknownField(t *testing.T) {
	r := NewResolver(productSubgraph())

	_, err := r.Resolve("Product", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestResolver_RejectsFragmentInSelection(t *testing.T) {
	r := NewResolver(productSubgraph())

	_, err := r.Resolve("Product", "... on Product { id }")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported construct")
}
