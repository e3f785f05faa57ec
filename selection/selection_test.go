package selection

import "testing"

func TestSelection_EqualIgnoresFieldOrder(t *testing.T) {
	a := Selection{
		TypeName: "Product",
		SelectionSet: []Node{
			{Field: &FieldNode{TypeName: "Product", FieldName: "id"}},
			{Field: &FieldNode{TypeName: "Product", FieldName: "pid"}},
		},
	}
	b := Selection{
		TypeName: "Product",
		SelectionSet: []Node{
			{Field: &FieldNode{TypeName: "Product", FieldName: "pid"}},
			{Field: &FieldNode{TypeName: "Product", FieldName: "id"}},
		},
	}
	sortNodes(a.SelectionSet)
	sortNodes(b.SelectionSet)

	if !a.Equal(b) {
		t.Fatalf("expected permuted field order to compare equal")
	}
}

func TestSelection_EqualDiffersOnTypeName(t *testing.T) {
	a := Selection{TypeName: "Product", KeyFieldsString: "id"}
	b := Selection{TypeName: "User", KeyFieldsString: "id"}
	if a.Equal(b) {
		t.Fatalf("expected different type names to compare unequal")
	}
}

func TestSelection_EqualVerbatimKeyStringFastPath(t *testing.T) {
	a := Selection{TypeName: "Product", KeyFieldsString: "id pid"}
	b := Selection{TypeName: "Product", KeyFieldsString: "id pid"}
	if !a.Equal(b) {
		t.Fatalf("expected identical key strings to short-circuit to equal")
	}
}

func TestSortNodes_fieldsBeforeFragmentsRecursively(t *testing.T) {
	nodes := []Node{
		{Fragment: &FragmentNode{TypeName: "Zeta"}},
		{Field: &FieldNode{TypeName: "Product", FieldName: "category", SelectionSet: []Node{
			{Field: &FieldNode{TypeName: "Category", FieldName: "tag"}},
			{Field: &FieldNode{TypeName: "Category", FieldName: "id"}},
		}}},
		{Field: &FieldNode{TypeName: "Product", FieldName: "id"}},
	}
	sortNodes(nodes)

	if nodes[0].Field == nil || nodes[0].Field.FieldName != "category" {
		t.Fatalf("expected category field first, got %+v", nodes[0])
	}
	if nodes[1].Field == nil || nodes[1].Field.FieldName != "id" {
		t.Fatalf("expected id field second, got %+v", nodes[1])
	}
	nested := nodes[0].Field.SelectionSet
	if nested[0].Field.FieldName != "id" || nested[1].Field.FieldName != "tag" {
		t.Fatalf("expected nested fields sorted id before tag, got %+v", nested)
	}
	if nodes[2].Fragment == nil {
		t.Fatalf("expected fragment last, got %+v", nodes[2])
	}
}
