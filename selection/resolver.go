package selection

import (
	"sync"

	"github.com/samsarahq/go/oops"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/opengraphfed/queryplanner/supergraph"
)

// Resolver memoizes (typeName, keyFieldsString) -> Selection for one
// subgraph. Its memo is scoped to the Resolver instance and lives and dies
// with it (spec.md §5).
type Resolver struct {
	subgraph *supergraph.Subgraph

	mu   sync.RWMutex
	memo map[memoKey]Selection
}

type memoKey struct {
	typeName        string
	keyFieldsString string
}

// NewResolver returns a resolver for one subgraph's type table.
func NewResolver(subgraph *supergraph.Subgraph) *Resolver {
	return &Resolver{
		subgraph: subgraph,
		memo:     make(map[memoKey]Selection),
	}
}

// Resolve parses keyFieldsString as a GraphQL selection set scoped to
// typeName, validates each field against the subgraph's type table, and
// returns the canonical, memoized Selection.
//
// Fragment spreads and inline fragments inside the selection are
// unsupported (spec.md §4.1, §7: "Unsupported construct").
func (r *Resolver) Resolve(typeName, keyFieldsString string) (Selection, error) {
	key := memoKey{typeName: typeName, keyFieldsString: keyFieldsString}

	r.mu.RLock()
	if sel, ok := r.memo[key]; ok {
		r.mu.RUnlock()
		return sel, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if sel, ok := r.memo[key]; ok {
		return sel, nil
	}

	set, err := r.resolveSelectionSet(typeName, keyFieldsString)
	if err != nil {
		return Selection{}, err
	}
	sortNodes(set)

	sel := Selection{
		TypeName:        typeName,
		KeyFieldsString: keyFieldsString,
		SelectionSet:    set,
	}
	r.memo[key] = sel
	return sel, nil
}

// resolveSelectionSet parses the raw field-set text and recursively
// resolves it against typeName's declared fields.
func (r *Resolver) resolveSelectionSet(typeName, fieldsString string) ([]Node, error) {
	doc, err := parser.ParseQuery(&ast.Source{
		Name:  "fieldset",
		Input: "{ " + fieldsString + " }",
	})
	if err != nil {
		return nil, oops.Wrapf(err, "parsing key/requires selection %q on %s", fieldsString, typeName)
	}
	if len(doc.Operations) != 1 {
		return nil, oops.Errorf("malformed key/requires selection %q on %s", fieldsString, typeName)
	}

	return r.resolveAstSelectionSet(typeName, doc.Operations[0].SelectionSet)
}

func (r *Resolver) resolveAstSelectionSet(typeName string, set ast.SelectionSet) ([]Node, error) {
	typ, ok := r.subgraph.Types[typeName]
	if !ok {
		return nil, oops.Errorf("unsupported construct: type %s not known to subgraph %s", typeName, r.subgraph.GraphID)
	}

	fieldsByName := make(map[string]*supergraph.ObjectTypeField, len(typ.Fields))
	for i := range typ.Fields {
		f := &typ.Fields[i]
		fieldsByName[f.Name] = f
	}

	var nodes []Node
	for _, sel := range set {
		field, ok := sel.(*ast.Field)
		if !ok {
			// *ast.InlineFragment and *ast.FragmentSpread land here.
			return nil, oops.Errorf("unsupported construct: fragment in key/requires selection on %s", typeName)
		}

		declared, ok := fieldsByName[field.Name]
		if !ok {
			return nil, oops.Errorf("malformed supergraph: key/requires selection references unknown field %s.%s", typeName, field.Name)
		}

		var nested []Node
		if len(field.SelectionSet) > 0 {
			var err error
			nested, err = r.resolveAstSelectionSet(declared.Type, field.SelectionSet)
			if err != nil {
				return nil, err
			}
		}

		nodes = append(nodes, Node{Field: &FieldNode{
			TypeName:     typeName,
			FieldName:    field.Name,
			SelectionSet: nested,
		}})
	}

	return nodes, nil
}
