package supergraph

import (
	"sort"

	"github.com/samsarahq/go/oops"
	"github.com/vektah/gqlparser/v2/ast"
)

// directivesNamed returns every directive in dirs named name, in document
// order. Federation's @join__type and @join__field are repeatable, so a
// single-result lookup isn't enough here.
func directivesNamed(dirs ast.DirectiveList, name string) []*ast.Directive {
	var out []*ast.Directive
	for _, d := range dirs {
		if d.Name == name {
			out = append(out, d)
		}
	}
	return out
}

// namedTypeName unwraps list/non-null markers and returns the underlying
// named type.
func namedTypeName(t *ast.Type) string {
	for t.Elem != nil {
		t = t.Elem
	}
	return t.NamedType
}

// isListType reports whether t is a list at any wrapper depth. gqlparser
// represents non-null as a bool flag rather than a separate wrapper node,
// so checking for a non-nil Elem at the top level already captures "list
// at any nullability depth" (spec.md §9, REDESIGN note 4).
func isListType(t *ast.Type) bool {
	return t != nil && t.Elem != nil
}

func isScalarName(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	default:
		return false
	}
}

func sortedFieldNames(fields map[string][]ObjectTypeField) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requiredEnumArg(dir *ast.Directive, name, typeName, directiveName string) (string, error) {
	arg := dir.Arguments.ForName(name)
	if arg == nil {
		return "", oops.Errorf("malformed supergraph: @%s on %q missing required argument %q", directiveName, typeName, name)
	}
	if arg.Value.Kind != ast.EnumValue {
		return "", oops.Errorf("malformed supergraph: @%s on %q argument %q must be an enum value", directiveName, typeName, name)
	}
	return arg.Value.Raw, nil
}

func optionalEnumArg(dir *ast.Directive, name, typeName, directiveName string) (string, error) {
	arg := dir.Arguments.ForName(name)
	if arg == nil {
		return "", nil
	}
	if arg.Value.Kind != ast.EnumValue {
		return "", oops.Errorf("malformed supergraph: @%s on %q argument %q must be an enum value", directiveName, typeName, name)
	}
	return arg.Value.Raw, nil
}

func optionalStringArg(dir *ast.Directive, name, typeName, directiveName string) (*string, error) {
	arg := dir.Arguments.ForName(name)
	if arg == nil {
		return nil, nil
	}
	if arg.Value.Kind != ast.StringValue {
		return nil, oops.Errorf("malformed supergraph: @%s on %q argument %q must be a string", directiveName, typeName, name)
	}
	v := arg.Value.Raw
	return &v, nil
}

func optionalBoolArg(dir *ast.Directive, name string, def bool, typeName, directiveName string) (bool, error) {
	arg := dir.Arguments.ForName(name)
	if arg == nil {
		return def, nil
	}
	if arg.Value.Kind != ast.BooleanValue {
		return false, oops.Errorf("malformed supergraph: @%s on %q argument %q must be a boolean", directiveName, typeName, name)
	}
	return arg.Value.Raw == "true", nil
}
