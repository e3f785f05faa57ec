package supergraph

import (
	"github.com/samsarahq/go/oops"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const (
	directiveJoinType        = "join__type"
	directiveJoinField       = "join__field"
	directiveJoinImplements  = "join__implements"
	directiveJoinUnionMember = "join__unionMember"
	directiveJoinEnumValue   = "join__enumValue"

	argGraph             = "graph"
	argKey               = "key"
	argExtension         = "extension"
	argResolvable        = "resolvable"
	argIsInterfaceObject = "isInterfaceObject"
	argRequires          = "requires"
	argProvides          = "provides"
	argType              = "type"
	argExternal          = "external"
	argOverride          = "override"
	argUsedOverridden    = "usedOverridden"
	argInterface         = "interface"
	argMember            = "member"
)

// validateAncillaryJoinDirectives checks the argument kinds of
// @join__implements, @join__unionMember and @join__enumValue. Their values
// are not interpreted further (spec.md §6), but a malformed argument is
// still a hard parse error like any other directive.
func validateAncillaryJoinDirectives(def *ast.Definition) error {
	for _, dir := range directivesNamed(def.Directives, directiveJoinImplements) {
		if _, err := requiredEnumArg(dir, argGraph, def.Name, directiveJoinImplements); err != nil {
			return err
		}
		if arg := dir.Arguments.ForName(argInterface); arg == nil || arg.Value.Kind != ast.StringValue {
			return oops.Errorf("malformed supergraph: @%s on %q missing string argument %q", directiveJoinImplements, def.Name, argInterface)
		}
	}
	for _, dir := range directivesNamed(def.Directives, directiveJoinUnionMember) {
		if _, err := requiredEnumArg(dir, argGraph, def.Name, directiveJoinUnionMember); err != nil {
			return err
		}
		if arg := dir.Arguments.ForName(argMember); arg == nil || arg.Value.Kind != ast.StringValue {
			return oops.Errorf("malformed supergraph: @%s on %q missing string argument %q", directiveJoinUnionMember, def.Name, argMember)
		}
	}
	for _, ev := range def.EnumValues {
		for _, dir := range directivesNamed(ev.Directives, directiveJoinEnumValue) {
			if _, err := requiredEnumArg(dir, argGraph, def.Name, directiveJoinEnumValue); err != nil {
				return err
			}
		}
	}
	return nil
}

// Parse reads a composed supergraph SDL document and returns the
// per-subgraph type tables the query graph builder consumes.
//
// Parse reads exactly the directives spec.md §6 names: @join__type,
// @join__field, @join__implements, @join__unionMember, @join__enumValue.
// Every other directive on the document is ignored.
func Parse(sdl string) (Supergraph, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: "supergraph.graphql", Input: sdl})
	if err != nil {
		return nil, oops.Wrapf(err, "parsing supergraph SDL")
	}

	byName := make(map[string]*ast.Definition, len(doc.Definitions))
	for _, def := range doc.Definitions {
		if _, ok := byName[def.Name]; ok {
			return nil, oops.Errorf("malformed supergraph: duplicate type definition %q", def.Name)
		}
		byName[def.Name] = def
	}

	graphs := make(Supergraph)
	ensureSubgraph := func(id string) *Subgraph {
		sg, ok := graphs[id]
		if !ok {
			sg = &Subgraph{
				GraphID:     id,
				Types:       make(map[string]*ObjectType),
				EntityTypes: make(map[string]struct{}),
			}
			graphs[id] = sg
		}
		return sg
	}

	for _, def := range doc.Definitions {
		if isBuiltinOrJoinDefinition(def) {
			continue
		}

		kind, err := typeKindOf(def)
		if err != nil {
			return nil, err
		}

		joinTypes, err := parseJoinTypes(def)
		if err != nil {
			return nil, err
		}
		// Every domain type in a composed supergraph carries at least one
		// @join__type naming the subgraph(s) that own it; a composer bug
		// that drops this directive entirely is a malformed supergraph.
		if len(joinTypes) == 0 {
			return nil, oops.Errorf("malformed supergraph: type %q has no @join__type directive", def.Name)
		}

		fields, err := parseFields(def, byName)
		if err != nil {
			return nil, err
		}

		if err := validateAncillaryJoinDirectives(def); err != nil {
			return nil, err
		}

		// A type may carry several @join__type directives naming the same
		// graph (one per valid key, e.g. @key("id") and @key("id pid") on
		// the same subgraph) — that's multiple keys for one node, not
		// multiple nodes. Only the exact same (graph, key) pair repeating
		// is a genuine duplicate, since that can only mean the composer
		// redeclared the identical directive.
		seenGraphKeys := make(map[string]bool, len(joinTypes))
		seenGraphs := make(map[string]bool, len(joinTypes))
		for _, jt := range joinTypes {
			graphKey := jt.Graph + "\x00"
			if jt.Key != nil {
				graphKey += *jt.Key
			}
			if seenGraphKeys[graphKey] {
				return nil, oops.Errorf("malformed supergraph: duplicate node for type %q in subgraph %q", def.Name, jt.Graph)
			}
			seenGraphKeys[graphKey] = true

			if seenGraphs[jt.Graph] {
				continue
			}
			seenGraphs[jt.Graph] = true

			sg := ensureSubgraph(jt.Graph)
			ownFields := fieldsOwnedBy(fields, jt.Graph, joinTypes)

			obj := &ObjectType{
				Name:   def.Name,
				Kind:   kind,
				Fields: ownFields,
				Join:   joinTypes,
			}
			sg.Types[def.Name] = obj
			if obj.IsEntity() {
				sg.EntityTypes[def.Name] = struct{}{}
			}
		}
	}

	return graphs, nil
}

// isBuiltinOrJoinDefinition skips the join-spec's own scaffolding
// (join__Graph enum, join__FieldSet scalar, directive definitions, ...)
// which are not domain types.
func isBuiltinOrJoinDefinition(def *ast.Definition) bool {
	if def.BuiltIn {
		return true
	}
	switch def.Name {
	case "join__Graph", "join__FieldSet", "link__Import", "link__Purpose":
		return true
	}
	return false
}

func typeKindOf(def *ast.Definition) (TypeKind, error) {
	switch def.Kind {
	case ast.Object:
		return KindObject, nil
	case ast.Interface:
		return KindInterface, nil
	case ast.Enum:
		return KindEnum, nil
	case ast.Union:
		return KindUnion, nil
	case ast.InputObject:
		return KindInputObject, nil
	case ast.Scalar:
		return KindScalar, nil
	default:
		return 0, oops.Errorf("malformed supergraph: type %q has unsupported kind %q", def.Name, def.Kind)
	}
}

func parseJoinTypes(def *ast.Definition) ([]JoinType, error) {
	var joinTypes []JoinType
	for _, dir := range directivesNamed(def.Directives, directiveJoinType) {
		graph, err := requiredEnumArg(dir, argGraph, def.Name, directiveJoinType)
		if err != nil {
			return nil, err
		}

		key, err := optionalStringArg(dir, argKey, def.Name, directiveJoinType)
		if err != nil {
			return nil, err
		}

		extension, err := optionalBoolArg(dir, argExtension, false, def.Name, directiveJoinType)
		if err != nil {
			return nil, err
		}
		resolvable, err := optionalBoolArg(dir, argResolvable, true, def.Name, directiveJoinType)
		if err != nil {
			return nil, err
		}
		isInterfaceObject, err := optionalBoolArg(dir, argIsInterfaceObject, false, def.Name, directiveJoinType)
		if err != nil {
			return nil, err
		}

		joinTypes = append(joinTypes, JoinType{
			Graph:             graph,
			Key:               key,
			Extension:         extension,
			Resolvable:        resolvable,
			IsInterfaceObject: isInterfaceObject,
		})
	}
	return joinTypes, nil
}

// parseFields builds every ObjectTypeField declared on def, each carrying
// the full list of @join__field annotations found on it (a field may be
// declared with no @join__field directive at all, zero, or several).
func parseFields(def *ast.Definition, all map[string]*ast.Definition) (map[string][]ObjectTypeField, error) {
	result := make(map[string][]ObjectTypeField)
	for _, f := range def.Fields {
		if _, ok := all[namedTypeName(f.Type)]; !ok && !isScalarName(namedTypeName(f.Type)) {
			return nil, oops.Errorf("malformed supergraph: field %s.%s references undefined type %q", def.Name, f.Name, namedTypeName(f.Type))
		}

		joinFields := directivesNamed(f.Directives, directiveJoinField)
		if len(joinFields) == 0 {
			result[f.Name] = []ObjectTypeField{{
				Name:   f.Name,
				Type:   namedTypeName(f.Type),
				IsList: isListType(f.Type),
				Join:   JoinField{},
			}}
			continue
		}

		var variants []ObjectTypeField
		for _, dir := range joinFields {
			jf, err := parseJoinField(dir, def.Name, f.Name)
			if err != nil {
				return nil, err
			}
			variants = append(variants, ObjectTypeField{
				Name:   f.Name,
				Type:   namedTypeName(f.Type),
				IsList: isListType(f.Type),
				Join:   jf,
			})
		}
		result[f.Name] = variants
	}
	return result, nil
}

func parseJoinField(dir *ast.Directive, typeName, fieldName string) (JoinField, error) {
	graph, err := optionalEnumArg(dir, argGraph, typeName, directiveJoinField)
	if err != nil {
		return JoinField{}, err
	}
	requires, err := optionalStringArg(dir, argRequires, typeName, directiveJoinField)
	if err != nil {
		return JoinField{}, err
	}
	provides, err := optionalStringArg(dir, argProvides, typeName, directiveJoinField)
	if err != nil {
		return JoinField{}, err
	}
	typeOverride, err := optionalStringArg(dir, argType, typeName, directiveJoinField)
	if err != nil {
		return JoinField{}, err
	}
	external, err := optionalBoolArg(dir, argExternal, false, typeName, directiveJoinField)
	if err != nil {
		return JoinField{}, err
	}
	override, err := optionalStringArg(dir, argOverride, typeName, directiveJoinField)
	if err != nil {
		return JoinField{}, err
	}
	usedOverridden, err := optionalBoolArg(dir, argUsedOverridden, false, typeName, directiveJoinField)
	if err != nil {
		return JoinField{}, err
	}

	return JoinField{
		Graph:          graph,
		Requires:       requires,
		Provides:       provides,
		Type:           typeOverride,
		External:       external,
		Override:       override,
		UsedOverridden: usedOverridden,
	}, nil
}

// fieldsOwnedBy picks, for one subgraph, the ObjectTypeField variant of
// each field that subgraph can resolve, skipping external fields entirely.
// A field with a @join__field naming this exact graph wins; a field with
// no @join__field at all (implicit ownership) is available to every graph
// the type's @join__type list names.
func fieldsOwnedBy(fields map[string][]ObjectTypeField, graph string, joinTypes []JoinType) []ObjectTypeField {
	names := sortedFieldNames(fields)

	var owned []ObjectTypeField
	for _, name := range names {
		variants := fields[name]

		// Fields carrying no @join__field directive apply to every
		// subgraph that owns the type.
		if len(variants) == 1 && variants[0].Join == (JoinField{}) {
			owned = append(owned, variants[0])
			continue
		}

		for _, v := range variants {
			if v.Join.Graph != "" && v.Join.Graph != graph {
				continue
			}
			if v.Join.External {
				continue
			}
			owned = append(owned, v)
		}
	}
	return owned
}
