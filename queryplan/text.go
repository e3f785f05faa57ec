package queryplan

import (
	"strings"

	"github.com/opengraphfed/queryplanner/querygraph"
	"github.com/opengraphfed/queryplanner/selection"
)

// innerContent renders edges as a nested field chain ("a { b { c } }"
// without the outermost braces), ending with __typename plus the key
// fields of nextReq when the chain is followed by an entity jump.
func innerContent(edges []*querygraph.Edge, nextReq *selection.Selection) string {
	if len(edges) == 0 {
		if nextReq == nil {
			return ""
		}
		return "__typename" + keyFieldsInline(nextReq.SelectionSet)
	}
	head := edges[0]
	rest := innerContent(edges[1:], nextReq)
	if rest == "" {
		return head.Move.FieldName
	}
	return head.Move.FieldName + " { " + rest + " }"
}

// selectionSetText wraps innerContent in the braces that make it a
// standalone GraphQL selection set.
func selectionSetText(edges []*querygraph.Edge, nextReq *selection.Selection) string {
	return "{ " + innerContent(edges, nextReq) + " }"
}

// keyFieldsInline renders a requirement's key fields from its canonically
// sorted selection set, so fields appear in canonical order rather than
// declaration order: field names, recursing into nested objects without
// adding an extra __typename at each level (only the outermost position,
// handled by the caller, gets one).
func keyFieldsInline(nodes []selection.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		if n.Field == nil {
			continue
		}
		sb.WriteString(" " + n.Field.FieldName)
		if len(n.Field.SelectionSet) > 0 {
			sb.WriteString(" { " + strings.TrimSpace(keyFieldsInline(n.Field.SelectionSet)) + " }")
		}
	}
	return sb.String()
}

// rootOperationText renders the operation string for a root fetch: bare
// selection-set shorthand for queries (valid standalone GraphQL), an
// explicit operation keyword for mutation/subscription since shorthand
// only applies to queries.
func rootOperationText(kind string, edges []*querygraph.Edge, nextReq *selection.Selection) string {
	body := selectionSetText(edges, nextReq)
	if kind == "query" || kind == "" {
		return body
	}
	return kind + " " + body
}

// entityOperationText renders the _entities lookup used by every
// non-root fetch (spec.md §4.4): a query taking $representations and
// selecting targetType's continuation via an inline fragment.
func entityOperationText(targetType string, edges []*querygraph.Edge, nextReq *selection.Selection) string {
	return "query($representations:[_Any!]!){_entities(representations:$representations){... on " +
		targetType + "{" + innerContent(edges, nextReq) + "}}}"
}
