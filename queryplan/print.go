package queryplan

import (
	"fmt"
	"strings"
)

const entitiesPrefix = "query($representations:[_Any!]!){_entities(representations:$representations){"

// Pretty renders plan as the deterministic pretty-printed format: two-space
// indentation, Fetch(service: "...") { ... } and Flatten(path: "...") { ... },
// with the _entities boilerplate of an entity fetch's operation stripped and
// replaced by "{ ... on T { ... } } =>".
func Pretty(plan *QueryPlan) string {
	if plan == nil || plan.Node == nil {
		return ""
	}
	var sb strings.Builder
	printNode(&sb, plan.Node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *Fetch:
		sb.WriteString(indent)
		sb.WriteString(fmt.Sprintf("Fetch(service: %q) { %s }", v.ServiceName, displayOperation(v)))
	case *Sequence:
		sb.WriteString(indent)
		sb.WriteString("Sequence {\n")
		printChildren(sb, v.Nodes, depth+1)
		sb.WriteString(indent)
		sb.WriteString("}")
	case *Parallel:
		sb.WriteString(indent)
		sb.WriteString("Parallel {\n")
		printChildren(sb, v.Nodes, depth+1)
		sb.WriteString(indent)
		sb.WriteString("}")
	case *Flatten:
		sb.WriteString(indent)
		sb.WriteString(fmt.Sprintf("Flatten(path: %q) {\n", strings.Join(v.Path, ".")))
		printNode(sb, v.Node, depth+1)
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("}")
	}
}

func printChildren(sb *strings.Builder, nodes []Node, depth int) {
	for i, n := range nodes {
		printNode(sb, n, depth)
		if i < len(nodes)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

// displayOperation strips an entity fetch's _entities(...) boilerplate,
// replacing it with "{ ... on <T> { ... } } =>" ahead of the body, per the
// pretty-printer rule. Root fetches print their operation verbatim.
func displayOperation(f *Fetch) string {
	if !strings.HasPrefix(f.Operation, entitiesPrefix) {
		return f.Operation
	}
	fragmentPrefix := "... on " + f.EntityType + "{"
	body := strings.TrimPrefix(f.Operation, entitiesPrefix)
	body = strings.TrimPrefix(body, fragmentPrefix)
	body = strings.TrimSuffix(body, "}}}")
	return fmt.Sprintf("{ ... on %s { ... } } => { %s }", f.EntityType, body)
}
