package querygraph

import (
	"fmt"
	"net/url"
	"strings"
)

// Print emits Graphviz DOT source for the graph (spec.md §6's optional
// diagnostic surface). When asLink is true, the DOT source is wrapped as a
// URL-encoded link for an online viewer instead of printed bare.
//
// This is grounded on the teacher's printPlan/printSelections in
// federation/planner.go — a plain recursive textual dumper — reshaped to
// emit DOT instead of indented text.
func (g *Graph) Print(asLink bool) string {
	var b strings.Builder
	b.WriteString("digraph " + g.ID + " {\n")
	for _, n := range g.Nodes {
		b.WriteString(fmt.Sprintf("  n%d [label=%q];\n", n.Index, n.SubgraphID+"::"+n.TypeName))
	}
	for _, e := range g.Edges {
		b.WriteString(fmt.Sprintf("  n%d -> n%d [label=%q];\n", e.Head.Index, e.Tail.Index, e.Move.String()))
	}
	b.WriteString("}\n")

	dot := b.String()
	if !asLink {
		return dot
	}
	return "https://dreampuf.github.io/GraphvizOnline/#" + url.QueryEscape(dot)
}
