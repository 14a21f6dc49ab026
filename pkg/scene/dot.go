package scene

import (
	"bytes"
	"fmt"
	"strings"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Detailed adds local offsets and sizes to node labels.
	Detailed bool
}

// ToDOT describes the scene tree in Graphviz DOT format. Groups are drawn
// as folders, primitives as boxes; section and barcode groups are filled.
func ToDOT(g *Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	ids := make(map[*Node]string)
	var edges []string
	g.Walk(func(n *Node, ancestors []*Node) bool {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(dotAttrs(n, opts), ", "))
		if len(ancestors) > 0 {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", ids[ancestors[len(ancestors)-1]], id))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(n *Node, detailed bool) string {
	parts := []string{string(n.Kind)}
	if n.Role != "" {
		parts[0] += " · " + string(n.Role)
	}
	switch {
	case n.Field != "":
		parts = append(parts, string(n.Field))
	case n.Section != "":
		parts = append(parts, string(n.Section))
	}
	if detailed {
		parts = append(parts, fmt.Sprintf("@(%g, %g) %g×%g", n.X, n.Y, n.W, n.H))
	}
	return strings.Join(parts, "\n")
}

func dotAttrs(n *Node, opts DOTOptions) []string {
	attrs := []string{fmt.Sprintf("label=%q", dotLabel(n, opts.Detailed))}
	switch {
	case n.Tag == TagSection:
		attrs = append(attrs, "shape=folder", "fillcolor=lightblue")
	case n.Tag == TagBarcode:
		attrs = append(attrs, "shape=folder", "fillcolor=lightyellow")
	case n.IsGroup():
		attrs = append(attrs, "shape=folder", "style=\"filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}
