package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/signetlab/signet/pkg/graph"
)

// DOT writes the network as Graphviz text. Nodes come before edges in
// insertion order and attributes are emitted in sorted key order, so the
// output is stable for a given network.
func DOT(net *graph.Network, w io.Writer) error {
	var b strings.Builder

	keyword, op := "digraph", "->"
	if !net.Directed() {
		keyword, op = "graph", "--"
	}
	fmt.Fprintf(&b, "%s network {\n", keyword)

	for _, n := range net.Nodes() {
		fmt.Fprintf(&b, "  %s%s;\n", dotQuote(n.ID), dotAttrs(n.Attrs))
	}
	for _, e := range net.Edges() {
		fmt.Fprintf(&b, "  %s %s %s%s;\n", dotQuote(e.From), op, dotQuote(e.To), dotAttrs(e.Attrs))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func dotAttrs(attrs graph.Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, dotQuote(attrs[k].String())))
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func dotQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
