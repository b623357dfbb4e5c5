package export

import (
	"encoding/json"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/layout"
)

// JSON marshals the positioned network with per-element attribute readback.
func JSON(res *layout.Result) ([]byte, error) {
	type nodeViz struct {
		ID    string            `json:"id"`
		Attrs map[string]string `json:"attrs,omitempty"`
		X     float64           `json:"x"`
		Y     float64           `json:"y"`
	}

	type edgeViz struct {
		From  string            `json:"from"`
		To    string            `json:"to"`
		Attrs map[string]string `json:"attrs,omitempty"`
	}

	type vizData struct {
		Directed bool      `json:"directed"`
		Nodes    []nodeViz `json:"nodes"`
		Edges    []edgeViz `json:"edges"`
	}

	data := vizData{
		Directed: res.Net.Directed(),
		Nodes:    make([]nodeViz, 0, res.Net.NodeCount()),
		Edges:    make([]edgeViz, 0, res.Net.EdgeCount()),
	}

	for _, n := range res.Net.Nodes() {
		pos := res.Positions[n.ID]
		data.Nodes = append(data.Nodes, nodeViz{
			ID:    n.ID,
			Attrs: stringAttrs(n.Attrs),
			X:     pos.X,
			Y:     pos.Y,
		})
	}
	for _, e := range res.Net.Edges() {
		data.Edges = append(data.Edges, edgeViz{
			From:  e.From,
			To:    e.To,
			Attrs: stringAttrs(e.Attrs),
		})
	}

	return json.Marshal(data)
}

func stringAttrs(attrs graph.Attrs) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v.String()
	}
	return out
}
