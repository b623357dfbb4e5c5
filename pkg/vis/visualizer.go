package vis

import (
	"fmt"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/layout"
	"github.com/signetlab/signet/pkg/logging"
	"github.com/signetlab/signet/pkg/style"
)

// Visualizer colors a working copy of a network for plot-style rendering.
// Node colors come from the role color table, edge colors from a lookup of a
// configurable attribute against the edge color table. The caller's network
// is copied at construction and never touched again.
type Visualizer struct {
	net        *graph.Network
	colorBy    string
	nodeColors style.ColorTable
	edgeColors style.ColorTable
	class      *Classification
	logger     logging.Logger
}

// NewVisualizer copies the network and seeds both color tables from the
// default preset. Edges are colored by the "effect" attribute until
// SetColorBy changes it.
func NewVisualizer(net *graph.Network) *Visualizer {
	preset, _ := style.Preset(style.PresetDefault)
	return &Visualizer{
		net:        net.Clone(),
		colorBy:    graph.AttrEffect,
		nodeColors: preset.Nodes.Default,
		edgeColors: preset.Edges.Default,
		logger:     logging.DefaultLogger(),
	}
}

// Network returns the working copy the visualizer colors.
func (v *Visualizer) Network() *graph.Network {
	return v.net
}

// SetColorBy changes the edge attribute the colorizer reads.
func (v *Visualizer) SetColorBy(attr string) {
	if attr != "" {
		v.colorBy = attr
	}
}

// SetEdgeColors merges custom entries into the edge color table. Existing
// keys are overridden, unmentioned keys kept, so a partial table cannot
// drop the default fallback.
func (v *Visualizer) SetEdgeColors(colors style.ColorTable) {
	for k, c := range colors {
		v.edgeColors[k] = c
	}
}

// SetNodeColors merges custom entries into the role color table.
func (v *Visualizer) SetNodeColors(colors style.ColorTable) {
	for k, c := range colors {
		v.nodeColors[k] = c
	}
}

// UseClassification threads the call-wide role classification through the
// colorizer. Without one, ColorNodes falls back to each node's type
// attribute, the legacy contract for pre-classified graphs.
func (v *Visualizer) UseClassification(c *Classification) {
	v.class = c
}

func (v *Visualizer) roleOf(n *graph.Node) Role {
	if v.class != nil {
		return v.class.Role(n.ID)
	}
	if t, ok := n.Attr(graph.AttrType); ok {
		switch t.String() {
		case "source":
			return RoleSource
		case "target":
			return RoleTarget
		}
	}
	return RoleOther
}

func roleColorKey(r Role) string {
	switch r {
	case RoleSource:
		return style.ColorSources
	case RoleTarget:
		return style.ColorTargets
	default:
		return style.DefaultKey
	}
}

// ColorNodes assigns every node its role color, writing both the color and
// fillcolor attributes. Unclassified nodes get the default entry.
func (v *Visualizer) ColorNodes() {
	for _, n := range v.net.Nodes() {
		color, ok := v.nodeColors.Lookup(roleColorKey(v.roleOf(n)))
		if !ok {
			continue
		}
		n.SetAttr(graph.AttrColor, graph.StringValue(color))
		n.SetAttr(graph.AttrFillColor, graph.StringValue(color))
	}
}

// ColorEdges assigns every edge the color mapped from its colorBy attribute.
// A missing attribute or unmapped value falls back to the table's default
// entry; with no default either, the pass aborts with ErrUnmappedColor.
func (v *Visualizer) ColorEdges() error {
	for _, e := range v.net.Edges() {
		key := ""
		if val, ok := e.Attr(v.colorBy); ok {
			key = val.String()
		}
		color, ok := v.edgeColors.Lookup(key)
		if !ok {
			return &graph.Error{
				Op:      "color_edges",
				From:    e.From,
				To:      e.To,
				Context: fmt.Sprintf("attribute %q value %q", v.colorBy, key),
				Cause:   ErrUnmappedColor,
			}
		}
		e.SetAttr(graph.AttrColor, graph.StringValue(color))
	}
	return nil
}

// Visualize colors the working copy and lays it out, returning the
// positioned graph for a plot renderer to draw.
func (v *Visualizer) Visualize(prog string, cfg layout.Config) (*layout.Result, error) {
	if prog == "" {
		prog = "dot"
	}
	v.ColorNodes()
	if err := v.ColorEdges(); err != nil {
		return nil, err
	}
	res, err := layout.Compute(v.net, prog, cfg)
	if err != nil {
		return nil, err
	}
	v.logger.Debug("visualizer pass complete",
		logging.Prog(prog),
		logging.Nodes(v.net.NodeCount()),
		logging.Edges(v.net.EdgeCount()))
	return res, nil
}
