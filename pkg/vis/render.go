// Package vis styles biological interaction networks for rendering. It
// classifies nodes into source, target, and other roles from experimental
// role maps, colors nodes and edges on a working copy of the caller's graph,
// evaluates sign consistency between perturbations and measurements, and
// orchestrates the full pass from raw network to positioned, fully
// attributed result.
package vis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/layout"
	"github.com/signetlab/signet/pkg/logging"
	"github.com/signetlab/signet/pkg/metrics"
	"github.com/signetlab/signet/pkg/style"
)

// Network type selectors accepted by Render.
const (
	TypeDefault        = style.PresetDefault
	TypeSignConsistent = style.PresetSignConsistent
)

// Options configures one visualization pass.
type Options struct {
	// NetworkType selects the pipeline: "default" or "sign_consistent".
	// Empty means default.
	NetworkType string

	// Sources and Targets are the experimental role maps for this call.
	Sources SourceMap
	Targets TargetMap

	// Custom is merged over the selected preset; partial overrides at any
	// depth are legal.
	Custom *style.Style

	// Prog names the layout program. Empty means "dot".
	Prog string

	// Layout carries the layout geometry; the zero value uses defaults.
	Layout layout.Config

	// Strict rejects an unrecognized NetworkType with ErrUnknownNetworkType
	// instead of falling back to the default pipeline.
	Strict bool
}

// Render runs the visualization pipeline over a private copy of the network
// and returns the positioned, styled result. The caller's network is never
// mutated. In sign-consistent mode every edge must carry sign information.
func Render(net *graph.Network, opts Options) (*layout.Result, error) {
	start := time.Now()
	mode := opts.NetworkType
	if mode == "" {
		mode = TypeDefault
	}
	logger := logging.With(
		logging.RenderID(uuid.New().String()),
		logging.NetworkType(mode))

	reg := metrics.DefaultRegistry()

	preset, known := style.Preset(mode)
	if !known {
		if opts.Strict {
			reg.RecordRender(mode, "error", time.Since(start), net.NodeCount(), net.EdgeCount())
			return nil, &graph.Error{
				Op:      "render",
				Context: fmt.Sprintf("network type %q", mode),
				Cause:   ErrUnknownNetworkType,
			}
		}
		logger.Warn("unknown network type, falling back to default")
		mode = TypeDefault
		preset, _ = style.Preset(mode)
	}

	resolved := style.Merge(preset, opts.Custom)
	class := Classify(opts.Sources, opts.Targets)

	working := net.Clone()
	applyBaseStyles(working, class, resolved)

	if mode == TypeSignConsistent {
		applyConsistencyStyles(working, class, resolved)
		if err := applySignStyles(working, resolved); err != nil {
			reg.RecordRender(mode, "error", time.Since(start), working.NodeCount(), working.EdgeCount())
			return nil, err
		}
	}

	prog := opts.Prog
	if prog == "" {
		prog = "dot"
	}
	layoutStart := time.Now()
	res, err := layout.Compute(working, prog, opts.Layout)
	if err != nil {
		reg.RecordLayout(prog, "error", time.Since(layoutStart))
		reg.RecordRender(mode, "error", time.Since(start), working.NodeCount(), working.EdgeCount())
		return nil, err
	}
	reg.RecordLayout(prog, "success", time.Since(layoutStart))
	reg.RecordRender(mode, "success", time.Since(start), working.NodeCount(), working.EdgeCount())

	logger.Info("render complete",
		logging.Prog(prog),
		logging.Nodes(working.NodeCount()),
		logging.Edges(working.EdgeCount()),
		logging.Count(class.Sources()+class.Targets()),
		logging.Latency(time.Since(start)))
	return res, nil
}

// applyBaseStyles writes the role base style onto every node and the neutral
// style onto every edge, the shared first pass of both pipelines.
func applyBaseStyles(net *graph.Network, class *Classification, st style.Style) {
	for _, n := range net.Nodes() {
		switch class.Role(n.ID) {
		case RoleSource:
			style.Apply(n.Attrs, st.Nodes.Sources.Attrs, nil)
		case RoleTarget:
			style.Apply(n.Attrs, st.Nodes.Targets.Attrs, nil)
		default:
			style.Apply(n.Attrs, st.Nodes.Other, nil)
		}
	}
	for _, e := range net.Edges() {
		style.Apply(e.Attrs, st.Edges.Neutral, nil)
	}
}

// applyConsistencyStyles layers the consistency sub-style onto classified
// nodes. The signed value comes from the node's own role map; a value of
// zero applies neither sub-style.
func applyConsistencyStyles(net *graph.Network, class *Classification, st style.Style) {
	for _, n := range net.Nodes() {
		val, classified := class.SignedValue(n.ID)
		if !classified {
			continue
		}

		var cls style.NodeClassStyle
		switch class.Role(n.ID) {
		case RoleSource:
			cls = st.Nodes.Sources
		case RoleTarget:
			cls = st.Nodes.Targets
		}

		switch {
		case val > 0:
			style.Apply(n.Attrs, nil, cls.PositiveConsistent)
		case val < 0:
			style.Apply(n.Attrs, nil, cls.NegativeConsistent)
		}
	}
}

// applySignStyles replaces the neutral edge styling with the signed one.
// Sign +1 is positive, -1 negative, anything else neutral; an edge with no
// sign information at all aborts the pass.
func applySignStyles(net *graph.Network, st style.Style) error {
	for _, e := range net.Edges() {
		sign, ok := e.Sign()
		if !ok {
			return &graph.Error{
				Op:    "render",
				From:  e.From,
				To:    e.To,
				Cause: ErrMissingSign,
			}
		}

		switch sign {
		case 1:
			style.Apply(e.Attrs, nil, st.Edges.Positive)
		case -1:
			style.Apply(e.Attrs, nil, st.Edges.Negative)
		default:
			style.Apply(e.Attrs, nil, st.Edges.Neutral)
		}
	}
	return nil
}
