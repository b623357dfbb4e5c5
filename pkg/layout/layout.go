// Package layout positions network nodes on a 2D canvas. It provides the
// layout programs the rendering pipeline selects by name: hierarchical
// (dot-style levels), force-directed (spring embedding), and circular.
package layout

import (
	"errors"
	"fmt"

	"github.com/signetlab/signet/pkg/graph"
)

// ErrUnknownProg flags an unrecognized layout program name.
var ErrUnknownProg = errors.New("unknown layout program")

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config configures layout parameters
type Config struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Iteration count for iterative algorithms
	Padding    float64 // Padding from canvas edges
	Seed       int64   // RNG seed for randomized algorithms
}

// DefaultConfig returns the canvas parameters used when a caller passes the
// zero Config.
func DefaultConfig() Config {
	return Config{Width: 1000, Height: 1000, Iterations: 50, Padding: 50}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.Iterations == 0 {
		c.Iterations = d.Iterations
	}
	if c.Padding == 0 {
		c.Padding = d.Padding
	}
	return c
}

// Engine computes positions for every node of a network.
type Engine interface {
	Compute(net *graph.Network) (map[string]Position, error)
}

// ByName resolves a layout program name to an engine. Graphviz-style names
// are accepted alongside the descriptive ones.
func ByName(prog string, config Config) (Engine, error) {
	switch prog {
	case "dot", "hierarchical":
		return NewHierarchical(config), nil
	case "spring", "force", "neato", "fdp", "sfdp":
		return NewForceDirected(config), nil
	case "circo", "circular", "twopi":
		return NewCircular(config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProg, prog)
	}
}

// Result is a positioned network: the styled graph plus one coordinate per
// node, ready for export.
type Result struct {
	Net       *graph.Network
	Positions map[string]Position
}

// Compute runs the named layout program over a network and bundles the
// positioned result.
func Compute(net *graph.Network, prog string, config Config) (*Result, error) {
	engine, err := ByName(prog, config)
	if err != nil {
		return nil, err
	}
	positions, err := engine.Compute(net)
	if err != nil {
		return nil, err
	}
	return &Result{Net: net, Positions: positions}, nil
}
