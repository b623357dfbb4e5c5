package layout

import (
	"github.com/signetlab/signet/pkg/graph"
)

// Hierarchical arranges nodes in BFS levels from the root nodes, the way
// dot draws causal chains: perturbations on top, measurements below.
type Hierarchical struct {
	config Config
}

// NewHierarchical creates a hierarchical layout engine.
func NewHierarchical(config Config) *Hierarchical {
	return &Hierarchical{config: config.withDefaults()}
}

// Compute arranges nodes level by level.
func (hl *Hierarchical) Compute(net *graph.Network) (map[string]Position, error) {
	ids := net.NodeIDs()
	positions := make(map[string]Position, len(ids))

	if len(ids) == 0 {
		return positions, nil
	}

	// Roots are the nodes with no incoming edges
	roots := make([]string, 0)
	for _, id := range ids {
		if net.InDegree(id) == 0 {
			roots = append(roots, id)
		}
	}
	if len(roots) == 0 {
		// Cyclic or undirected input, start from the first node
		roots = []string{ids[0]}
	}

	// Build levels using BFS
	levels := make([][]string, 0)
	visited := make(map[string]bool, len(ids))
	for _, root := range roots {
		visited[root] = true
	}
	currentLevel := roots

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]string, 0)

		for _, id := range currentLevel {
			for _, succ := range net.Successors(id) {
				if !visited[succ] {
					visited[succ] = true
					nextLevel = append(nextLevel, succ)
				}
			}
		}

		currentLevel = nextLevel
	}

	// Nodes unreachable from the roots go to the last level
	for _, id := range ids {
		if !visited[id] {
			levels[len(levels)-1] = append(levels[len(levels)-1], id)
		}
	}

	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		levelWidth := hl.config.Width - 2*hl.config.Padding
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, id := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[id] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}
