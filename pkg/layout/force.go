package layout

import (
	"math"
	"math/rand"

	"github.com/signetlab/signet/pkg/graph"
)

// ForceDirected implements spring-embedding layout. Positions start random
// (seeded, so runs are reproducible) and settle over a fixed number of
// cooling iterations.
type ForceDirected struct {
	config Config
}

// NewForceDirected creates a force-directed layout engine.
func NewForceDirected(config Config) *ForceDirected {
	return &ForceDirected{config: config.withDefaults()}
}

// Compute computes positions using the force-directed algorithm.
func (fd *ForceDirected) Compute(net *graph.Network) (map[string]Position, error) {
	ids := net.NodeIDs()
	if len(ids) == 0 {
		return make(map[string]Position), nil
	}

	// Single node - center it
	if len(ids) == 1 {
		return map[string]Position{
			ids[0]: {X: fd.config.Width / 2, Y: fd.config.Height / 2},
		}, nil
	}

	rng := rand.New(rand.NewSource(fd.config.Seed))

	positions := make(map[string]Position, len(ids))
	for _, id := range ids {
		positions[id] = Position{
			X: rng.Float64()*(fd.config.Width-2*fd.config.Padding) + fd.config.Padding,
			Y: rng.Float64()*(fd.config.Height-2*fd.config.Padding) + fd.config.Padding,
		}
	}

	// Build neighbor map for fast lookup
	neighbors := make(map[string]map[string]bool, len(ids))
	for _, id := range ids {
		neighbors[id] = make(map[string]bool)
		for _, succ := range net.Successors(id) {
			neighbors[id][succ] = true
		}
		for _, pred := range net.Predecessors(id) {
			neighbors[id][pred] = true
		}
	}

	// Optimal pairwise distance for the canvas area
	k := math.Sqrt((fd.config.Width * fd.config.Height) / float64(len(ids)))
	temperature := fd.config.Width / 10.0

	for iter := 0; iter < fd.config.Iterations; iter++ {
		forces := make(map[string]Position, len(ids))
		for _, id := range ids {
			forces[id] = Position{}
		}

		// Repulsion between all pairs
		for i, id1 := range ids {
			for j := i + 1; j < len(ids); j++ {
				id2 := ids[j]
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X + fx, Y: forces[id1].Y + fy}
				forces[id2] = Position{X: forces[id2].X - fx, Y: forces[id2].Y - fy}
			}
		}

		// Attraction along edges
		for _, id1 := range ids {
			for id2 := range neighbors[id1] {
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Position{X: forces[id1].X - fx, Y: forces[id1].Y - fy}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fd.config.Iterations)
		for _, id := range ids {
			fx := forces[id].X
			fy := forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool
				positions[id] = Position{X: positions[id].X + dx, Y: positions[id].Y + dy}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fd.config.Width, fd.config.Height, fd.config.Padding), nil
}
