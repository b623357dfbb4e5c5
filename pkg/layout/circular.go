package layout

import (
	"math"

	"github.com/signetlab/signet/pkg/graph"
)

// Circular arranges nodes evenly on a circle in insertion order.
type Circular struct {
	config Config
}

// NewCircular creates a circular layout engine.
func NewCircular(config Config) *Circular {
	return &Circular{config: config.withDefaults()}
}

// Compute arranges nodes on a circle.
func (cl *Circular) Compute(net *graph.Network) (map[string]Position, error) {
	ids := net.NodeIDs()
	positions := make(map[string]Position, len(ids))

	if len(ids) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(ids))

	for i, id := range ids {
		angle := float64(i) * angleStep
		positions[id] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
