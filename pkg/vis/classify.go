package vis

import "sort"

// Role is a node's part in an experiment: perturbed, measured, or neither.
type Role int

const (
	RoleOther Role = iota
	RoleSource
	RoleTarget
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleTarget:
		return "target"
	default:
		return "other"
	}
}

// SourceMap holds the signed perturbation value per perturbed node.
type SourceMap map[string]float64

// TargetMap holds signed measurement values per measured node, grouped one
// level by readout (e.g. assay or condition).
type TargetMap map[string]map[string]float64

// FlattenTargets unions the group maps of a target map into a single
// node-to-value mapping. Groups are folded in sorted key order so collisions
// on the same node resolve deterministically, last group wins.
func FlattenTargets(targets TargetMap) map[string]float64 {
	flat := make(map[string]float64)
	if len(targets) == 0 {
		return flat
	}
	groups := make([]string, 0, len(targets))
	for g := range targets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		for id, v := range targets[g] {
			flat[id] = v
		}
	}
	return flat
}

// Classification is the single role assignment shared by the colorizer and
// the styling passes of one visualization call. A node present in both maps
// classifies as source.
type Classification struct {
	roles   map[string]Role
	sources map[string]float64
	targets map[string]float64
}

// Classify builds a classification from the role maps of one call. The
// target map is flattened first; neither input is retained or mutated.
func Classify(sources SourceMap, targets TargetMap) *Classification {
	c := &Classification{
		roles:   make(map[string]Role, len(sources)),
		sources: make(map[string]float64, len(sources)),
		targets: FlattenTargets(targets),
	}
	for id, v := range sources {
		c.roles[id] = RoleSource
		c.sources[id] = v
	}
	for id := range c.targets {
		if _, taken := c.roles[id]; !taken {
			c.roles[id] = RoleTarget
		}
	}
	return c
}

// Role returns the node's role; unknown nodes are RoleOther.
func (c *Classification) Role(id string) Role {
	return c.roles[id]
}

// SignedValue resolves the signed value driving consistency styling. Source
// nodes read the source map, target nodes the flattened target map, and a
// classified node missing its value defaults to +1. The second result is
// false for unclassified nodes, which carry no signed value at all.
func (c *Classification) SignedValue(id string) (float64, bool) {
	switch c.roles[id] {
	case RoleSource:
		if v, ok := c.sources[id]; ok {
			return v, true
		}
		return 1, true
	case RoleTarget:
		if v, ok := c.targets[id]; ok {
			return v, true
		}
		return 1, true
	default:
		return 0, false
	}
}

// Sources returns the number of source-classified nodes.
func (c *Classification) Sources() int {
	n := 0
	for _, r := range c.roles {
		if r == RoleSource {
			n++
		}
	}
	return n
}

// Targets returns the number of target-classified nodes.
func (c *Classification) Targets() int {
	n := 0
	for _, r := range c.roles {
		if r == RoleTarget {
			n++
		}
	}
	return n
}
