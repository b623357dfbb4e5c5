// Package style holds the visual style schema for network rendering: named
// presets, deep merging of user overrides, and the applier that writes
// resolved attribute sets onto graph elements.
package style

import (
	"errors"

	"github.com/signetlab/signet/pkg/graph"
)

// ErrNoDefaultColor flags a color table that cannot serve as a fallback.
var ErrNoDefaultColor = errors.New("color table has no default entry")

// DefaultKey is the required fallback entry in every color table.
const DefaultKey = "default"

// Role color table keys read by the colorizer.
const (
	ColorSources   = "sources"
	ColorTargets   = "targets"
	ColorHighlight = "highlight"
)

// AttrSet is a flat mapping of visual attribute name to value, the leaf of
// the style schema.
type AttrSet map[string]string

// Clone returns a copy of the attribute set.
func (a AttrSet) Clone() AttrSet {
	if a == nil {
		return nil
	}
	clone := make(AttrSet, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// ColorTable maps lookup keys to colors. Non-empty tables must carry a
// "default" entry so lookups always have a fallback.
type ColorTable map[string]string

// Clone returns a copy of the color table.
func (c ColorTable) Clone() ColorTable {
	if c == nil {
		return nil
	}
	clone := make(ColorTable, len(c))
	for k, v := range c {
		clone[k] = v
	}
	return clone
}

// Lookup resolves a key against the table, falling back to the default
// entry. The second result is false only when neither exists.
func (c ColorTable) Lookup(key string) (string, bool) {
	if color, ok := c[key]; ok {
		return color, true
	}
	if color, ok := c[DefaultKey]; ok {
		return color, true
	}
	return "", false
}

// NodeClassStyle styles one node role. Base attributes sit inline beside the
// consistency sub-styles applied on top in sign-consistent mode.
type NodeClassStyle struct {
	Attrs              AttrSet `yaml:",inline"`
	PositiveConsistent AttrSet `yaml:"positive_consistent,omitempty"`
	NegativeConsistent AttrSet `yaml:"negative_consistent,omitempty"`
}

// Clone returns a deep copy of the class style.
func (n NodeClassStyle) Clone() NodeClassStyle {
	return NodeClassStyle{
		Attrs:              n.Attrs.Clone(),
		PositiveConsistent: n.PositiveConsistent.Clone(),
		NegativeConsistent: n.NegativeConsistent.Clone(),
	}
}

// NodeStyles styles the node roles. Default is the role color table the
// colorizer reads (keys: sources, targets, default, highlight).
type NodeStyles struct {
	Sources NodeClassStyle `yaml:"sources"`
	Targets NodeClassStyle `yaml:"targets"`
	Other   AttrSet        `yaml:"other"`
	Default ColorTable     `yaml:"default"`
}

// EdgeStyles styles edges by sign. Default is the colorBy lookup table used
// by the colorizer (values of the colorBy attribute mapped to colors).
type EdgeStyles struct {
	Positive AttrSet    `yaml:"positive"`
	Negative AttrSet    `yaml:"negative"`
	Neutral  AttrSet    `yaml:"neutral"`
	Default  ColorTable `yaml:"default"`
}

// Style is the full nested schema for one preset or override.
type Style struct {
	Nodes NodeStyles `yaml:"nodes"`
	Edges EdgeStyles `yaml:"edges"`
}

// Clone returns a deep copy sharing no maps with the receiver.
func (s Style) Clone() Style {
	return Style{
		Nodes: NodeStyles{
			Sources: s.Nodes.Sources.Clone(),
			Targets: s.Nodes.Targets.Clone(),
			Other:   s.Nodes.Other.Clone(),
			Default: s.Nodes.Default.Clone(),
		},
		Edges: EdgeStyles{
			Positive: s.Edges.Positive.Clone(),
			Negative: s.Edges.Negative.Clone(),
			Neutral:  s.Edges.Neutral.Clone(),
			Default:  s.Edges.Default.Clone(),
		},
	}
}

// Validate checks the structural invariants of a style: any non-empty color
// table must carry the default fallback entry.
func (s Style) Validate() error {
	if len(s.Nodes.Default) > 0 {
		if _, ok := s.Nodes.Default[DefaultKey]; !ok {
			return &graph.Error{Op: "validate", Context: "nodes.default", Cause: ErrNoDefaultColor}
		}
	}
	if len(s.Edges.Default) > 0 {
		if _, ok := s.Edges.Default[DefaultKey]; !ok {
			return &graph.Error{Op: "validate", Context: "edges.default", Cause: ErrNoDefaultColor}
		}
	}
	return nil
}

// Merge deep-unions an override into a base style and returns the result.
// A nil override returns a copy of base. For every leaf path present in both,
// the override wins; paths present only in base are inherited. Neither input
// is mutated.
func Merge(base Style, override *Style) Style {
	merged := base.Clone()
	if override == nil {
		return merged
	}

	merged.Nodes.Sources = mergeClass(merged.Nodes.Sources, override.Nodes.Sources)
	merged.Nodes.Targets = mergeClass(merged.Nodes.Targets, override.Nodes.Targets)
	merged.Nodes.Other = mergeAttrs(merged.Nodes.Other, override.Nodes.Other)
	merged.Nodes.Default = ColorTable(mergeAttrs(AttrSet(merged.Nodes.Default), AttrSet(override.Nodes.Default)))

	merged.Edges.Positive = mergeAttrs(merged.Edges.Positive, override.Edges.Positive)
	merged.Edges.Negative = mergeAttrs(merged.Edges.Negative, override.Edges.Negative)
	merged.Edges.Neutral = mergeAttrs(merged.Edges.Neutral, override.Edges.Neutral)
	merged.Edges.Default = ColorTable(mergeAttrs(AttrSet(merged.Edges.Default), AttrSet(override.Edges.Default)))

	return merged
}

func mergeClass(base, override NodeClassStyle) NodeClassStyle {
	return NodeClassStyle{
		Attrs:              mergeAttrs(base.Attrs, override.Attrs),
		PositiveConsistent: mergeAttrs(base.PositiveConsistent, override.PositiveConsistent),
		NegativeConsistent: mergeAttrs(base.NegativeConsistent, override.NegativeConsistent),
	}
}

func mergeAttrs(base, override AttrSet) AttrSet {
	if len(override) == 0 {
		return base
	}
	merged := base.Clone()
	if merged == nil {
		merged = make(AttrSet, len(override))
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Apply writes every base attribute, then every condition attribute, onto the
// element's store. Condition keys win without erasing unrelated base keys.
// Either set may be nil.
func Apply(attrs graph.Attrs, base, condition AttrSet) {
	for k, v := range base {
		attrs[k] = graph.StringValue(v)
	}
	for k, v := range condition {
		attrs[k] = graph.StringValue(v)
	}
}
