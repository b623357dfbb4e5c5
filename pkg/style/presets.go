package style

// Preset names understood by the visualization orchestrator.
const (
	PresetDefault        = "default"
	PresetSignConsistent = "sign_consistent"
)

// Presets returns the built-in presets. Every call constructs fresh values,
// so callers can mutate what they get back without corrupting later calls.
func Presets() map[string]Style {
	return map[string]Style{
		PresetDefault:        defaultPreset(),
		PresetSignConsistent: signConsistentPreset(),
	}
}

// Preset returns a single named preset.
func Preset(name string) (Style, bool) {
	s, ok := Presets()[name]
	return s, ok
}

func defaultPreset() Style {
	return Style{
		Nodes: NodeStyles{
			Sources: NodeClassStyle{
				Attrs: AttrSet{
					"shape":     "circle",
					"style":     "filled",
					"fillcolor": "steelblue",
					"color":     "black",
					"penwidth":  "2",
				},
			},
			Targets: NodeClassStyle{
				Attrs: AttrSet{
					"shape":     "circle",
					"style":     "filled",
					"fillcolor": "mediumpurple",
					"color":     "black",
					"penwidth":  "2",
				},
			},
			Other: AttrSet{
				"shape":     "circle",
				"style":     "filled",
				"fillcolor": "lightgray",
				"color":     "black",
				"penwidth":  "1",
			},
			Default: ColorTable{
				ColorSources:   "steelblue",
				ColorTargets:   "mediumpurple",
				DefaultKey:     "lightgray",
				ColorHighlight: "gold",
			},
		},
		Edges: EdgeStyles{
			Positive: AttrSet{"color": "forestgreen", "penwidth": "2"},
			Negative: AttrSet{"color": "tomato", "penwidth": "2"},
			Neutral:  AttrSet{"color": "dimgray", "penwidth": "1"},
			Default: ColorTable{
				"stimulation": "forestgreen",
				"inhibition":  "tomato",
				DefaultKey:    "dimgray",
			},
		},
	}
}

func signConsistentPreset() Style {
	s := defaultPreset()

	s.Nodes.Sources.PositiveConsistent = AttrSet{
		"color":     "forestgreen",
		"fillcolor": "palegreen",
		"penwidth":  "3",
	}
	s.Nodes.Sources.NegativeConsistent = AttrSet{
		"color":     "tomato",
		"fillcolor": "mistyrose",
		"penwidth":  "3",
	}
	s.Nodes.Targets.PositiveConsistent = AttrSet{
		"color":     "forestgreen",
		"fillcolor": "palegreen",
		"penwidth":  "3",
	}
	s.Nodes.Targets.NegativeConsistent = AttrSet{
		"color":     "tomato",
		"fillcolor": "mistyrose",
		"penwidth":  "3",
	}

	return s
}
