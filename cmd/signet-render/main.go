// signet-render styles and lays out a biological network and writes a
// static artifact: PNG, SVG, Graphviz DOT, or positioned-graph JSON.
//
// The default pipeline classifies nodes from a role-map file and applies
// the preset for the chosen network type. With --color-by the plot
// colorizer runs instead, mapping an edge attribute through the edge color
// table.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signetlab/signet/pkg/config"
	"github.com/signetlab/signet/pkg/export"
	"github.com/signetlab/signet/pkg/graphio"
	"github.com/signetlab/signet/pkg/layout"
	"github.com/signetlab/signet/pkg/logging"
	"github.com/signetlab/signet/pkg/style"
	"github.com/signetlab/signet/pkg/vis"
)

// roleFile is the YAML document naming the perturbed and measured nodes of
// one experiment.
//
//	sources:
//	  EGFR: 1
//	targets:
//	  phospho:
//	    MAPK1: -1
type roleFile struct {
	Sources map[string]float64            `yaml:"sources"`
	Targets map[string]map[string]float64 `yaml:"targets"`
}

func main() {
	networkFile := flag.String("network", "", "Path to the edge-list file")
	outFile := flag.String("out", "", "Output artifact path (.png, .svg, .dot, .json)")
	formatFlag := flag.String("format", "", "Artifact format, overriding the output extension")
	configFile := flag.String("config", "", "Optional YAML config file")
	styleFile := flag.String("style", "", "Custom style YAML merged over the preset")
	rolesFile := flag.String("roles", "", "YAML role map with sources and targets")
	typeFlag := flag.String("type", "", "Network type: default or sign_consistent")
	progFlag := flag.String("prog", "", "Layout program (dot, neato, circo, ...)")
	colorBy := flag.String("color-by", "", "Color edges by this attribute via the plot colorizer")
	highlight := flag.String("highlight", "", "Comma-separated node IDs to highlight")
	sourceCol := flag.String("source-col", "", "Source column name in the edge list")
	targetCol := flag.String("target-col", "", "Target column name in the edge list")
	sepFlag := flag.String("sep", "", "Edge-list field separator (default tab)")
	undirected := flag.Bool("undirected", false, "Read the edge list as undirected")
	seed := flag.Int64("seed", 0, "Random seed for force-directed layouts")
	flag.Parse()

	if *networkFile == "" || *outFile == "" {
		fmt.Println("Usage: signet-render --network edges.tsv --out network.svg [--roles roles.yaml] [--style style.yaml]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	logging.SetDefaultLogger(logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level)))

	net, err := graphio.ReadFile(*networkFile, graphio.ReadOptions{
		SourceCol: *sourceCol,
		TargetCol: *targetCol,
		Sep:       sepRune(*sepFlag),
		Directed:  !*undirected,
	})
	if err != nil {
		logging.ErrorLog("failed to read network", logging.Error(err))
		os.Exit(1)
	}

	var roles roleFile
	if *rolesFile != "" {
		if roles, err = loadRoles(*rolesFile); err != nil {
			logging.ErrorLog("failed to read role map", logging.Error(err))
			os.Exit(1)
		}
	}

	var custom *style.Style
	if *styleFile != "" {
		if custom, err = style.Load(*styleFile); err != nil {
			logging.ErrorLog("failed to read style", logging.Error(err))
			os.Exit(1)
		}
	}

	layoutCfg := cfg.Render.LayoutConfig()
	if *seed != 0 {
		layoutCfg.Seed = *seed
	}
	prog := *progFlag
	if prog == "" {
		prog = cfg.Render.Prog
	}
	netType := *typeFlag
	if netType == "" {
		netType = cfg.Render.NetworkType
	}
	colorAttr := *colorBy
	if colorAttr == "" {
		colorAttr = cfg.Render.ColorBy
	}

	var res *layout.Result
	if colorAttr != "" {
		viz := vis.NewVisualizer(net)
		viz.SetColorBy(colorAttr)
		viz.UseClassification(vis.Classify(roles.Sources, roles.Targets))
		res, err = viz.Visualize(prog, layoutCfg)
	} else {
		res, err = vis.Render(net, vis.Options{
			NetworkType: netType,
			Sources:     roles.Sources,
			Targets:     roles.Targets,
			Custom:      custom,
			Prog:        prog,
			Layout:      layoutCfg,
			Strict:      true,
		})
	}
	if err != nil {
		logging.ErrorLog("render failed", logging.Error(err))
		os.Exit(1)
	}

	if err := export.Save(res, export.Options{
		Format:    *formatFlag,
		Path:      *outFile,
		Highlight: splitAndTrim(*highlight, ","),
	}); err != nil {
		logging.ErrorLog("export failed", logging.Error(err))
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv()
}

func loadRoles(path string) (roleFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return roleFile{}, fmt.Errorf("open role map: %w", err)
	}
	defer f.Close()

	var roles roleFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&roles); err != nil {
		return roleFile{}, fmt.Errorf("parse role map %s: %w", path, err)
	}
	return roles, nil
}

// sepRune accepts a literal separator or the two-character escape \t.
func sepRune(s string) rune {
	switch s {
	case "", "\t", `\t`:
		return '\t'
	default:
		return []rune(s)[0]
	}
}

// splitAndTrim splits a string and trims whitespace from each part
func splitAndTrim(s string, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
