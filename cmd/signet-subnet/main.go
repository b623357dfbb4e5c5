// signet-subnet extracts the subnetwork induced by a set of node paths
// from a larger interaction network. Paths come one per line, fields
// separated like the edge list; consecutive fields name consecutive nodes.
// Edges survive only where the parent network connects the pair, so a path
// may contribute fewer edges than it has hops.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/graphio"
	"github.com/signetlab/signet/pkg/logging"
)

func main() {
	networkFile := flag.String("network", "", "Path to the parent edge-list file")
	pathsFile := flag.String("paths", "", "Path to the node-path file")
	outFile := flag.String("out", "", "Output edge list (default stdout)")
	sourceCol := flag.String("source-col", "", "Source column name in the edge list")
	targetCol := flag.String("target-col", "", "Target column name in the edge list")
	sepFlag := flag.String("sep", "", "Field separator (default tab)")
	undirected := flag.Bool("undirected", false, "Read the edge list as undirected")
	flag.Parse()

	if *networkFile == "" || *pathsFile == "" {
		fmt.Println("Usage: signet-subnet --network edges.tsv --paths paths.tsv [--out subnet.tsv]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	logging.SetDefaultLogger(logging.NewJSONLogger(os.Stderr, logging.ParseLevel(os.Getenv("SIGNET_LOG_LEVEL"))))

	sep := sepRune(*sepFlag)
	net, err := graphio.ReadFile(*networkFile, graphio.ReadOptions{
		SourceCol: *sourceCol,
		TargetCol: *targetCol,
		Sep:       sep,
		Directed:  !*undirected,
	})
	if err != nil {
		logging.ErrorLog("failed to read network", logging.Error(err))
		os.Exit(1)
	}

	pf, err := os.Open(*pathsFile)
	if err != nil {
		logging.ErrorLog("failed to open paths", logging.Error(err))
		os.Exit(1)
	}
	paths, err := graphio.ReadPaths(pf, sep)
	pf.Close()
	if err != nil {
		logging.ErrorLog("failed to read paths", logging.Error(err))
		os.Exit(1)
	}

	sub, err := graph.Subnetwork(net, paths)
	if err != nil {
		logging.ErrorLog("failed to build subnetwork", logging.Error(err))
		os.Exit(1)
	}
	logging.Info("subnetwork built",
		logging.Nodes(sub.NodeCount()),
		logging.Edges(sub.EdgeCount()),
		logging.Count(len(paths)))

	if *outFile == "" {
		if err := graphio.Write(os.Stdout, sub); err != nil {
			logging.ErrorLog("failed to write subnetwork", logging.Error(err))
			os.Exit(1)
		}
		return
	}
	if err := graphio.WriteFile(*outFile, sub); err != nil {
		logging.ErrorLog("failed to write subnetwork", logging.Error(err))
		os.Exit(1)
	}
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
