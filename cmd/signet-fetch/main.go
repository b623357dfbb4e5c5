// signet-fetch downloads tabular omics resources and prints them as TSV.
// Raw files and the processed experiment list are cached on disk, so
// repeated runs hit the network only with --refresh.
//
//	signet-fetch --datatypes
//	signet-fetch --experiments
//	signet-fetch --cell A549 --drug GEFITINIB > counts.tsv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/signetlab/signet/pkg/config"
	"github.com/signetlab/signet/pkg/dataset"
	"github.com/signetlab/signet/pkg/logging"
)

func main() {
	configFile := flag.String("config", "", "Optional YAML config file")
	datatypes := flag.Bool("datatypes", false, "List the available datatypes and exit")
	experiments := flag.Bool("experiments", false, "List cell line and drug combinations and exit")
	cell := flag.String("cell", "", "Comma-separated cell lines to keep")
	drug := flag.String("drug", "", "Comma-separated drug treatments to keep")
	typeFlag := flag.String("type", "", "Datatype to fetch (default countdata)")
	metaOut := flag.String("meta-out", "", "Also write the filtered metadata to this file")
	refresh := flag.Bool("refresh", false, "Bypass the cache and refetch")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	logging.SetDefaultLogger(logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Logging.Level)))

	clientCfg := cfg.Dataset.ClientConfig()
	if *refresh {
		clientCfg.Refresh = true
	}
	client, err := dataset.NewClient(clientCfg)
	if err != nil {
		logging.ErrorLog("failed to create dataset client", logging.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()

	switch {
	case *datatypes:
		printTable(client.Datatypes())
	case *experiments:
		exps, err := client.Experiments(ctx)
		if err != nil {
			logging.ErrorLog("failed to fetch experiments", logging.Error(err))
			os.Exit(1)
		}
		printTable(exps)
	default:
		counts, meta, err := client.Tables(ctx, dataset.Query{
			CellLine: splitAndTrim(*cell, ","),
			Drug:     splitAndTrim(*drug, ","),
			Type:     *typeFlag,
		})
		if err != nil {
			logging.ErrorLog("failed to fetch tables", logging.Error(err))
			os.Exit(1)
		}
		if *metaOut != "" {
			if err := writeTable(meta, *metaOut); err != nil {
				logging.ErrorLog("failed to write metadata", logging.Error(err))
				os.Exit(1)
			}
		}
		printTable(counts)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv()
}

func printTable(t *dataset.Table) {
	if err := t.WriteTSV(os.Stdout); err != nil {
		logging.ErrorLog("failed to write table", logging.Error(err))
		os.Exit(1)
	}
}

func writeTable(t *dataset.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteTSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
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
