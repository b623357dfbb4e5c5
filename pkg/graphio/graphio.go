// Package graphio reads and writes networks as delimited edge-list files.
//
// The format is header-driven: a source and a target column identify the
// endpoints, and any further columns become typed edge attributes. Column
// types are inferred for the whole column (int, then float, then string), so
// a single malformed cell demotes its column rather than producing mixed
// kinds.
package graphio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/logging"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("required column not found")

// ReadOptions configure edge-list parsing. The zero value of SourceCol,
// TargetCol and Sep falls back to "source", "target" and tab; Directed is
// taken as given.
type ReadOptions struct {
	SourceCol string
	TargetCol string
	Sep       rune
	Directed  bool
}

// DefaultReadOptions returns the conventional options: tab-separated,
// "source"/"target" columns, directed.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{SourceCol: "source", TargetCol: "target", Sep: '\t', Directed: true}
}

func (o ReadOptions) withDefaults() ReadOptions {
	if o.SourceCol == "" {
		o.SourceCol = "source"
	}
	if o.TargetCol == "" {
		o.TargetCol = "target"
	}
	if o.Sep == 0 {
		o.Sep = '\t'
	}
	return o
}

// Read parses a delimited edge list. When the file has only the endpoint
// columns the edges carry no attributes. When a "weight" column is numeric
// and any weight is negative, every edge gets a "sign" attribute from the
// weight's sign and the weight is replaced by its absolute value.
func Read(r io.Reader, opts ReadOptions) (*graph.Network, error) {
	opts = opts.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Sep

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	srcIdx, ok := colIndex[opts.SourceCol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.SourceCol)
	}
	tgtIdx, ok := colIndex[opts.TargetCol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.TargetCol)
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}

	attrCols := make([]int, 0, len(header))
	kinds := make([]colKind, len(header))
	for i := range header {
		if i == srcIdx || i == tgtIdx {
			continue
		}
		attrCols = append(attrCols, i)
		kinds[i] = detectKind(rows, i)
	}

	// Sign is derived from weights only when the column is numeric and at
	// least one weight is negative.
	deriveSign := false
	weightIdx, hasWeight := colIndex[graph.AttrWeight]
	if hasWeight && weightIdx != srcIdx && weightIdx != tgtIdx && kinds[weightIdx] != kindString {
		for _, row := range rows {
			if f, perr := strconv.ParseFloat(row[weightIdx], 64); perr == nil && f < 0 {
				deriveSign = true
				break
			}
		}
	}

	net := graph.NewUndirected()
	if opts.Directed {
		net = graph.NewDirected()
	}

	for _, row := range rows {
		src, tgt := row[srcIdx], row[tgtIdx]
		if src == "" || tgt == "" {
			continue
		}

		var attrs graph.Attrs
		if len(attrCols) > 0 {
			attrs = make(graph.Attrs, len(attrCols))
			for _, ci := range attrCols {
				cell := row[ci]
				if cell == "" {
					continue
				}
				attrs[header[ci]] = cellValue(kinds[ci], cell)
			}
		}

		if deriveSign && row[weightIdx] != "" {
			sign := int64(1)
			switch kinds[weightIdx] {
			case kindInt:
				n, _ := strconv.ParseInt(row[weightIdx], 10, 64)
				if n < 0 {
					sign, n = -1, -n
				}
				attrs[graph.AttrWeight] = graph.IntValue(n)
			default:
				f, _ := strconv.ParseFloat(row[weightIdx], 64)
				if f < 0 {
					sign, f = -1, -f
				}
				attrs[graph.AttrWeight] = graph.FloatValue(f)
			}
			attrs[graph.AttrSign] = graph.IntValue(sign)
		}

		net.AddEdge(src, tgt, attrs)
	}

	return net, nil
}

// ReadFile opens and parses an edge-list file.
func ReadFile(path string, opts ReadOptions) (*graph.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	net, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Debug("edge list loaded",
		logging.Path(path),
		logging.Nodes(net.NodeCount()),
		logging.Edges(net.EdgeCount()))
	return net, nil
}

// Write emits the network as a tab-separated edge list, the inverse of Read.
// The header is "source", "target" and then the union of edge attribute keys
// in sorted order; edges missing an attribute leave the cell empty.
func Write(w io.Writer, net *graph.Network) error {
	keySet := make(map[string]bool)
	for _, e := range net.Edges() {
		for k := range e.Attrs {
			keySet[k] = true
		}
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := append([]string{"source", "target"}, keys...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for _, e := range net.Edges() {
		row[0], row[1] = e.From, e.To
		for i, k := range keys {
			if v, ok := e.Attrs[k]; ok {
				row[i+2] = v.String()
			} else {
				row[i+2] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write edge %s-%s: %w", e.From, e.To, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the edge list through a temp file and renames it into
// place, so a failed write never leaves a truncated file.
func WriteFile(path string, net *graph.Network) error {
	var b strings.Builder
	if err := Write(&b, net); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write edge list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename edge list: %w", err)
	}

	logging.Debug("edge list written",
		logging.Path(path),
		logging.Edges(net.EdgeCount()))
	return nil
}

// ReadPaths parses one node path per line, fields split on the delimiter.
// Blank lines are skipped. Paths may have different lengths.
func ReadPaths(r io.Reader, sep rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1

	var paths [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read paths: %w", err)
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}
		path := make([]string, len(rec))
		copy(path, rec)
		paths = append(paths, path)
	}
	return paths, nil
}

type colKind int

const (
	kindInt colKind = iota
	kindFloat
	kindString
)

// detectKind infers one kind for a whole column. Empty cells are ignored; a
// column of only empty cells is a string column.
func detectKind(rows [][]string, idx int) colKind {
	kind := kindInt
	seen := false
	for _, row := range rows {
		cell := row[idx]
		if cell == "" {
			continue
		}
		seen = true
		if kind == kindInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = kindFloat
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			continue
		}
		return kindString
	}
	if !seen {
		return kindString
	}
	return kind
}

func cellValue(kind colKind, cell string) graph.Value {
	switch kind {
	case kindInt:
		n, _ := strconv.ParseInt(cell, 10, 64)
		return graph.IntValue(n)
	case kindFloat:
		f, _ := strconv.ParseFloat(cell, 64)
		return graph.FloatValue(f)
	default:
		return graph.StringValue(cell)
	}
}
