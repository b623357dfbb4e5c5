package graphio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signetlab/signet/pkg/graph"
)

func TestReadBareEdges(t *testing.T) {
	in := "source\ttarget\nTNF\tTNFR1\nTNFR1\tTRADD\nTRADD\tCASP8\n"

	net, err := Read(strings.NewReader(in), DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if !net.Directed() {
		t.Error("default options should build a directed network")
	}
	if got := net.NodeCount(); got != 4 {
		t.Errorf("got %d nodes, want 4", got)
	}
	if got := net.EdgeCount(); got != 3 {
		t.Errorf("got %d edges, want 3", got)
	}
	e, ok := net.Edge("TNF", "TNFR1")
	if !ok {
		t.Fatal("edge TNF-TNFR1 missing")
	}
	if len(e.Attrs) != 0 {
		t.Errorf("bare edge list produced attrs %v", e.Attrs)
	}
}

func TestReadTypedAttributes(t *testing.T) {
	in := "source\ttarget\tinteraction\tconfidence\tcuration\n" +
		"EGF\tEGFR\t1\t0.92\tliterature\n" +
		"EGFR\tMAPK1\t-1\t0.4\tinferred\n"

	net, err := Read(strings.NewReader(in), DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	e, ok := net.Edge("EGF", "EGFR")
	if !ok {
		t.Fatal("edge EGF-EGFR missing")
	}

	// The legacy interaction column comes back as the canonical sign.
	sign, ok := e.Sign()
	if !ok || sign != 1 {
		t.Errorf("Sign() = %d, %v, want 1, true", sign, ok)
	}
	if _, present := e.Attrs[graph.AttrInteraction]; present {
		t.Error("interaction key should be normalized away")
	}

	conf, err := e.Attrs["confidence"].AsFloat()
	if err != nil || conf != 0.92 {
		t.Errorf("confidence = %v, %v, want 0.92", conf, err)
	}
	cur, err := e.Attrs["curation"].AsString()
	if err != nil || cur != "literature" {
		t.Errorf("curation = %q, %v, want literature", cur, err)
	}

	e2, _ := net.Edge("EGFR", "MAPK1")
	if sign, _ := e2.Sign(); sign != -1 {
		t.Errorf("second edge sign = %d, want -1", sign)
	}
}

func TestReadColumnKindInference(t *testing.T) {
	// One stray non-numeric cell demotes the whole column to strings, and
	// a mix of ints and decimals makes a float column.
	in := "source\ttarget\tscore\tcount\n" +
		"A\tB\t1\t5\n" +
		"A\tC\t2.5\tn/a\n"

	net, err := Read(strings.NewReader(in), DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	ab, _ := net.Edge("A", "B")
	if got := ab.Attrs["score"].Kind(); got != graph.KindFloat {
		t.Errorf("score kind = %v, want float", got)
	}
	if f, _ := ab.Attrs["score"].AsFloat(); f != 1 {
		t.Errorf("score = %v, want 1", f)
	}
	if got := ab.Attrs["count"].Kind(); got != graph.KindString {
		t.Errorf("count kind = %v, want string", got)
	}
}

func TestReadNegativeWeights(t *testing.T) {
	in := "source\ttarget\tweight\nA\tB\t2\nB\tC\t-3\nC\tA\t0\n"

	net, err := Read(strings.NewReader(in), DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	tests := []struct {
		from, to   string
		wantSign   int64
		wantWeight int64
	}{
		{"A", "B", 1, 2},
		{"B", "C", -1, 3},
		{"C", "A", 1, 0},
	}
	for _, tt := range tests {
		e, ok := net.Edge(tt.from, tt.to)
		if !ok {
			t.Fatalf("edge %s-%s missing", tt.from, tt.to)
		}
		sign, ok := e.Sign()
		if !ok || sign != tt.wantSign {
			t.Errorf("%s-%s sign = %d, %v, want %d", tt.from, tt.to, sign, ok, tt.wantSign)
		}
		w, err := e.Attrs[graph.AttrWeight].AsInt()
		if err != nil || w != tt.wantWeight {
			t.Errorf("%s-%s weight = %d, %v, want %d", tt.from, tt.to, w, err, tt.wantWeight)
		}
	}
}

func TestReadNegativeFloatWeights(t *testing.T) {
	in := "source\ttarget\tweight\nA\tB\t-0.5\n"

	net, err := Read(strings.NewReader(in), DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	e, _ := net.Edge("A", "B")
	if sign, _ := e.Sign(); sign != -1 {
		t.Errorf("sign = %d, want -1", sign)
	}
	if w, err := e.Attrs[graph.AttrWeight].AsFloat(); err != nil || w != 0.5 {
		t.Errorf("weight = %v, %v, want 0.5", w, err)
	}
}

func TestReadPositiveWeightsUntouched(t *testing.T) {
	in := "source\ttarget\tweight\nA\tB\t2\nB\tC\t3\n"

	net, err := Read(strings.NewReader(in), DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	e, _ := net.Edge("A", "B")
	if _, ok := e.Sign(); ok {
		t.Error("all-positive weights should not derive a sign")
	}
	if w, err := e.Attrs[graph.AttrWeight].AsInt(); err != nil || w != 2 {
		t.Errorf("weight = %v, %v, want 2", w, err)
	}
}

func TestReadMissingColumn(t *testing.T) {
	in := "from\tto\nA\tB\n"

	_, err := Read(strings.NewReader(in), DefaultReadOptions())
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("error = %v, want ErrMissingColumn", err)
	}
}

func TestReadCustomColumnsAndSep(t *testing.T) {
	in := "from,to\nA,B\nB,C\n"

	opts := ReadOptions{SourceCol: "from", TargetCol: "to", Sep: ',', Directed: true}
	net, err := Read(strings.NewReader(in), opts)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := net.EdgeCount(); got != 2 {
		t.Errorf("got %d edges, want 2", got)
	}
}

func TestReadUndirected(t *testing.T) {
	in := "source\ttarget\nA\tB\n"

	opts := DefaultReadOptions()
	opts.Directed = false
	net, err := Read(strings.NewReader(in), opts)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if net.Directed() {
		t.Error("network should be undirected")
	}
	if _, ok := net.Edge("B", "A"); !ok {
		t.Error("undirected edge not visible from the reverse orientation")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	net := graph.NewDirected()
	net.AddEdge("A", "B", graph.Attrs{
		graph.AttrSign: graph.IntValue(1),
		"confidence":   graph.FloatValue(0.75),
	})
	net.AddEdge("B", "C", graph.Attrs{graph.AttrSign: graph.IntValue(-1)})

	var buf bytes.Buffer
	if err := Write(&buf, net); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "source\ttarget\tconfidence\tsign" {
		t.Errorf("header = %q, want sorted attr columns", lines[0])
	}

	back, err := Read(&buf, DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read back: %v", err)
	}
	if got := back.EdgeCount(); got != 2 {
		t.Fatalf("got %d edges after round trip, want 2", got)
	}

	ab, _ := back.Edge("A", "B")
	if sign, _ := ab.Sign(); sign != 1 {
		t.Errorf("sign = %d, want 1", sign)
	}
	if conf, err := ab.Attrs["confidence"].AsFloat(); err != nil || conf != 0.75 {
		t.Errorf("confidence = %v, %v, want 0.75", conf, err)
	}

	// B-C has no confidence cell, so it must come back without the attr.
	bc, _ := back.Edge("B", "C")
	if _, present := bc.Attrs["confidence"]; present {
		t.Error("empty cell should not produce an attribute")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	net := graph.NewDirected()
	net.AddEdge("A", "B", nil)

	path := filepath.Join(t.TempDir(), "net.tsv")
	if err := WriteFile(path, net); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	back, err := ReadFile(path, DefaultReadOptions())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := back.EdgeCount(); got != 1 {
		t.Errorf("got %d edges, want 1", got)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.tsv"), DefaultReadOptions())
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReadPaths(t *testing.T) {
	in := "A\tB\tC\n\nD\tE\nF\n"

	paths, err := ReadPaths(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatalf("ReadPaths: %v", err)
	}

	want := [][]string{{"A", "B", "C"}, {"D", "E"}, {"F"}}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths, want %d", len(paths), len(want))
	}
	for i := range want {
		if strings.Join(paths[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("path %d = %v, want %v", i, paths[i], want[i])
		}
	}
}
