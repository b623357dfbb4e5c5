// Package export writes positioned networks to static artifacts: PNG and
// SVG images, Graphviz DOT text, and positioned-graph JSON. Artifacts are
// written through a temp file and renamed into place, so a failed export
// never leaves a partial file behind.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/signetlab/signet/pkg/graph"
	"github.com/signetlab/signet/pkg/layout"
	"github.com/signetlab/signet/pkg/logging"
	"github.com/signetlab/signet/pkg/metrics"
)

// ErrUnsupportedFormat flags a format Save cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Formats Save understands. "gv" is accepted as an alias for dot.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Options configures one export.
type Options struct {
	// Format selects the artifact type; empty derives it from Path's
	// extension.
	Format string

	// Path is the output file.
	Path string

	// Highlight lists node IDs drawn with the highlight color instead of
	// their styled fill.
	Highlight []string

	// HighlightColor overrides the built-in highlight color.
	HighlightColor string
}

func (o Options) format() string {
	f := strings.ToLower(o.Format)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(o.Path)), ".")
	}
	if f == "gv" {
		f = FormatDOT
	}
	return f
}

// Encode renders the result into the requested format in memory.
func Encode(res *layout.Result, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.format() {
	case FormatPNG:
		if err := PNG(res, &buf, opts); err != nil {
			return nil, err
		}
	case FormatSVG:
		if err := SVG(res, &buf, opts); err != nil {
			return nil, err
		}
	case FormatDOT:
		if err := DOT(res.Net, &buf); err != nil {
			return nil, err
		}
	case FormatJSON:
		return JSON(res)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.format())
	}
	return buf.Bytes(), nil
}

// Save encodes the result and writes it to opts.Path.
func Save(res *layout.Result, opts Options) error {
	start := time.Now()
	format := opts.format()
	reg := metrics.DefaultRegistry()

	if opts.Path == "" {
		reg.RecordExport(format, "error", time.Since(start), 0)
		return errors.New("export: empty output path")
	}

	data, err := Encode(res, opts)
	if err != nil {
		reg.RecordExport(format, "error", time.Since(start), 0)
		return err
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			reg.RecordExport(format, "error", time.Since(start), 0)
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Write to a temporary file first, then rename into place.
	tmpPath := opts.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		reg.RecordExport(format, "error", time.Since(start), 0)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := os.Rename(tmpPath, opts.Path); err != nil {
		reg.RecordExport(format, "error", time.Since(start), 0)
		return fmt.Errorf("failed to rename artifact: %w", err)
	}

	reg.RecordExport(format, "success", time.Since(start), len(data))
	logging.Info("artifact exported",
		logging.Format(format),
		logging.Path(opts.Path),
		logging.Int("bytes", len(data)),
		logging.Latency(time.Since(start)))
	return nil
}

func attrString(attrs graph.Attrs, key string) string {
	if v, ok := attrs[key]; ok {
		return v.String()
	}
	return ""
}

func attrFloat(attrs graph.Attrs, key string, def float64) float64 {
	v, ok := attrs[key]
	if !ok {
		return def
	}
	if f, err := v.AsFloat(); err == nil {
		return f
	}
	if f, err := strconv.ParseFloat(v.String(), 64); err == nil {
		return f
	}
	return def
}

func highlightSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
