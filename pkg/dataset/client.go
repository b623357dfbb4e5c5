package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/signetlab/signet/pkg/logging"
	"github.com/signetlab/signet/pkg/metrics"
)

var (
	// ErrUnknownDatatype is returned for a Query.Type that Datatypes does
	// not list.
	ErrUnknownDatatype = errors.New("unknown data type")

	// ErrUnsupportedScheme is returned for base URLs that are neither
	// http(s) nor s3.
	ErrUnsupportedScheme = errors.New("unsupported dataset URL scheme")
)

// Data types served by the resource.
const (
	TypeCountData = "countdata"
	TypeMetadata  = "metadata"
)

const (
	resourceDir          = "panacea"
	metadataFile         = "panacea__metadata"
	countdataFile        = "panacea__countdata"
	experimentsCacheName = "panacea_exps"
)

// Query narrows Tables to particular cell lines and drugs. Empty slices
// leave that dimension unfiltered; an empty Type means countdata.
type Query struct {
	CellLine []string
	Drug     []string
	Type     string
}

// Client fetches resource tables, caching each one on disk.
type Client struct {
	cfg    Config
	base   *url.URL
	http   *http.Client
	s3     *s3source
	cache  *diskCache
	logger logging.Logger
	reg    *metrics.Registry
}

// NewClient validates the configuration and prepares the fetch backend for
// the base URL's scheme. An s3:// base builds its AWS client here, using the
// static credentials from the config when set and the default chain
// otherwise.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		base:   base,
		cache:  &diskCache{dir: cfg.CacheDir},
		logger: logging.With(logging.Component("dataset")),
		reg:    metrics.DefaultRegistry(),
	}

	switch base.Scheme {
	case "http", "https":
		c.http = &http.Client{Timeout: cfg.Timeout}
	case "s3":
		src, err := newS3Source(context.Background(), cfg, base)
		if err != nil {
			return nil, err
		}
		c.s3 = src
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, base.Scheme)
	}

	return c, nil
}

// Experiments lists the cell line and drug combinations present in the
// resource: the metadata with its group column split apart, sample IDs
// dropped and duplicates removed. The processed table is cached separately
// from the raw metadata.
func (c *Client) Experiments(ctx context.Context) (*Table, error) {
	if !c.cfg.Refresh {
		if t, ok := c.cache.load(experimentsCacheName); ok {
			c.reg.RecordCacheHit()
			c.logger.Debug("dataset cache hit", logging.Dataset(experimentsCacheName))
			return t, nil
		}
		c.reg.RecordCacheMiss()
	}

	meta, err := c.table(ctx, metadataFile)
	if err != nil {
		return nil, err
	}
	meta, err = withGroupSplit(meta)
	if err != nil {
		return nil, err
	}

	out, err := meta.Drop("sample_ID")
	if err != nil {
		return nil, err
	}
	out = out.Dedup()

	if err := c.cache.store(experimentsCacheName, out); err != nil {
		c.logger.Warn("dataset cache write failed",
			logging.Dataset(experimentsCacheName), logging.Error(err))
	}
	return out, nil
}

// Datatypes describes the tables the resource serves.
func (c *Client) Datatypes() *Table {
	return &Table{
		Cols: []string{"type", "description"},
		Rows: [][]string{
			{TypeCountData, "RNA-Seq raw counts"},
			{TypeMetadata, "Metadata containing sample name and group"},
		},
	}
}

// Tables returns the count matrix and the metadata for the query. The
// metadata is filtered by cell line and drug; the count columns are narrowed
// to gene_symbol plus the sample IDs that survive the filter.
func (c *Client) Tables(ctx context.Context, q Query) (*Table, *Table, error) {
	typ := q.Type
	if typ == "" {
		typ = TypeCountData
	}
	known := false
	for _, row := range c.Datatypes().Rows {
		if row[0] == typ {
			known = true
			break
		}
	}
	if !known {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDatatype, typ)
	}

	meta, err := c.table(ctx, metadataFile)
	if err != nil {
		return nil, nil, err
	}
	meta, err = withGroupSplit(meta)
	if err != nil {
		return nil, nil, err
	}

	if len(q.CellLine) > 0 {
		meta, err = meta.FilterIn("cell", q.CellLine)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(q.Drug) > 0 {
		meta, err = meta.FilterIn("drug", q.Drug)
		if err != nil {
			return nil, nil, err
		}
	}

	counts, err := c.table(ctx, countdataFile)
	if err != nil {
		return nil, nil, err
	}

	samples := meta.Col("sample_ID")
	if samples == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingColumn, "sample_ID")
	}
	counts, err = counts.Select(append([]string{"gene_symbol"}, samples...)...)
	if err != nil {
		return nil, nil, err
	}

	return counts, meta, nil
}

// table fetches one resource file, consulting the cache unless Refresh is
// set.
func (c *Client) table(ctx context.Context, name string) (*Table, error) {
	if !c.cfg.Refresh {
		if t, ok := c.cache.load(name); ok {
			c.reg.RecordCacheHit()
			c.logger.Debug("dataset cache hit", logging.Dataset(name))
			return t, nil
		}
		c.reg.RecordCacheMiss()
	}

	start := time.Now()
	data, err := c.fetch(ctx, name)
	if err != nil {
		c.reg.RecordDatasetFetch(c.base.Scheme, "error", time.Since(start), 0)
		return nil, err
	}
	c.reg.RecordDatasetFetch(c.base.Scheme, "success", time.Since(start), int64(len(data)))

	t, err := ParseTSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	if err := c.cache.store(name, t); err != nil {
		c.logger.Warn("dataset cache write failed",
			logging.Dataset(name), logging.Error(err))
	}

	c.logger.Info("dataset fetched",
		logging.Dataset(name),
		logging.Int("bytes", len(data)),
		logging.Count(len(t.Rows)),
		logging.Latency(time.Since(start)))
	return t, nil
}

func (c *Client) fetch(ctx context.Context, name string) ([]byte, error) {
	if c.s3 != nil {
		key := path.Join(c.s3.prefix, resourceDir, name+".tsv")
		return c.s3.get(ctx, key)
	}

	u := *c.base
	u.Path = path.Join(u.Path, resourceDir, name+".tsv")
	return c.fetchHTTP(ctx, u.String())
}

func (c *Client) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create dataset request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("dataset endpoint returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dataset body: %w", err)
	}
	return data, nil
}

// withGroupSplit appends cell and drug columns derived from the group column
// ("<cell>_<drug>"). A drug name keeps any further underscores.
func withGroupSplit(t *Table) (*Table, error) {
	groups := t.Col("group")
	if groups == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, "group")
	}

	cells := make([]string, len(groups))
	drugs := make([]string, len(groups))
	for i, g := range groups {
		cell, drug, _ := strings.Cut(g, "_")
		cells[i] = cell
		drugs[i] = drug
	}
	return t.AppendCols([]string{"cell", "drug"}, [][]string{cells, drugs})
}
