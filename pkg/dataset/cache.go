package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/google/uuid"
)

const cacheExt = ".tsv.sz"

// diskCache stores tables as snappy-compressed TSV blobs, one file per
// entry. Writes go through a uniquely named temp file and a rename, so
// concurrent processes never observe a partial entry.
type diskCache struct {
	dir string
}

func (c *diskCache) path(name string) string {
	return filepath.Join(c.dir, name+cacheExt)
}

// load returns the cached table, or false on any miss. Corrupt entries are
// removed so the next fetch rewrites them.
func (c *diskCache) load(name string) (*Table, bool) {
	blob, err := os.ReadFile(c.path(name))
	if err != nil {
		return nil, false
	}

	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		os.Remove(c.path(name))
		return nil, false
	}
	t, err := ParseTSV(bytes.NewReader(raw))
	if err != nil {
		os.Remove(c.path(name))
		return nil, false
	}
	return t, true
}

func (c *diskCache) store(name string, t *Table) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	var buf bytes.Buffer
	if err := t.WriteTSV(&buf); err != nil {
		return err
	}
	blob := snappy.Encode(nil, buf.Bytes())

	path := c.path(name)
	tmpPath := path + "." + uuid.New().String() + ".tmp"
	if err := os.WriteFile(tmpPath, blob, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename cache entry: %w", err)
	}
	return nil
}
