// Package dataset fetches tabular omics resources over HTTP or S3 and keeps
// a snappy-compressed on-disk cache of them.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingColumn is returned when a table operation names a column the
// table does not have.
var ErrMissingColumn = errors.New("column not found")

// Table is a small columnar frame: a header and string cells. All operations
// return a new table; result tables may share row storage with their input.
type Table struct {
	Cols []string
	Rows [][]string
}

// ColIndex returns the position of a column, or -1.
func (t *Table) ColIndex(name string) int {
	for i, c := range t.Cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Col returns a copy of one column's cells, or nil when the column is
// missing.
func (t *Table) Col(name string) []string {
	idx := t.ColIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Select returns a table with exactly the named columns, in the given order.
func (t *Table) Select(cols ...string) (*Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = t.ColIndex(c)
		if idx[i] < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}

	out := &Table{Cols: append([]string(nil), cols...), Rows: make([][]string, len(t.Rows))}
	for ri, row := range t.Rows {
		sel := make([]string, len(idx))
		for i, ci := range idx {
			sel[i] = row[ci]
		}
		out.Rows[ri] = sel
	}
	return out, nil
}

// Drop returns a table without the named columns. Dropping an absent column
// is an error.
func (t *Table) Drop(cols ...string) (*Table, error) {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		if t.ColIndex(c) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
		drop[c] = true
	}

	keep := make([]string, 0, len(t.Cols))
	for _, c := range t.Cols {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// FilterIn keeps the rows whose cell in the named column is one of the given
// values. An empty value set keeps nothing.
func (t *Table) FilterIn(col string, values []string) (*Table, error) {
	idx := t.ColIndex(col)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
	}

	want := make(map[string]bool, len(values))
	for _, v := range values {
		want[v] = true
	}

	out := &Table{Cols: append([]string(nil), t.Cols...)}
	for _, row := range t.Rows {
		if want[row[idx]] {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// AppendCols returns a table with extra columns appended on the right. Every
// new column must have one cell per row.
func (t *Table) AppendCols(names []string, cols [][]string) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("append cols: %d names for %d columns", len(names), len(cols))
	}
	for i, c := range cols {
		if len(c) != len(t.Rows) {
			return nil, fmt.Errorf("append cols: column %q has %d cells for %d rows", names[i], len(c), len(t.Rows))
		}
	}

	out := &Table{
		Cols: append(append([]string(nil), t.Cols...), names...),
		Rows: make([][]string, len(t.Rows)),
	}
	for ri, row := range t.Rows {
		ext := make([]string, 0, len(row)+len(cols))
		ext = append(ext, row...)
		for _, c := range cols {
			ext = append(ext, c[ri])
		}
		out.Rows[ri] = ext
	}
	return out, nil
}

// Dedup returns a table with exact duplicate rows removed, keeping the first
// occurrence.
func (t *Table) Dedup() *Table {
	seen := make(map[string]bool, len(t.Rows))
	out := &Table{Cols: append([]string(nil), t.Cols...)}
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Rows = append(out.Rows, row)
	}
	return out
}

// ParseTSV reads a tab-separated table with a header line. Every row must
// have as many cells as the header.
func ParseTSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read table header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table rows: %w", err)
	}
	return &Table{Cols: header, Rows: rows}, nil
}

// WriteTSV writes the table as tab-separated text, header first.
func (t *Table) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Cols); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
