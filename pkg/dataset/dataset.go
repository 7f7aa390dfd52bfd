// Package dataset holds the in-memory tabular structure the validation
// engine and the command layer operate on: ordered unique column
// labels plus string cells addressed by (row index, column label).
//
// The live Dataset is owned by a single goroutine for the whole
// session; background validation always works on a Snapshot.
package dataset

import (
	"github.com/arthur-debert/tablecheck/pkg/errors"
)

// Meta carries origin metadata supplied by the loader. The core never
// re-parses the source file; Meta is informational only.
type Meta struct {
	FilePath    string
	Encoding    string
	Delimiter   rune
	SheetName   string
	HeaderRow   int
	Fingerprint string
}

// Dataset is a mutable in-memory table. Column labels are unique and
// ordered; cells are strings, with the empty string modelling a
// missing value.
//
// A Dataset is not safe for concurrent use. The session's owner
// goroutine serializes all mutation; workers receive a Snapshot.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
	meta    Meta
}

// New builds a Dataset from ordered column labels and row data.
// Rows shorter than the column list are padded with empty cells;
// longer rows are an error.
func New(columns []string, rows [][]string) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col == "" {
			return nil, errors.New(errors.ErrInvalidInput, "column label cannot be empty")
		}
		if _, dup := index[col]; dup {
			return nil, errors.Newf(errors.ErrInvalidInput, "duplicate column label %q", col)
		}
		index[col] = i
	}

	data := make([][]string, len(rows))
	for r, row := range rows {
		if len(row) > len(columns) {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"row %d has %d cells, dataset has %d columns", r, len(row), len(columns))
		}
		padded := make([]string, len(columns))
		copy(padded, row)
		data[r] = padded
	}

	return &Dataset{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    data,
	}, nil
}

// Columns returns the ordered column labels. The returned slice is a copy.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// HasColumn reports whether the dataset has a column with the given label.
func (d *Dataset) HasColumn(col string) bool {
	_, ok := d.index[col]
	return ok
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.rows)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.columns)
}

// Get returns the value at (row, col).
func (d *Dataset) Get(row int, col string) (string, error) {
	ci, ok := d.index[col]
	if !ok {
		return "", errors.Newf(errors.ErrColumnNotFound, "no column %q", col)
	}
	if row < 0 || row >= len(d.rows) {
		return "", errors.Newf(errors.ErrRowOutOfRange, "row %d out of range (%d rows)", row, len(d.rows))
	}
	return d.rows[row][ci], nil
}

// Set writes the value at (row, col) in place.
func (d *Dataset) Set(row int, col string, value string) error {
	ci, ok := d.index[col]
	if !ok {
		return errors.Newf(errors.ErrColumnNotFound, "no column %q", col)
	}
	if row < 0 || row >= len(d.rows) {
		return errors.Newf(errors.ErrRowOutOfRange, "row %d out of range (%d rows)", row, len(d.rows))
	}
	d.rows[row][ci] = value
	return nil
}

// Row returns a copy of the cells of one row, in column order.
func (d *Dataset) Row(row int) ([]string, error) {
	if row < 0 || row >= len(d.rows) {
		return nil, errors.Newf(errors.ErrRowOutOfRange, "row %d out of range (%d rows)", row, len(d.rows))
	}
	return append([]string(nil), d.rows[row]...), nil
}

// Column returns a copy of all values of one column, in row order.
func (d *Dataset) Column(col string) ([]string, error) {
	ci, ok := d.index[col]
	if !ok {
		return nil, errors.Newf(errors.ErrColumnNotFound, "no column %q", col)
	}
	values := make([]string, len(d.rows))
	for r := range d.rows {
		values[r] = d.rows[r][ci]
	}
	return values, nil
}

// Snapshot returns a deep structural copy of the dataset. Workers must
// validate against a snapshot so the owner goroutine can keep mutating
// the live dataset.
func (d *Dataset) Snapshot() *Dataset {
	rows := make([][]string, len(d.rows))
	for r := range d.rows {
		rows[r] = append([]string(nil), d.rows[r]...)
	}
	index := make(map[string]int, len(d.index))
	for k, v := range d.index {
		index[k] = v
	}
	return &Dataset{
		columns: append([]string(nil), d.columns...),
		index:   index,
		rows:    rows,
		meta:    d.meta,
	}
}

// Meta returns the origin metadata.
func (d *Dataset) Meta() Meta {
	return d.meta
}

// SetMeta attaches origin metadata to the dataset.
func (d *Dataset) SetMeta(meta Meta) {
	d.meta = meta
}
