package dataframe

import (
	"fmt"

	apperrors "xlexport/internal/errors"
)

// Frame is an in-memory table of rows by named columns. Column order is
// significant and preserved through export. Cell values are opaque to the
// frame itself; the exporter passes them to the spreadsheet backend as-is.
// Supported cell types are string, bool, int, int64, float64, time.Time
// and nil (written as an empty cell).
type Frame struct {
	columns []string
	rows    [][]interface{}
}

// New creates an empty frame with the given column names
func New(columns ...string) *Frame {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Frame{columns: cols}
}

// FromRecords builds a frame from string records, as produced by a CSV
// reader. Records shorter than the header are padded with empty strings,
// longer records are rejected.
func FromRecords(headers []string, records [][]string) (*Frame, error) {
	f := New(headers...)
	for i, record := range records {
		if len(record) > len(headers) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("record %d has %d fields, header has %d", i, len(record), len(headers)), nil)
		}
		row := make([]interface{}, len(headers))
		for j := range headers {
			if j < len(record) {
				row[j] = record[j]
			} else {
				row[j] = ""
			}
		}
		f.rows = append(f.rows, row)
	}
	return f, nil
}

// AppendRow adds one row to the frame. The number of cells must match the
// number of columns.
func (f *Frame) AppendRow(cells ...interface{}) error {
	if len(cells) != len(f.columns) {
		return apperrors.NewValidationError(
			fmt.Sprintf("row has %d cells, frame has %d columns", len(cells), len(f.columns)), nil)
	}
	row := make([]interface{}, len(cells))
	copy(row, cells)
	f.rows = append(f.rows, row)
	return nil
}

// Columns returns a copy of the column names in order
func (f *Frame) Columns() []string {
	cols := make([]string, len(f.columns))
	copy(cols, f.columns)
	return cols
}

// NumRows returns the number of data rows
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// NumCols returns the number of columns
func (f *Frame) NumCols() int {
	return len(f.columns)
}

// Row returns a copy of row i. It panics if i is out of range, matching
// slice indexing semantics.
func (f *Frame) Row(i int) []interface{} {
	row := make([]interface{}, len(f.rows[i]))
	copy(row, f.rows[i])
	return row
}

// Cell returns the value at row i, column name. The second return value is
// false if the column does not exist or the row is out of range.
func (f *Frame) Cell(i int, column string) (interface{}, bool) {
	if i < 0 || i >= len(f.rows) {
		return nil, false
	}
	for j, c := range f.columns {
		if c == column {
			return f.rows[i][j], true
		}
	}
	return nil, false
}
