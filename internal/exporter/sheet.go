package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "xlexport/internal/errors"
)

// Tabular is the capability the exporter requires of a table: it exposes
// its column names and writes its own rows into a sheet under construction.
// dataframe.Frame implements it; any other table representation can be
// exported by satisfying this interface.
type Tabular interface {
	Columns() []string
	WriteRows(sheet *SheetWriter) error
}

// SheetWriter appends rows to one sheet of a workbook under construction.
// It tracks the widest value seen per column so the exporter can size
// columns after the data is written.
type SheetWriter struct {
	file    *excelize.File
	sheet   string
	next    int // next 1-based worksheet row
	index   bool
	dataRow int // 0-based label for the next data row
	widths  []int
}

func newSheetWriter(file *excelize.File, sheet string, index bool) *SheetWriter {
	return &SheetWriter{
		file:  file,
		sheet: sheet,
		next:  1,
		index: index,
	}
}

// AppendRow writes one data row to the sheet, in order, with no
// transformation of the values. When row labels are enabled a 0-based row
// number is prepended.
func (w *SheetWriter) AppendRow(cells ...interface{}) error {
	row := make([]interface{}, 0, len(cells)+1)
	if w.index {
		row = append(row, w.dataRow)
	}
	row = append(row, cells...)

	if err := w.setRow(row); err != nil {
		return err
	}
	w.dataRow++
	return nil
}

// writeHeader writes the header row. With row labels enabled the label
// column gets an empty header cell, matching common tabular export output.
func (w *SheetWriter) writeHeader(columns []string) error {
	row := make([]interface{}, 0, len(columns)+1)
	if w.index {
		row = append(row, "")
	}
	for _, c := range columns {
		row = append(row, c)
	}
	return w.setRow(row)
}

func (w *SheetWriter) setRow(row []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		return apperrors.NewBackendError(fmt.Sprintf("invalid coordinates for row %d", w.next), err)
	}
	if err := w.file.SetSheetRow(w.sheet, cell, &row); err != nil {
		return apperrors.NewBackendError(
			fmt.Sprintf("failed to write row %d of sheet %q", w.next, w.sheet), err)
	}
	for i, v := range row {
		if len(w.widths) <= i {
			w.widths = append(w.widths, 0)
		}
		if width := cellWidth(v); width > w.widths[i] {
			w.widths[i] = width
		}
	}
	w.next++
	return nil
}

// applyAutoFilter adds a filter over the written region, header included.
// A sheet with no written columns is left untouched.
func (w *SheetWriter) applyAutoFilter() error {
	if w.next <= 1 || len(w.widths) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(w.widths), w.next-1)
	if err != nil {
		return apperrors.NewBackendError(
			fmt.Sprintf("invalid filter region on sheet %q", w.sheet), err)
	}
	if err := w.file.AutoFilter(w.sheet, "A1:"+end, nil); err != nil {
		return apperrors.NewBackendError(
			fmt.Sprintf("failed to add autofilter on sheet %q", w.sheet), err)
	}
	return nil
}

// applyColumnWidths sizes each written column to its widest value plus
// padding, capped at the excelize column width limit.
func (w *SheetWriter) applyColumnWidths() error {
	for i, width := range w.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return apperrors.NewBackendError(fmt.Sprintf("invalid column number %d", i+1), err)
		}
		target := float64(width + colWidthPadding)
		if target > maxColWidth {
			target = maxColWidth
		}
		if err := w.file.SetColWidth(w.sheet, col, col, target); err != nil {
			return apperrors.NewBackendError(
				fmt.Sprintf("failed to set width of column %s on sheet %q", col, w.sheet), err)
		}
	}
	return nil
}
