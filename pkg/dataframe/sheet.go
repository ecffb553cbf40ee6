package dataframe

import (
	"xlexport/internal/exporter"
)

// WriteRows writes the frame's data rows into a sheet under construction,
// in order, satisfying exporter.Tabular. The header row is written by the
// exporter so that name prettifying stays in one place.
func (f *Frame) WriteRows(sheet *exporter.SheetWriter) error {
	for _, row := range f.rows {
		if err := sheet.AppendRow(row...); err != nil {
			return err
		}
	}
	return nil
}
