// Package exporter writes in-memory tabular frames to named sheets of a
// single xlsx workbook.
//
// The central operation is XLSXWriter.Export, which validates the request
// (frame count must equal sheet-name count, sheet names must satisfy Excel
// constraints and be unique), then writes one sheet per frame in input
// order. The workbook is assembled in memory and saved through a
// temporary-file-then-rename step, so a failed export never leaves a
// partial workbook at the target path.
//
// Example usage:
//
//	frames := []exporter.Tabular{df1, df2}
//	path, err := exporter.Export(ctx, frames, "data/exports", "report",
//		[]string{"summary", "detail"}, &exporter.Options{FriendlyNames: true})
//
// Error conditions are reported through the internal/errors taxonomy:
// malformed requests surface as validation errors before any I/O is
// attempted, filesystem failures as IO errors, and failures from the
// excelize backend as backend errors with the cause attached.
package exporter
