// Package dataframe provides the in-memory tabular frame exported to
// workbook sheets: ordered named columns by rows of opaque cell values.
// Frames can be built directly, from CSV input, or read back from a
// workbook sheet for verification.
package dataframe
