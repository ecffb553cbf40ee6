package dataframe

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xlexport/internal/errors"
	"xlexport/internal/exporter"
)

func TestNew(t *testing.T) {
	f := New("ticker", "close_price")

	assert.Equal(t, []string{"ticker", "close_price"}, f.Columns())
	assert.Equal(t, 2, f.NumCols())
	assert.Equal(t, 0, f.NumRows())
}

func TestAppendRow(t *testing.T) {
	f := New("a", "b")

	require.NoError(t, f.AppendRow("1", "2"))
	require.NoError(t, f.AppendRow(3, 4.5))
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, []interface{}{"1", "2"}, f.Row(0))
	assert.Equal(t, []interface{}{3, 4.5}, f.Row(1))
}

func TestAppendRow_ArityMismatch(t *testing.T) {
	f := New("a", "b")

	err := f.AppendRow("only one")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, f.NumRows())
}

func TestFromRecords(t *testing.T) {
	f, err := FromRecords([]string{"a", "b"}, [][]string{
		{"1", "2"},
		{"3"}, // short record padded
	})
	require.NoError(t, err)

	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, []interface{}{"1", "2"}, f.Row(0))
	assert.Equal(t, []interface{}{"3", ""}, f.Row(1))
}

func TestFromRecords_TooManyFields(t *testing.T) {
	_, err := FromRecords([]string{"a"}, [][]string{{"1", "2"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestCell(t *testing.T) {
	f := New("a", "b")
	require.NoError(t, f.AppendRow("x", "y"))

	v, ok := f.Cell(0, "b")
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	_, ok = f.Cell(0, "missing")
	assert.False(t, ok)

	_, ok = f.Cell(5, "a")
	assert.False(t, ok)
}

func TestRow_ReturnsCopy(t *testing.T) {
	f := New("a")
	require.NoError(t, f.AppendRow("original"))

	row := f.Row(0)
	row[0] = "mutated"

	assert.Equal(t, []interface{}{"original"}, f.Row(0))
}

func TestReadCSV(t *testing.T) {
	input := "ticker,close_price\nBBOB,1.45\nBMNS,0.52\n"

	f, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"ticker", "close_price"}, f.Columns())
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, []interface{}{"BBOB", "1.45"}, f.Row(0))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestReadSheet_MissingFile(t *testing.T) {
	_, err := ReadSheet("/nonexistent/workbook.xlsx", "A")
	require.Error(t, err)
	assert.True(t, apperrors.IsIO(err))
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	f := New("ticker", "close_price")
	require.NoError(t, f.AppendRow("BBOB", "1.45"))
	require.NoError(t, f.AppendRow("BMNS", "0.52"))

	path, err := exporter.Export(context.Background(), []exporter.Tabular{f}, dir, "roundtrip", []string{"prices"}, nil)
	require.NoError(t, err)

	got, err := ReadSheet(path, "prices")
	require.NoError(t, err)

	assert.Equal(t, f.Columns(), got.Columns())
	require.Equal(t, f.NumRows(), got.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		assert.Equal(t, f.Row(i), got.Row(i))
	}
}

func TestReadSheet_MissingSheet(t *testing.T) {
	dir := t.TempDir()

	f := New("a")
	require.NoError(t, f.AppendRow("1"))

	path, err := exporter.Export(context.Background(), []exporter.Tabular{f}, dir, "wb", []string{"exists"}, nil)
	require.NoError(t, err)

	_, err = ReadSheet(path, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsBackend(err))
}
