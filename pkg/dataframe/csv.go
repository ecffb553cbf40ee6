package dataframe

import (
	"encoding/csv"
	"io"

	apperrors "xlexport/internal/errors"
)

// ReadCSV reads CSV content into a frame. The first record is taken as the
// column header; every remaining record becomes one string-typed row.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("CSV input is empty", nil)
	}

	return FromRecords(records[0], records[1:])
}
