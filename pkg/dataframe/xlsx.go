package dataframe

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "xlexport/internal/errors"
)

// ReadSheet reads one sheet of a workbook back into a string-typed frame.
// The first row is taken as the column header. Rows shorter than the header
// are padded with empty strings, matching how Excel represents trailing
// blank cells.
func ReadSheet(path, sheetName string) (*Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, apperrors.NewBackendError(fmt.Sprintf("failed to read sheet %q", sheetName), err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %q has no rows", sheetName), nil)
	}

	return FromRecords(rows[0], rows[1:])
}
