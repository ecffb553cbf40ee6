package gsheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	apperrors "xlexport/internal/errors"
)

// Table is the view of a frame the uploader needs: column names plus
// row-by-row access. dataframe.Frame satisfies it.
type Table interface {
	Columns() []string
	NumRows() int
	Row(i int) []interface{}
}

// UploadOptions configures a single upload
type UploadOptions struct {
	// SpreadsheetID targets an existing spreadsheet. Ignored when
	// CreateSpreadsheet is set.
	SpreadsheetID string
	// CreateSpreadsheet creates a new spreadsheet titled SpreadsheetTitle
	// and uploads into it.
	CreateSpreadsheet bool
	// SpreadsheetTitle is the title for a newly created spreadsheet.
	SpreadsheetTitle string
	// SheetName selects the worksheet to write. It is created if missing.
	// Empty selects the spreadsheet's first worksheet.
	SheetName string
	// Clear empties the worksheet before writing. Only meaningful for
	// existing worksheets.
	Clear bool
}

// UploadResult reports what the Sheets API confirmed it wrote
type UploadResult struct {
	SpreadsheetID string
	SheetName     string
	UpdatedRows   int64
	UpdatedCells  int64
}

// Uploader writes one frame into a worksheet of a Google spreadsheet
type Uploader struct {
	service *sheets.Service
	logger  *slog.Logger
}

// NewUploader creates an uploader authenticated with a service-account
// credentials JSON file.
func NewUploader(ctx context.Context, credentialsFile string, logger *slog.Logger) (*Uploader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, apperrors.NewIOError(
			fmt.Sprintf("failed to read credentials file %s", credentialsFile), err)
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, apperrors.NewBackendError("failed to create Google Sheets service", err)
	}

	return &Uploader{service: service, logger: logger}, nil
}

// Upload writes the table's header row and data rows into the selected
// worksheet, starting at A1. Values are sent RAW, with no interpretation
// by the Sheets API.
func (u *Uploader) Upload(ctx context.Context, table Table, opts UploadOptions) (*UploadResult, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	u.logger.Info("Uploading frame to Google Sheets",
		slog.Int("columns", len(table.Columns())),
		slog.Int("rows", table.NumRows()),
		slog.Bool("create_spreadsheet", opts.CreateSpreadsheet))

	spreadsheetID := opts.SpreadsheetID
	if opts.CreateSpreadsheet {
		created, err := u.service.Spreadsheets.Create(&sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{Title: opts.SpreadsheetTitle},
		}).Context(ctx).Do()
		if err != nil {
			return nil, apperrors.NewBackendError(
				fmt.Sprintf("failed to create spreadsheet %q", opts.SpreadsheetTitle), err)
		}
		spreadsheetID = created.SpreadsheetId
		u.logger.Info("Created spreadsheet",
			slog.String("spreadsheet_id", spreadsheetID),
			slog.String("title", opts.SpreadsheetTitle))
	}

	sheetName, err := u.resolveWorksheet(ctx, spreadsheetID, opts.SheetName)
	if err != nil {
		return nil, err
	}

	if opts.Clear && !opts.CreateSpreadsheet {
		_, err := u.service.Spreadsheets.Values.Clear(spreadsheetID, quoteSheetTitle(sheetName), &sheets.ClearValuesRequest{}).
			Context(ctx).Do()
		if err != nil {
			return nil, apperrors.NewBackendError(
				fmt.Sprintf("failed to clear worksheet %q", sheetName), err)
		}
	}

	valueRange := &sheets.ValueRange{Values: tableValues(table)}
	updateRange := updateRangeFor(sheetName)

	resp, err := u.service.Spreadsheets.Values.Update(spreadsheetID, updateRange, valueRange).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewBackendError(
			fmt.Sprintf("failed to update worksheet %q", sheetName), err)
	}

	u.logger.Info("Upload complete",
		slog.String("spreadsheet_id", spreadsheetID),
		slog.String("sheet_name", sheetName),
		slog.Int64("updated_rows", resp.UpdatedRows),
		slog.Int64("updated_cells", resp.UpdatedCells))

	return &UploadResult{
		SpreadsheetID: spreadsheetID,
		SheetName:     sheetName,
		UpdatedRows:   resp.UpdatedRows,
		UpdatedCells:  resp.UpdatedCells,
	}, nil
}

// resolveWorksheet finds the target worksheet, creating it when a named
// worksheet does not exist yet. An empty name selects the first worksheet.
func (u *Uploader) resolveWorksheet(ctx context.Context, spreadsheetID, name string) (string, error) {
	spreadsheet, err := u.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", apperrors.NewBackendError(
			fmt.Sprintf("failed to open spreadsheet %s", spreadsheetID), err)
	}
	if name == "" {
		if len(spreadsheet.Sheets) == 0 {
			return "", apperrors.NewBackendError(
				fmt.Sprintf("spreadsheet %s has no worksheets", spreadsheetID), nil)
		}
		return spreadsheet.Sheets[0].Properties.Title, nil
	}

	for _, s := range spreadsheet.Sheets {
		if s.Properties.Title == name {
			return name, nil
		}
	}

	_, err = u.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", apperrors.NewBackendError(
			fmt.Sprintf("failed to add worksheet %q", name), err)
	}

	u.logger.Info("Created worksheet",
		slog.String("spreadsheet_id", spreadsheetID),
		slog.String("sheet_name", name))
	return name, nil
}

// quoteSheetTitle wraps a worksheet title in A1-notation quotes, escaping
// embedded apostrophes by doubling them. Titles containing spaces or other
// non-alphanumerics are rejected by the Sheets API unquoted; quoting is
// accepted for every title.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// updateRangeFor returns the A1 range addressing the top-left cell of the
// named worksheet
func updateRangeFor(sheetName string) string {
	return quoteSheetTitle(sheetName) + "!A1"
}

func validateOptions(opts UploadOptions) error {
	if opts.CreateSpreadsheet {
		if opts.SpreadsheetTitle == "" {
			return apperrors.NewValidationError("spreadsheet title is required when creating a spreadsheet", nil)
		}
		return nil
	}
	if opts.SpreadsheetID == "" {
		return apperrors.NewValidationError("spreadsheet ID is required", nil)
	}
	return nil
}

// tableValues converts the table into the header-plus-rows shape the
// Sheets API accepts
func tableValues(table Table) [][]interface{} {
	columns := table.Columns()
	values := make([][]interface{}, 0, table.NumRows()+1)

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	values = append(values, header)

	for i := 0; i < table.NumRows(); i++ {
		row := table.Row(i)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = coerceValue(v)
		}
		values = append(values, cells)
	}
	return values
}

// coerceValue maps cell values onto types the Sheets API serializes
// cleanly. Missing values become empty strings, mirroring a fillna("")
// before upload.
func coerceValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	default:
		return val
	}
}
