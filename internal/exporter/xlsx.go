package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	apperrors "xlexport/internal/errors"
)

// defaultSheetName is the sheet excelize creates in a new workbook
const defaultSheetName = "Sheet1"

// Options configures workbook export behavior
type Options struct {
	// FriendlyNames prettifies sheet names and header cells, turning
	// "median_income" into "Median Income". Off by default.
	FriendlyNames bool
	// TabNames maps a sheet name to the tab name to use instead, for
	// sheets whose tab should differ from the supplied name.
	TabNames map[string]string
	// Index writes a leading column of 0-based row labels. Off by default.
	Index bool
	// AutoFilter adds a filter dropdown over each sheet's written region,
	// header row included. Off by default.
	AutoFilter bool
}

// XLSXWriter writes frames to sheets of a single xlsx workbook
type XLSXWriter struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewXLSXWriter creates a new workbook writer. A nil logger falls back to
// the default slog logger.
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{
		logger:   logger,
		validate: validator.New(),
	}
}

// exportRequest carries one export call's arguments through validation
type exportRequest struct {
	Frames     []Tabular `validate:"required,min=1"`
	Directory  string    `validate:"required"`
	FileName   string    `validate:"required"`
	SheetNames []string  `validate:"required,min=1,dive,required"`
}

// Export writes each frame to the correspondingly named sheet of a single
// workbook at {directory}/{fileName}.xlsx, creating the directory if
// needed. Sheets appear in the order the frames are supplied. The workbook
// is written to a temporary file and renamed into place, so a failure
// never leaves a partial file at the target path. The final path is
// returned on success.
func (w *XLSXWriter) Export(ctx context.Context, frames []Tabular, directory, fileName string, sheetNames []string, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}

	req := exportRequest{
		Frames:     frames,
		Directory:  directory,
		FileName:   fileName,
		SheetNames: sheetNames,
	}
	if err := w.validate.Struct(req); err != nil {
		return "", apperrors.NewValidationError("invalid export request", err)
	}
	if len(frames) != len(sheetNames) {
		return "", apperrors.NewValidationError("frame count must equal sheet-name count", nil).
			WithContext("frames", len(frames)).
			WithContext("sheet_names", len(sheetNames))
	}

	resolved, err := resolveSheetNames(sheetNames, opts)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	w.logger.Info("Writing workbook",
		slog.String("directory", directory),
		slog.String("file_name", fileName),
		slog.Int("sheet_count", len(frames)))

	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", apperrors.NewIOError(
			fmt.Sprintf("failed to create output directory %s", directory), err)
	}

	f, err := buildWorkbook(ctx, frames, resolved, opts)
	if err != nil {
		return "", err
	}
	defer f.Close()

	finalPath := filepath.Join(directory, fileName+".xlsx")
	tmpPath := filepath.Join(directory, fmt.Sprintf(".%s.%s.tmp", fileName, uuid.NewString()))

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", apperrors.NewIOError(fmt.Sprintf("failed to write workbook to %s", tmpPath), err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", apperrors.NewIOError(fmt.Sprintf("failed to move workbook into place at %s", finalPath), err)
	}

	w.logger.Info("Workbook written",
		slog.String("path", finalPath),
		slog.Int("sheet_count", len(frames)))

	return finalPath, nil
}

// buildWorkbook assembles the workbook in memory. Nothing touches the
// filesystem until the caller saves the returned file.
func buildWorkbook(ctx context.Context, frames []Tabular, sheetNames []string, opts *Options) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, name := range sheetNames {
		if err := ctx.Err(); err != nil {
			f.Close()
			return nil, err
		}

		if i == 0 {
			if name != defaultSheetName {
				if err := f.SetSheetName(defaultSheetName, name); err != nil {
					f.Close()
					return nil, apperrors.NewBackendError(fmt.Sprintf("failed to name sheet %q", name), err)
				}
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				f.Close()
				return nil, apperrors.NewBackendError(fmt.Sprintf("failed to create sheet %q", name), err)
			}
		}

		if err := writeSheet(f, name, frames[i], opts); err != nil {
			f.Close()
			return nil, err
		}
	}

	if idx, err := f.GetSheetIndex(sheetNames[0]); err == nil {
		f.SetActiveSheet(idx)
	}

	return f, nil
}

// writeSheet writes one frame's header and rows into the named sheet
func writeSheet(f *excelize.File, sheet string, frame Tabular, opts *Options) error {
	sw := newSheetWriter(f, sheet, opts.Index)

	columns := frame.Columns()
	if opts.FriendlyNames {
		for i, c := range columns {
			columns[i] = Friendlize(c)
		}
	}
	if err := sw.writeHeader(columns); err != nil {
		return err
	}

	if err := frame.WriteRows(sw); err != nil {
		return err
	}

	if opts.AutoFilter {
		if err := sw.applyAutoFilter(); err != nil {
			return err
		}
	}

	return sw.applyColumnWidths()
}

// Export writes frames to {directory}/{fileName}.xlsx using the default
// logger. See XLSXWriter.Export.
func Export(ctx context.Context, frames []Tabular, directory, fileName string, sheetNames []string, opts *Options) (string, error) {
	return NewXLSXWriter(nil).Export(ctx, frames, directory, fileName, sheetNames, opts)
}
