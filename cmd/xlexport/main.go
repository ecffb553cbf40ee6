package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"xlexport/internal/config"
	"xlexport/internal/exporter"
	"xlexport/internal/infrastructure"
	"xlexport/internal/validation"
	"xlexport/pkg/dataframe"
)

// sheetSpec pairs a sheet name with the CSV file that fills it
type sheetSpec struct {
	Name string
	Path string
}

// sheetFlags collects repeated -sheet NAME=input.csv flags in order
type sheetFlags []sheetSpec

func (s *sheetFlags) String() string {
	parts := make([]string, len(*s))
	for i, spec := range *s {
		parts[i] = spec.Name + "=" + spec.Path
	}
	return strings.Join(parts, ",")
}

func (s *sheetFlags) Set(value string) error {
	name, path, ok := strings.Cut(value, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("expected NAME=input.csv, got %q", value)
	}
	*s = append(*s, sheetSpec{Name: name, Path: path})
	return nil
}

func main() {
	var sheets sheetFlags
	outDir := flag.String("out", "", "output directory (defaults to config export.output_dir)")
	name := flag.String("name", "", "workbook base name without extension (defaults to config export.file_name)")
	configFile := flag.String("config", "", "path to YAML config file")
	friendly := flag.Bool("friendly", false, "prettify sheet names and header cells")
	index := flag.Bool("index", false, "write a leading column of row labels")
	flag.Var(&sheets, "sheet", "sheet to write, as NAME=input.csv (repeatable, order preserved)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if len(sheets) == 0 {
		logger.Error("No sheets specified",
			slog.String("hint", "pass at least one -sheet NAME=input.csv"))
		os.Exit(1)
	}

	if *outDir == "" {
		*outDir = cfg.Export.OutputDir
	}
	if *name == "" {
		*name = cfg.Export.FileName
	}

	logger.Info("Starting export",
		slog.String("output_dir", *outDir),
		slog.String("file_name", *name),
		slog.Int("sheet_count", len(sheets)))

	fileValidator := validation.NewFileValidator(logger)
	if err := fileValidator.ValidateOutputDirectory(*outDir); err != nil {
		logger.Error("Output directory validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	frames := make([]exporter.Tabular, 0, len(sheets))
	sheetNames := make([]string, 0, len(sheets))
	for _, spec := range sheets {
		if err := fileValidator.ValidateInputFile(spec.Path); err != nil {
			logger.Error("Input file validation failed",
				slog.String("path", spec.Path),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		frame, err := loadFrame(spec.Path)
		if err != nil {
			logger.Error("Failed to load input file",
				slog.String("path", spec.Path),
				slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("Loaded input file",
			slog.String("path", spec.Path),
			slog.String("sheet", spec.Name),
			slog.Int("rows", frame.NumRows()),
			slog.Int("columns", frame.NumCols()))

		frames = append(frames, frame)
		sheetNames = append(sheetNames, spec.Name)
	}

	opts := &exporter.Options{
		FriendlyNames: *friendly || cfg.Export.FriendlyNames,
		Index:         *index || cfg.Export.Index,
	}

	path, err := exporter.NewXLSXWriter(logger).Export(context.Background(), frames, *outDir, *name, sheetNames, opts)
	if err != nil {
		logger.Error("Export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Export complete",
		slog.String("path", path),
		slog.Int("sheet_count", len(frames)))
}

// loadFrame reads one CSV input file into a frame
func loadFrame(path string) (*dataframe.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dataframe.ReadCSV(f)
}
