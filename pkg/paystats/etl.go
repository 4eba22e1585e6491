package paystats

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/ukaji3/paystats-go/pkg/paystats/aggregate"
	"github.com/ukaji3/paystats-go/pkg/paystats/extractor"
	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/output"
	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
	"github.com/xuri/excelize/v2"
)

// Sheets holds the three raw report grids.
type Sheets struct {
	T1 *models.RawSheet
	T2 *models.RawSheet
	T5 *models.RawSheet
}

// Summary describes a completed run.
type Summary struct {
	RunID       string         `json:"run_id"`
	OutputDir   string         `json:"output_dir"`
	Files       []string       `json:"files"`
	Rows        map[string]int `json:"rows"`
	Years       []int          `json:"years"`
	Instruments []string       `json:"instruments"`
}

// Run extracts all tables and writes the CSV files. Nothing is written
// unless every table was extracted.
func Run(opts Options) (*Summary, error) {
	runID := uuid.NewString()
	logger := opts.logger().With(slog.String("run_id", runID))
	opts.Logger = logger

	logger.Info("ETL run started",
		slog.String("input_dir", opts.InputDir),
		slog.String("output_dir", opts.OutputDir))

	tables, err := Extract(opts)
	if err != nil {
		logger.Error("ETL run failed",
			slog.String("error", err.Error()),
			slog.Bool("structural", IsStructural(err)))
		return nil, err
	}

	if err := output.WriteTables(opts.OutputDir, tables); err != nil {
		return nil, NewExtractionError("all", "export", err)
	}

	summary := summarize(runID, opts.OutputDir, tables)
	logger.Info("ETL run completed",
		slog.Int("files", len(summary.Files)),
		slog.Int("dataset_rows", len(tables.Dataset)))
	return summary, nil
}

// Extract loads the three workbooks and builds every table.
func Extract(opts Options) (*models.Tables, error) {
	var sheets Sheets
	var err error
	if sheets.T1, err = loadSource(opts, TableT1, opts.T1, true); err != nil {
		return nil, err
	}
	if sheets.T2, err = loadSource(opts, TableT2, opts.T2, true); err != nil {
		return nil, err
	}
	if sheets.T5, err = loadSource(opts, TableT5, opts.T5, false); err != nil {
		return nil, err
	}
	return Transform(sheets, opts)
}

// Transform runs the extractors and the aggregator over already loaded
// sheets, in dependency order.
func Transform(sheets Sheets, opts Options) (*models.Tables, error) {
	logger := opts.logger()

	t1, err := extractor.PerCapita(sheets.T1, opts.PerCapita)
	if err != nil {
		return nil, NewExtractionError(TableT1, "detect", err)
	}
	logger.Info("Extracted per-capita series", slog.String("table", TableT1), slog.Int("rows", len(t1)))

	t2, layout, err := extractor.InstrumentsWithLayout(sheets.T2, opts.Instruments)
	if err != nil {
		return nil, NewExtractionError(TableT2, "detect", err)
	}
	if layout.PeriodFallback {
		logger.Warn("Period column header not found, using default column",
			slog.String("table", TableT2),
			slog.String("header", opts.Instruments.PeriodHeader),
			slog.Int("column", layout.PeriodCol))
	}
	logger.Info("Extracted instrument table",
		slog.String("table", TableT2),
		slog.Int("metric_row", layout.MetricRow),
		slog.Int("period_col", layout.PeriodCol),
		slog.Int("data_rows", layout.DataRows.Len()),
		slog.Int("dropped_rows", layout.DroppedRows),
		slog.Int("rows", len(t2)))

	sections, err := extractor.Sections(sheets.T5, opts.Infrastructure)
	if err != nil {
		return nil, NewExtractionError(TableT5, "detect", err)
	}
	for _, s := range sections {
		logger.Debug("Located infrastructure section",
			slog.String("table", TableT5),
			slog.String("section", s.Label),
			slog.Int("start_col", s.Columns.Start),
			slog.Int("end_col", s.Columns.End),
			slog.Int("columns", s.Columns.Len()),
			slog.Int("years", len(s.Years)),
			slog.Any("totals", sectionTotals(s)))
	}
	t5 := extractor.MergeSections(sections)
	logger.Info("Extracted infrastructure series", slog.String("table", TableT5), slog.Int("rows", len(t5)))

	return &models.Tables{
		T1:      t1,
		T2:      t2,
		T5:      t5,
		Shares:  aggregate.Shares(t2),
		Dataset: aggregate.Join(t2, t1, t5),
	}, nil
}

// sectionTotals maps each year of s to its absolute count, skipping blanks.
func sectionTotals(s extractor.Section) map[string]float64 {
	totals := make(map[string]float64, len(s.Years))
	for _, y := range s.Years {
		if y.Total != nil {
			totals[strconv.Itoa(y.Year)] = *y.Total
		}
	}
	return totals
}

func loadSource(opts Options, table string, src Source, withHeader bool) (*models.RawSheet, error) {
	path := src.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.InputDir, path)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewExtractionError(table, "open", fmt.Errorf("%w: %s", ErrFileNotFound, path))
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewExtractionError(table, "open", fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err))
	}
	defer f.Close()

	sheet, err := parser.LoadSheet(f, src.Sheet, withHeader)
	if err != nil {
		return nil, NewExtractionError(table, "load", fmt.Errorf("sheet %q: %w", src.Sheet, err))
	}
	opts.logger().Debug("Loaded sheet",
		slog.String("table", table),
		slog.String("file", path),
		slog.String("sheet", src.Sheet),
		slog.Int("rows", sheet.Height()),
		slog.Int("cols", sheet.Width()))
	return sheet, nil
}

func summarize(runID, dir string, tables *models.Tables) *Summary {
	files := make([]string, len(output.Files))
	for i, name := range output.Files {
		files[i] = filepath.Join(dir, name)
	}

	years := map[int]bool{}
	instruments := map[string]bool{}
	for _, r := range tables.T2 {
		years[r.Year] = true
		instruments[r.Instrument] = true
	}
	summary := &Summary{
		RunID:     runID,
		OutputDir: dir,
		Files:     files,
		Rows: map[string]int{
			output.FileT1:      len(tables.T1),
			output.FileT2:      len(tables.T2),
			output.FileT5:      len(tables.T5),
			output.FileShares:  len(tables.Shares),
			output.FileDataset: len(tables.Dataset),
		},
		Years:       make([]int, 0, len(years)),
		Instruments: make([]string, 0, len(instruments)),
	}
	for y := range years {
		summary.Years = append(summary.Years, y)
	}
	for name := range instruments {
		summary.Instruments = append(summary.Instruments, name)
	}
	sort.Ints(summary.Years)
	sort.Strings(summary.Instruments)
	return summary
}
