// Package paystats extracts the digital payments statistics tables from their
// spreadsheet reports, derives the share KPIs and exports flat CSV files.
package paystats

import (
	"log/slog"

	"github.com/ukaji3/paystats-go/pkg/paystats/extractor"
)

// Table identifiers used in errors and logs.
const (
	TableT1 = "T1"
	TableT2 = "T2"
	TableT5 = "T5"
)

// Source names one report workbook and the sheet to read from it.
type Source struct {
	// File is the workbook path, relative to Options.InputDir unless absolute.
	File string
	// Sheet is the worksheet name.
	Sheet string
}

// Options configures an ETL run.
type Options struct {
	// InputDir holds the three report workbooks.
	InputDir string
	// OutputDir receives the CSV files.
	OutputDir string
	// T1, T2 and T5 locate the per-capita, instrument and infrastructure reports.
	T1 Source
	T2 Source
	T5 Source
	// PerCapita, Instruments and Infrastructure tune the layout heuristics.
	PerCapita      extractor.PerCapitaOptions
	Instruments    extractor.InstrumentOptions
	Infrastructure extractor.InfrastructureOptions
	// Logger receives progress and warnings. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns the options matching the published report files.
func DefaultOptions() Options {
	return Options{
		InputDir:  ".",
		OutputDir: ".",
		T1: Source{
			File:  "T1 - Transactions Per Capita.xlsx",
			Sheet: "T1 - Transactions Per Capita",
		},
		T2: Source{
			File:  "T2 - Payment Instruments.xlsx",
			Sheet: "T2.1 - Volume & Value",
		},
		T5: Source{
			File:  "T5 - EFTPOS Terminal & ATM.xlsx",
			Sheet: "T5 - EFTPOS Terminal & ATM",
		},
		PerCapita:      extractor.DefaultPerCapitaOptions(),
		Instruments:    extractor.DefaultInstrumentOptions(),
		Infrastructure: extractor.DefaultInfrastructureOptions(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
