package paystats

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/paystats-go/pkg/paystats/output"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path, sheet string, cells map[string]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	require.NoError(t, f.SaveAs(path))
}

func t1Cells() map[string]any {
	return map[string]any{
		"A1": "Table 1: Transactions per capita",
		"D3": 2020, "E3": 2021, "F3": 2022,
		"B4": "Cheques", "D4": 3.1, "E4": 2.8, "F4": 2.2,
		"B5": "E-payments per capita", "D5": 180.5, "E5": 210.3, "F5": 245.0,
	}
}

func t2Cells() map[string]any {
	return map[string]any{
		"A1": "Table 2.1", "B1": "Payment Instruments",
		"C2": "Credit Card1", "E2": "Internet Banking2",
		"C3": "RM million",
		"B4": "Period", "C4": "Volume", "D4": "Value", "E4": "Volume", "F4": "Value",
		"B5": 2020, "C5": 400, "D5": 50, "E5": 600, "F5": 150,
		"B6": "2021", "C6": 420, "D6": 55, "E6": 680, "F6": 170,
		"B7": "2022 (p)", "C7": 450, "D7": 60, "E7": 750, "F7": 190,
		"B8": "Growth (%)", "C8": 7.1, "D8": 9.0, "E8": 10.2, "F8": 11.7,
		"B10": "Source: central bank",
	}
}

func t5Cells() map[string]any {
	return map[string]any{
		"A1": "Table 5",
		"C3": "EFTPOS", "F3": "ATM",
		"C4": "2020", "D4": "2021", "E4": "2022", "F4": "2021", "G4": "2022",
		"C6": 900000, "D6": 950000, "E6": 1000000, "F6": 11000, "G6": 10800,
		"C8": 27.6, "D8": 29.0, "E8": 30.4, "F8": 14.8, "G8": 14.5,
	}
}

func setupInputs(t *testing.T, t2 map[string]any) (Options, string) {
	t.Helper()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "processed_data")

	opts := DefaultOptions()
	opts.InputDir = in
	opts.OutputDir = out
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	writeWorkbook(t, filepath.Join(in, opts.T1.File), opts.T1.Sheet, t1Cells())
	writeWorkbook(t, filepath.Join(in, opts.T2.File), opts.T2.Sheet, t2)
	writeWorkbook(t, filepath.Join(in, opts.T5.File), opts.T5.Sheet, t5Cells())
	return opts, out
}

func TestExtract(t *testing.T) {
	opts, _ := setupInputs(t, t2Cells())

	tables, err := Extract(opts)
	require.NoError(t, err)

	require.Len(t, tables.T1, 3)
	assert.Equal(t, 2020, tables.T1[0].Year)
	assert.Equal(t, 180.5, *tables.T1[0].EPaymentsPerCapita)

	// two instruments, three periods with a year
	require.Len(t, tables.T2, 6)
	assert.Equal(t, "Credit Card", tables.T2[0].Instrument)
	assert.Equal(t, "2022 (p)", tables.T2[2].Period)
	assert.Equal(t, 2022, tables.T2[2].Year)
	assert.Equal(t, 50000000.0, *tables.T2[0].Value)
	assert.Equal(t, 125000.0, *tables.T2[0].AvgTxnValue)
	assert.Equal(t, "Internet Banking", tables.T2[3].Instrument)

	require.Len(t, tables.T5, 3)
	assert.Equal(t, 2020, tables.T5[0].Year)
	assert.Nil(t, tables.T5[0].ATMPer1000)
	assert.Equal(t, 14.5, *tables.T5[2].ATMPer1000)

	assert.Len(t, tables.Shares, 6)
	assert.Len(t, tables.Dataset, len(tables.T2))
	assert.Equal(t, 180.5, *tables.Dataset[0].EPaymentsPerCapita)
	assert.Equal(t, 27.6, *tables.Dataset[0].POSPer1000)
}

func TestRun(t *testing.T) {
	opts, out := setupInputs(t, t2Cells())

	summary, err := Run(opts)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, []int{2020, 2021, 2022}, summary.Years)
	assert.Equal(t, []string{"Credit Card", "Internet Banking"}, summary.Instruments)
	assert.Equal(t, 6, summary.Rows[output.FileDataset])
	for _, name := range output.Files {
		assert.FileExists(t, filepath.Join(out, name))
	}
}

func TestRunIdempotent(t *testing.T) {
	opts, out := setupInputs(t, t2Cells())

	_, err := Run(opts)
	require.NoError(t, err)
	first := map[string][]byte{}
	for _, name := range output.Files {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)
		first[name] = data
	}

	_, err = Run(opts)
	require.NoError(t, err)
	for _, name := range output.Files {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)
		assert.Equal(t, string(first[name]), string(data), name)
	}
}

func TestRunStructuralFailureWritesNothing(t *testing.T) {
	broken := t2Cells()
	delete(broken, "E4")
	delete(broken, "F4")
	opts, out := setupInputs(t, broken)

	_, err := Run(opts)
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, TableT2, extractionErr.Table)
	assert.Equal(t, "detect", extractionErr.Step)
	assert.ErrorIs(t, err, ErrHeaderNotFound)
	assert.True(t, IsStructural(err))
	assert.Contains(t, err.Error(), "table T2")

	assert.NoDirExists(t, out)
}

func TestRunMissingFile(t *testing.T) {
	opts, _ := setupInputs(t, t2Cells())
	opts.T5.File = "missing.xlsx"

	_, err := Run(opts)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.False(t, IsStructural(err))
}

func TestRunMissingSheet(t *testing.T) {
	opts, _ := setupInputs(t, t2Cells())
	opts.T1.Sheet = "Summary"

	_, err := Run(opts)
	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, TableT1, extractionErr.Table)
	assert.Equal(t, "load", extractionErr.Step)
}

func TestRunInvalidWorkbook(t *testing.T) {
	opts, _ := setupInputs(t, t2Cells())
	require.NoError(t, os.WriteFile(filepath.Join(opts.InputDir, opts.T1.File), []byte("not a workbook"), 0644))

	_, err := Run(opts)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTransformLogsSectionTotals(t *testing.T) {
	opts, _ := setupInputs(t, t2Cells())
	var buf bytes.Buffer
	opts.Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Extract(opts)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"section":"EFTPOS"`)
	assert.Contains(t, logs, `"totals":{"2020":900000,"2021":950000,"2022":1000000}`)
	assert.Contains(t, logs, `"totals":{"2021":11000,"2022":10800}`)
	assert.Contains(t, logs, `"data_rows":4`)
}

func TestRunLogsStructuralFailure(t *testing.T) {
	broken := t2Cells()
	delete(broken, "E4")
	delete(broken, "F4")
	opts, _ := setupInputs(t, broken)
	var buf bytes.Buffer
	opts.Logger = slog.New(slog.NewJSONHandler(&buf, nil))

	_, err := Run(opts)
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"structural":true`)
}
