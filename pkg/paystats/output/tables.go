package output

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

// Output file names.
const (
	FileT1      = "clean_t1.csv"
	FileT2      = "clean_t2.csv"
	FileT5      = "clean_t5.csv"
	FileShares  = "kpi_instrument_share.csv"
	FileDataset = "bnm_payments_powerbi.csv"
)

// Column headers of each output file.
var (
	HeadersT1      = []string{"year", "e_payments_per_capita"}
	HeadersT2      = []string{"period", "year", "instrument", "volume", "value", "avg_txn_value"}
	HeadersT5      = []string{"year", "pos_per_1000", "atm_per_1000"}
	HeadersShares  = []string{"year", "instrument", "volume", "value", "year_volume", "year_value", "volume_share", "value_share"}
	HeadersDataset = append(append([]string{}, HeadersT2...), "e_payments_per_capita", "pos_per_1000", "atm_per_1000")
)

// Files lists the output files in write order.
var Files = []string{FileT1, FileT2, FileT5, FileShares, FileDataset}

// WriteTables writes the five output files into dir.
func WriteTables(dir string, tables *models.Tables) error {
	w := NewCSVWriter(dir)

	files := []struct {
		name    string
		options WriteOptions
	}{
		{FileT1, WriteOptions{Headers: HeadersT1, Records: t1Records(tables.T1)}},
		{FileT2, WriteOptions{Headers: HeadersT2, Records: t2Records(tables.T2)}},
		{FileT5, WriteOptions{Headers: HeadersT5, Records: t5Records(tables.T5)}},
		{FileShares, WriteOptions{Headers: HeadersShares, Records: shareRecords(tables.Shares)}},
		{FileDataset, WriteOptions{Headers: HeadersDataset, Records: datasetRecords(tables.Dataset)}},
	}
	for _, file := range files {
		if err := w.WriteCSV(file.name, file.options); err != nil {
			return fmt.Errorf("write %s: %w", file.name, err)
		}
	}
	return nil
}

// FormatFloat renders a number without exponent or trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatNullable renders nil as an empty field.
func FormatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v)
}

func t1Records(series models.YearSeries) [][]string {
	records := make([][]string, len(series))
	for i, r := range series {
		records[i] = []string{strconv.Itoa(r.Year), FormatNullable(r.EPaymentsPerCapita)}
	}
	return records
}

func instrumentFields(r models.InstrumentRecord) []string {
	return []string{
		r.Period,
		strconv.Itoa(r.Year),
		r.Instrument,
		FormatNullable(r.Volume),
		FormatNullable(r.Value),
		FormatNullable(r.AvgTxnValue),
	}
}

func t2Records(rows []models.InstrumentRecord) [][]string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = instrumentFields(r)
	}
	return records
}

func t5Records(series models.InfrastructureSeries) [][]string {
	records := make([][]string, len(series))
	for i, r := range series {
		records[i] = []string{strconv.Itoa(r.Year), FormatNullable(r.POSPer1000), FormatNullable(r.ATMPer1000)}
	}
	return records
}

func shareRecords(rows []models.ShareRecord) [][]string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.Itoa(r.Year),
			r.Instrument,
			FormatFloat(r.Volume),
			FormatFloat(r.Value),
			FormatFloat(r.YearVolume),
			FormatFloat(r.YearValue),
			FormatNullable(r.VolumeShare),
			FormatNullable(r.ValueShare),
		}
	}
	return records
}

func datasetRecords(rows []models.DatasetRecord) [][]string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = append(instrumentFields(r.InstrumentRecord),
			FormatNullable(r.EPaymentsPerCapita),
			FormatNullable(r.POSPer1000),
			FormatNullable(r.ATMPer1000),
		)
	}
	return records
}
