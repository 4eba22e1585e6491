package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

// columns maps header names to field positions and fails on missing ones.
type columns struct {
	file  string
	index map[string]int
}

func newColumns(file string, header []string, required []string) (*columns, error) {
	cols := &columns{file: file, index: make(map[string]int, len(header))}
	for i, name := range header {
		cols.index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols.index[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", file, name)
		}
	}
	return cols, nil
}

func (c *columns) text(record []string, name string) string {
	i := c.index[name]
	if i >= len(record) {
		return ""
	}
	return record[i]
}

func (c *columns) year(record []string, line int) (int, error) {
	year, err := strconv.Atoi(c.text(record, "year"))
	if err != nil {
		return 0, fmt.Errorf("%s line %d: invalid year: %w", c.file, line, err)
	}
	return year, nil
}

func (c *columns) number(record []string, name string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.text(record, name)), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ReadT1 reads clean_t1.csv from dir.
func ReadT1(dir string) (models.YearSeries, error) {
	header, records, err := NewCSVWriter(dir).ReadCSV(FileT1)
	if err != nil {
		return nil, err
	}
	cols, err := newColumns(FileT1, header, HeadersT1)
	if err != nil {
		return nil, err
	}

	series := make(models.YearSeries, 0, len(records))
	for i, record := range records {
		year, err := cols.year(record, i+2)
		if err != nil {
			return nil, err
		}
		series = append(series, models.PerCapitaRecord{
			Year:               year,
			EPaymentsPerCapita: cols.number(record, "e_payments_per_capita"),
		})
	}
	return series, nil
}

// ReadT2 reads clean_t2.csv from dir.
func ReadT2(dir string) ([]models.InstrumentRecord, error) {
	header, records, err := NewCSVWriter(dir).ReadCSV(FileT2)
	if err != nil {
		return nil, err
	}
	cols, err := newColumns(FileT2, header, HeadersT2)
	if err != nil {
		return nil, err
	}

	rows := make([]models.InstrumentRecord, 0, len(records))
	for i, record := range records {
		year, err := cols.year(record, i+2)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.InstrumentRecord{
			Period:      cols.text(record, "period"),
			Year:        year,
			Instrument:  cols.text(record, "instrument"),
			Volume:      cols.number(record, "volume"),
			Value:       cols.number(record, "value"),
			AvgTxnValue: cols.number(record, "avg_txn_value"),
		})
	}
	return rows, nil
}

// ReadT5 reads clean_t5.csv from dir.
func ReadT5(dir string) (models.InfrastructureSeries, error) {
	header, records, err := NewCSVWriter(dir).ReadCSV(FileT5)
	if err != nil {
		return nil, err
	}
	cols, err := newColumns(FileT5, header, HeadersT5)
	if err != nil {
		return nil, err
	}

	series := make(models.InfrastructureSeries, 0, len(records))
	for i, record := range records {
		year, err := cols.year(record, i+2)
		if err != nil {
			return nil, err
		}
		series = append(series, models.InfrastructureRecord{
			Year:       year,
			POSPer1000: cols.number(record, "pos_per_1000"),
			ATMPer1000: cols.number(record, "atm_per_1000"),
		})
	}
	return series, nil
}
