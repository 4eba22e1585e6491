package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
)

const (
	metricVolume = "volume"
	metricValue  = "value"
)

// InstrumentOptions locates the T2.1 volume/value band inside its sheet.
type InstrumentOptions struct {
	// HeaderScanRows bounds the search for the metric row.
	HeaderScanRows int
	// MinMetricCells is the minimum number of volume and of value cells on
	// the metric row.
	MinMetricCells int
	// LabelOffset is the distance from the metric row up to the
	// instrument-label row.
	LabelOffset int
	// PeriodHeader identifies the period column by its header text.
	PeriodHeader string
	// DefaultPeriodCol is used when no header matches PeriodHeader.
	DefaultPeriodCol int
}

// DefaultInstrumentOptions returns the layout of the T2.1 report.
func DefaultInstrumentOptions() InstrumentOptions {
	return InstrumentOptions{
		HeaderScanRows:   12,
		MinMetricCells:   2,
		LabelOffset:      2,
		PeriodHeader:     "payment instruments",
		DefaultPeriodCol: 1,
	}
}

// InstrumentLayout records where the T2 band was found.
type InstrumentLayout struct {
	MetricRow      int
	LabelRow       int
	PeriodCol      int
	PeriodFallback bool
	DataRows       models.Span
	DroppedRows    int
}

// Instruments extracts the long-format per-instrument volume/value table.
func Instruments(sheet *models.RawSheet, opts InstrumentOptions) ([]models.InstrumentRecord, error) {
	records, _, err := InstrumentsWithLayout(sheet, opts)
	return records, err
}

// InstrumentsWithLayout is Instruments, also reporting the detected layout.
func InstrumentsWithLayout(sheet *models.RawSheet, opts InstrumentOptions) ([]models.InstrumentRecord, InstrumentLayout, error) {
	var layout InstrumentLayout

	metricRow, err := parser.FindRowWithCounts(sheet, opts.HeaderScanRows, []parser.TokenCount{
		{Token: metricVolume, Min: opts.MinMetricCells},
		{Token: metricValue, Min: opts.MinMetricCells},
	})
	if err != nil {
		return nil, layout, fmt.Errorf("metric row in first %d rows: %w", opts.HeaderScanRows, err)
	}
	layout.MetricRow = metricRow
	layout.LabelRow = max(0, metricRow-opts.LabelOffset)

	periodCol, ok := parser.FindColumnByHeader(sheet, opts.PeriodHeader)
	if !ok {
		periodCol = opts.DefaultPeriodCol
		layout.PeriodFallback = true
	}
	layout.PeriodCol = periodCol
	layout.DataRows = parser.DataSpanUntilBlank(sheet, metricRow+1)

	type period struct {
		row   int
		label string
		year  int
	}
	var periods []period
	for r := layout.DataRows.Start; r <= layout.DataRows.End; r++ {
		label := strings.TrimSpace(sheet.Cell(r, periodCol).String())
		year, ok := parser.FindYear(label)
		if !ok {
			layout.DroppedRows++
			continue
		}
		periods = append(periods, period{row: r, label: label, year: year})
	}

	// instrument -> metric -> column; later columns overwrite earlier ones
	columns := make(map[string]map[string]int)
	labels := parser.ForwardFill(sheet.Rows[layout.LabelRow])
	for c := 0; c < sheet.Width(); c++ {
		if c == periodCol {
			continue
		}
		instrument := parser.StripDigits(labels[c])
		metric := strings.ToLower(strings.TrimSpace(sheet.Cell(metricRow, c).String()))
		if instrument == "" || (metric != metricVolume && metric != metricValue) {
			continue
		}
		if columns[instrument] == nil {
			columns[instrument] = make(map[string]int, 2)
		}
		columns[instrument][metric] = c
	}

	instruments := make([]string, 0, len(columns))
	for name := range columns {
		instruments = append(instruments, name)
	}
	sort.Strings(instruments)

	records := make([]models.InstrumentRecord, 0, len(instruments)*len(periods))
	for _, name := range instruments {
		cols := columns[name]
		for _, p := range periods {
			volume := metricCell(sheet, p.row, cols, metricVolume)
			value := parser.MillionsToBase(metricCell(sheet, p.row, cols, metricValue))
			records = append(records, models.InstrumentRecord{
				Period:      p.label,
				Year:        p.year,
				Instrument:  name,
				Volume:      volume,
				Value:       value,
				AvgTxnValue: parser.Ratio(value, volume),
			})
		}
	}
	return records, layout, nil
}

func metricCell(sheet *models.RawSheet, row int, cols map[string]int, metric string) *float64 {
	c, ok := cols[metric]
	if !ok {
		return nil
	}
	return parser.ToNumber(sheet.Cell(row, c))
}
