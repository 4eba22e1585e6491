package extractor

import (
	"fmt"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
)

// PerCapitaOptions locates the T1 series inside its sheet.
type PerCapitaOptions struct {
	// YearRow holds the year labels.
	YearRow int
	// FirstValueCol is the first column carrying a year and its value.
	FirstValueCol int
	// LabelCol holds the row labels.
	LabelCol int
	// LabelPrefix selects the metric row by its trimmed label.
	LabelPrefix string
}

// DefaultPerCapitaOptions returns the layout of the T1 report.
func DefaultPerCapitaOptions() PerCapitaOptions {
	return PerCapitaOptions{
		YearRow:       1,
		FirstValueCol: 3,
		LabelCol:      1,
		LabelPrefix:   "E-payments",
	}
}

// PerCapita extracts the yearly e-payments per capita series.
//
// Years are read left to right from the year row and non-year cells are
// skipped; values are then read positionally from the first value column of
// the labelled row, one per valid year. Repeated years keep their first value.
func PerCapita(sheet *models.RawSheet, opts PerCapitaOptions) (models.YearSeries, error) {
	var years []int
	for c := opts.FirstValueCol; c < sheet.Width(); c++ {
		v := parser.ToNumber(sheet.Cell(opts.YearRow, c))
		if v == nil {
			continue
		}
		if year, ok := parser.IntegralYear(*v); ok {
			years = append(years, year)
		}
	}

	row, err := parser.FindLabelRow(sheet, opts.LabelCol, opts.LabelPrefix)
	if err != nil {
		return nil, fmt.Errorf("label %q in column %d: %w", opts.LabelPrefix, opts.LabelCol, err)
	}

	series := make(models.YearSeries, 0, len(years))
	seen := make(map[int]bool, len(years))
	for i, year := range years {
		if seen[year] {
			continue
		}
		seen[year] = true
		series = append(series, models.PerCapitaRecord{
			Year:               year,
			EPaymentsPerCapita: parser.ToNumber(sheet.Cell(row, opts.FirstValueCol+i)),
		})
	}
	return series, nil
}
