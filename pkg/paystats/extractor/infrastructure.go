package extractor

import (
	"fmt"
	"sort"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
)

// Section labels of the T5 report.
const (
	SectionEFTPOS = "EFTPOS"
	SectionATM    = "ATM"
)

// InfrastructureOptions locates the T5 sections inside their sheet.
type InfrastructureOptions struct {
	// LabelRow carries the section markers.
	LabelRow int
	// YearRow carries one year per column.
	YearRow int
	// TotalRow holds the absolute count per year.
	TotalRow int
	// PerThousandRow holds the per-1000 rate per year.
	PerThousandRow int
}

// DefaultInfrastructureOptions returns the layout of the T5 report.
func DefaultInfrastructureOptions() InfrastructureOptions {
	return InfrastructureOptions{
		LabelRow:       2,
		YearRow:        3,
		TotalRow:       5,
		PerThousandRow: 7,
	}
}

// SectionYear is one year of one section.
type SectionYear struct {
	Year        int
	Total       *float64
	PerThousand *float64
}

// Section is a discovered T5 sub-table.
type Section struct {
	Label   string
	Columns models.Span
	Years   []SectionYear
}

// Infrastructure extracts the per-year POS and ATM per-1000 series.
func Infrastructure(sheet *models.RawSheet, opts InfrastructureOptions) (models.InfrastructureSeries, error) {
	sections, err := Sections(sheet, opts)
	if err != nil {
		return nil, err
	}
	return MergeSections(sections), nil
}

// MergeSections outer-joins the per-1000 rates of the sections on year,
// sorted ascending.
func MergeSections(sections []Section) models.InfrastructureSeries {
	byYear := make(map[int]*models.InfrastructureRecord)
	for _, section := range sections {
		for _, y := range section.Years {
			rec, ok := byYear[y.Year]
			if !ok {
				rec = &models.InfrastructureRecord{Year: y.Year}
				byYear[y.Year] = rec
			}
			switch section.Label {
			case SectionEFTPOS:
				rec.POSPer1000 = y.PerThousand
			case SectionATM:
				rec.ATMPer1000 = y.PerThousand
			}
		}
	}

	series := make(models.InfrastructureSeries, 0, len(byYear))
	for _, rec := range byYear {
		series = append(series, *rec)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	return series
}

// Sections locates the EFTPOS and ATM sub-tables and reads one entry per
// year from each. Either section may be absent, but not both.
func Sections(sheet *models.RawSheet, opts InfrastructureOptions) ([]Section, error) {
	labels := []string{SectionEFTPOS, SectionATM}

	var labelRow []models.Cell
	if opts.LabelRow < sheet.Height() {
		labelRow = sheet.Rows[opts.LabelRow]
	}
	starts := parser.FindSections(labelRow, labels)
	if len(starts) == 0 {
		return nil, fmt.Errorf("%s or %s marker in row %d: %w", SectionEFTPOS, SectionATM, opts.LabelRow, parser.ErrSectionNotFound)
	}
	spans := parser.SectionSpans(starts, sheet.Width())

	var sections []Section
	for _, label := range labels {
		span, ok := spans[label]
		if !ok {
			continue
		}
		sections = append(sections, Section{
			Label:   label,
			Columns: span,
			Years:   readSectionYears(sheet, span, opts),
		})
	}
	return sections, nil
}

// readSectionYears reads every column of span that has a recoverable year.
// On repeated years the last non-blank value of each metric wins.
func readSectionYears(sheet *models.RawSheet, span models.Span, opts InfrastructureOptions) []SectionYear {
	type raw struct {
		total, perThousand models.Cell
	}
	var order []int
	byYear := make(map[int]*raw)
	for c := span.Start; c <= span.End; c++ {
		year, ok := parser.RecoverYear(sheet.Cell(opts.YearRow, c))
		if !ok {
			continue
		}
		entry, seen := byYear[year]
		if !seen {
			entry = &raw{}
			byYear[year] = entry
			order = append(order, year)
		}
		if total := sheet.Cell(opts.TotalRow, c); !total.IsEmpty() {
			entry.total = total
		}
		if perThousand := sheet.Cell(opts.PerThousandRow, c); !perThousand.IsEmpty() {
			entry.perThousand = perThousand
		}
	}

	sort.Ints(order)
	years := make([]SectionYear, 0, len(order))
	for _, year := range order {
		entry := byYear[year]
		years = append(years, SectionYear{
			Year:        year,
			Total:       parser.ToNumber(entry.total),
			PerThousand: parser.ToNumber(entry.perThousand),
		})
	}
	return years
}
