// Package dashboard builds the year-filtered views, KPIs and charts shown
// over the exported tables, and serves them over HTTP.
package dashboard

import (
	"fmt"
	"sort"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/output"
)

// Data holds the three base tables read back from the output directory.
type Data struct {
	T1 models.YearSeries
	T2 []models.InstrumentRecord
	T5 models.InfrastructureSeries
}

// Load reads clean_t1.csv, clean_t2.csv and clean_t5.csv from dir.
func Load(dir string) (*Data, error) {
	t1, err := output.ReadT1(dir)
	if err != nil {
		return nil, fmt.Errorf("load dashboard data: %w", err)
	}
	t2, err := output.ReadT2(dir)
	if err != nil {
		return nil, fmt.Errorf("load dashboard data: %w", err)
	}
	t5, err := output.ReadT5(dir)
	if err != nil {
		return nil, fmt.Errorf("load dashboard data: %w", err)
	}
	return &Data{T1: t1, T2: t2, T5: t5}, nil
}

// CommonYears returns the years present in all three tables, ascending.
func CommonYears(data *Data) []int {
	inT1 := make(map[int]bool, len(data.T1))
	for _, r := range data.T1 {
		inT1[r.Year] = true
	}
	inT5 := make(map[int]bool, len(data.T5))
	for _, r := range data.T5 {
		inT5[r.Year] = true
	}

	seen := make(map[int]bool)
	var years []int
	for _, r := range data.T2 {
		if seen[r.Year] || !inT1[r.Year] || !inT5[r.Year] {
			continue
		}
		seen[r.Year] = true
		years = append(years, r.Year)
	}
	sort.Ints(years)
	return years
}

// DefaultYear is the latest common year, or 0 when there is none.
func DefaultYear(data *Data) int {
	years := CommonYears(data)
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}
