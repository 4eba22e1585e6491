// Package aggregate derives the share KPIs and the joined dataset from the
// extracted tables.
package aggregate

import (
	"sort"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
)

type shareKey struct {
	year       int
	instrument string
}

// Shares sums volume and value per (year, instrument) and divides by the
// per-year totals across instruments. Missing volumes and values count as
// zero in both sums; a share is nil when its year total is zero.
func Shares(records []models.InstrumentRecord) []models.ShareRecord {
	sums := make(map[shareKey]*models.ShareRecord)
	type total struct{ volume, value float64 }
	totals := make(map[int]*total)

	for _, r := range records {
		key := shareKey{year: r.Year, instrument: r.Instrument}
		s, ok := sums[key]
		if !ok {
			s = &models.ShareRecord{Year: r.Year, Instrument: r.Instrument}
			sums[key] = s
		}
		t, ok := totals[r.Year]
		if !ok {
			t = &total{}
			totals[r.Year] = t
		}
		if r.Volume != nil {
			s.Volume += *r.Volume
			t.volume += *r.Volume
		}
		if r.Value != nil {
			s.Value += *r.Value
			t.value += *r.Value
		}
	}

	shares := make([]models.ShareRecord, 0, len(sums))
	for _, s := range sums {
		t := totals[s.Year]
		s.YearVolume = t.volume
		s.YearValue = t.value
		s.VolumeShare = parser.Ratio(&s.Volume, &s.YearVolume)
		s.ValueShare = parser.Ratio(&s.Value, &s.YearValue)
		shares = append(shares, *s)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Year != shares[j].Year {
			return shares[i].Year < shares[j].Year
		}
		return shares[i].Instrument < shares[j].Instrument
	})
	return shares
}
