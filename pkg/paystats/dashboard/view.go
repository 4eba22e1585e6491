package dashboard

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

// Chart names, stable across the API and rendered file names.
const (
	ChartPerCapita          = "per_capita"
	ChartVolumeByInstrument = "volume_by_instrument"
	ChartPOSvsATM           = "pos_atm"
	ChartVolumeShare        = "volume_share"
	ChartValueShare         = "value_share"
)

// ChartNames lists the charts of a view in display order.
var ChartNames = []string{
	ChartPerCapita,
	ChartVolumeByInstrument,
	ChartPOSvsATM,
	ChartVolumeShare,
	ChartValueShare,
}

const placeholderSuffix = " (No data)"

// KPIs are the summary figures of the selected year.
type KPIs struct {
	EPaymentsPerCapita float64 `json:"e_payments_per_capita"`
	POSPer1000         float64 `json:"pos_per_1000"`
	ATMPer1000         float64 `json:"atm_per_1000"`
	TotalValue         float64 `json:"total_value"`
}

// View is the dashboard state for one selected year.
type View struct {
	Year   int                         `json:"year"`
	Years  []int                       `json:"years"`
	KPIs   KPIs                        `json:"kpis"`
	T1     models.YearSeries           `json:"t1"`
	T2     []models.InstrumentRecord   `json:"t2"`
	T5     models.InfrastructureSeries `json:"t5"`
	Charts []models.Chart              `json:"charts"`
}

// Chart returns the chart with the given name.
func (v *View) Chart(name string) (models.Chart, bool) {
	for _, c := range v.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return models.Chart{}, false
}

// BuildView filters the tables to year and derives the KPIs and charts.
// A year with no rows yields zero KPIs and placeholder charts.
func BuildView(data *Data, year int) *View {
	view := &View{
		Year:  year,
		Years: CommonYears(data),
		T1:    models.YearSeries{},
		T2:    []models.InstrumentRecord{},
		T5:    models.InfrastructureSeries{},
	}
	for _, r := range data.T1 {
		if r.Year == year {
			view.T1 = append(view.T1, r)
		}
	}
	for _, r := range data.T2 {
		if r.Year == year {
			view.T2 = append(view.T2, r)
		}
	}
	for _, r := range data.T5 {
		if r.Year == year {
			view.T5 = append(view.T5, r)
		}
	}

	var perCapita, pos, atm, value []float64
	for _, r := range view.T1 {
		perCapita = appendValue(perCapita, r.EPaymentsPerCapita)
	}
	for _, r := range view.T5 {
		pos = appendValue(pos, r.POSPer1000)
		atm = appendValue(atm, r.ATMPer1000)
	}
	for _, r := range view.T2 {
		value = appendValue(value, r.Value)
	}
	view.KPIs = KPIs{
		EPaymentsPerCapita: sum(perCapita),
		POSPer1000:         sum(pos),
		ATMPer1000:         sum(atm),
		TotalValue:         sum(value),
	}

	view.Charts = []models.Chart{
		perCapitaChart(data.T1),
		volumeChart(data.T2),
		infrastructureChart(data.T5, len(view.T5) == 0),
		shareChart(ChartVolumeShare, "Volume Share", view.T2, func(r models.InstrumentRecord) *float64 { return r.Volume }),
		shareChart(ChartValueShare, "Value Share", view.T2, func(r models.InstrumentRecord) *float64 { return r.Value }),
	}
	return view
}

// sum adds values, treating an empty slice as 0.
func sum(values []float64) float64 {
	total, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return total
}

func appendValue(values []float64, v *float64) []float64 {
	if v == nil {
		return values
	}
	return append(values, *v)
}

func placeholder(c models.Chart) models.Chart {
	c.Placeholder = true
	c.Title += placeholderSuffix
	c.Series = []models.ChartSeries{}
	return c
}

func perCapitaChart(t1 models.YearSeries) models.Chart {
	chart := models.Chart{
		Name:       ChartPerCapita,
		ChartType:  models.ChartLine,
		Title:      "E-Payments per Capita",
		XAxisTitle: "year",
		YAxisTitle: "e_payments_per_capita",
	}
	if len(t1) == 0 {
		return placeholder(chart)
	}

	series := models.ChartSeries{Name: "E-Payments per Capita", Points: []models.ChartPoint{}}
	for _, r := range t1 {
		if r.EPaymentsPerCapita != nil {
			series.Points = append(series.Points, models.ChartPoint{X: float64(r.Year), Y: *r.EPaymentsPerCapita})
		}
	}
	chart.Series = []models.ChartSeries{series}
	return chart
}

func volumeChart(t2 []models.InstrumentRecord) models.Chart {
	chart := models.Chart{
		Name:       ChartVolumeByInstrument,
		ChartType:  models.ChartLine,
		Title:      "Payment Volume by Instrument",
		XAxisTitle: "year",
		YAxisTitle: "volume",
	}
	if len(t2) == 0 {
		return placeholder(chart)
	}

	var order []string
	byInstrument := make(map[string]*models.ChartSeries)
	for _, r := range t2 {
		s, ok := byInstrument[r.Instrument]
		if !ok {
			s = &models.ChartSeries{Name: r.Instrument, Points: []models.ChartPoint{}}
			byInstrument[r.Instrument] = s
			order = append(order, r.Instrument)
		}
		if r.Volume != nil {
			s.Points = append(s.Points, models.ChartPoint{X: float64(r.Year), Y: *r.Volume})
		}
	}
	sort.Strings(order)
	for _, name := range order {
		chart.Series = append(chart.Series, *byInstrument[name])
	}
	return chart
}

func infrastructureChart(t5 models.InfrastructureSeries, empty bool) models.Chart {
	chart := models.Chart{
		Name:       ChartPOSvsATM,
		ChartType:  models.ChartBar,
		Title:      "POS vs ATMs",
		XAxisTitle: "year",
		YAxisTitle: "POS per 1,000",
	}
	if empty {
		return placeholder(chart)
	}

	pos := models.ChartSeries{Name: "POS per 1,000", Points: []models.ChartPoint{}}
	atm := models.ChartSeries{Name: "ATMs per 1,000", Kind: models.ChartLine, Points: []models.ChartPoint{}}
	for _, r := range t5 {
		if r.POSPer1000 != nil {
			pos.Points = append(pos.Points, models.ChartPoint{X: float64(r.Year), Y: *r.POSPer1000})
		}
		if r.ATMPer1000 != nil {
			atm.Points = append(atm.Points, models.ChartPoint{X: float64(r.Year), Y: *r.ATMPer1000})
		}
	}
	chart.Series = []models.ChartSeries{pos, atm}
	return chart
}

// shareChart groups the year's rows by instrument and sums metric, nulls
// counted as 0.
func shareChart(name, title string, rows []models.InstrumentRecord, metric func(models.InstrumentRecord) *float64) models.Chart {
	chart := models.Chart{Name: name, ChartType: models.ChartPie, Title: title}
	if len(rows) == 0 {
		return placeholder(chart)
	}

	totals := make(map[string]float64)
	for _, r := range rows {
		v := 0.0
		if m := metric(r); m != nil {
			v = *m
		}
		totals[r.Instrument] += v
	}
	instruments := make([]string, 0, len(totals))
	for instrument := range totals {
		instruments = append(instruments, instrument)
	}
	sort.Strings(instruments)

	series := models.ChartSeries{Name: title, Points: make([]models.ChartPoint, 0, len(instruments))}
	for i, instrument := range instruments {
		series.Points = append(series.Points, models.ChartPoint{X: float64(i), Y: totals[instrument], Label: instrument})
	}
	chart.Series = []models.ChartSeries{series}
	return chart
}
