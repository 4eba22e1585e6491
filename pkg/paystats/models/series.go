package models

// PerCapitaRecord is one year of the T1 per-capita series.
type PerCapitaRecord struct {
	Year               int      `json:"year"`
	EPaymentsPerCapita *float64 `json:"e_payments_per_capita"`
}

// YearSeries is the T1 table: one record per year, unique years.
type YearSeries []PerCapitaRecord

// ByYear indexes the series by year.
func (s YearSeries) ByYear() map[int]PerCapitaRecord {
	m := make(map[int]PerCapitaRecord, len(s))
	for _, r := range s {
		m[r.Year] = r
	}
	return m
}

// InstrumentRecord is one (period, instrument) row of the T2 table.
// Value is in base currency units.
type InstrumentRecord struct {
	Period      string   `json:"period"`
	Year        int      `json:"year"`
	Instrument  string   `json:"instrument"`
	Volume      *float64 `json:"volume"`
	Value       *float64 `json:"value"`
	AvgTxnValue *float64 `json:"avg_txn_value"`
}

// InfrastructureRecord is one year of the T5 per-1000 table.
type InfrastructureRecord struct {
	Year       int      `json:"year"`
	POSPer1000 *float64 `json:"pos_per_1000"`
	ATMPer1000 *float64 `json:"atm_per_1000"`
}

// InfrastructureSeries is the T5 table sorted by year.
type InfrastructureSeries []InfrastructureRecord

// ByYear indexes the series by year.
func (s InfrastructureSeries) ByYear() map[int]InfrastructureRecord {
	m := make(map[int]InfrastructureRecord, len(s))
	for _, r := range s {
		m[r.Year] = r
	}
	return m
}

// ShareRecord is an instrument's share of a year's volume and value.
type ShareRecord struct {
	Year        int      `json:"year"`
	Instrument  string   `json:"instrument"`
	Volume      float64  `json:"volume"`
	Value       float64  `json:"value"`
	YearVolume  float64  `json:"year_volume"`
	YearValue   float64  `json:"year_value"`
	VolumeShare *float64 `json:"volume_share"`
	ValueShare  *float64 `json:"value_share"`
}

// DatasetRecord is a T2 row widened with the T1 and T5 figures of its year.
type DatasetRecord struct {
	InstrumentRecord
	EPaymentsPerCapita *float64 `json:"e_payments_per_capita"`
	POSPer1000         *float64 `json:"pos_per_1000"`
	ATMPer1000         *float64 `json:"atm_per_1000"`
}
