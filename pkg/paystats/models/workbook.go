package models

// Tables holds every table produced by one ETL run.
type Tables struct {
	// T1 is the per-capita series.
	T1 YearSeries `json:"t1"`
	// T2 is the long-format instrument table.
	T2 []InstrumentRecord `json:"t2"`
	// T5 is the infrastructure per-1000 series.
	T5 InfrastructureSeries `json:"t5"`
	// Shares holds per (year, instrument) volume and value shares.
	Shares []ShareRecord `json:"shares"`
	// Dataset is T2 left-joined with T1 and T5 on year.
	Dataset []DatasetRecord `json:"dataset"`
}
