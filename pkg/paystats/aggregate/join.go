package aggregate

import (
	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

// Join widens every T2 row with the per-capita and infrastructure figures of
// its year. T2 drives the result: row count and order are preserved, and
// years absent from T1 or T5 leave those columns nil.
func Join(t2 []models.InstrumentRecord, t1 models.YearSeries, t5 models.InfrastructureSeries) []models.DatasetRecord {
	perCapita := t1.ByYear()
	infra := t5.ByYear()

	dataset := make([]models.DatasetRecord, len(t2))
	for i, r := range t2 {
		rec := models.DatasetRecord{InstrumentRecord: r}
		if pc, ok := perCapita[r.Year]; ok {
			rec.EPaymentsPerCapita = pc.EPaymentsPerCapita
		}
		if in, ok := infra[r.Year]; ok {
			rec.POSPer1000 = in.POSPer1000
			rec.ATMPer1000 = in.ATMPer1000
		}
		dataset[i] = rec
	}
	return dataset
}
