package extractor

import (
	"time"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

// row converts literals to cells: strings become text, ints and floats
// numbers, time.Time dates and nil blanks.
func row(values ...any) []models.Cell {
	cells := make([]models.Cell, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case string:
			cells[i] = models.Text(v)
		case int:
			cells[i] = models.Number(float64(v))
		case float64:
			cells[i] = models.Number(v)
		case time.Time:
			cells[i] = models.Date(v)
		}
	}
	return cells
}

func sheet(header []models.Cell, rows ...[]models.Cell) *models.RawSheet {
	return models.NewRawSheet("test", header, rows)
}

func f(v float64) *float64 { return &v }
