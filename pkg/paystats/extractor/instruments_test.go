package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
)

func t2Header() []models.Cell {
	return row("Table 2.1", "Payment Instruments")
}

func TestInstrumentsSingleRecord(t *testing.T) {
	s := sheet(t2Header(),
		row(nil, nil, "Credit Card1"),
		row(nil, nil, "RM million"),
		row(nil, "Period", "Volume", "Value", "Volume growth", "Value growth"),
		row(nil, "2021 (calendar)", 100, 5, 3.2, 1.1),
	)

	records, err := Instruments(s, DefaultInstrumentOptions())
	require.NoError(t, err)

	assert.Equal(t, []models.InstrumentRecord{{
		Period:      "2021 (calendar)",
		Year:        2021,
		Instrument:  "Credit Card",
		Volume:      f(100),
		Value:       f(5000000),
		AvgTxnValue: f(50000),
	}}, records)
}

func twoInstrumentSheet(dataRows ...[]models.Cell) *models.RawSheet {
	rows := [][]models.Cell{
		row("Monthly statistics"),
		row(nil, nil, "Internet Banking2", nil, "Credit Card1"),
		row(),
		row(nil, nil, "Volume", "Value", "Volume", "Value"),
	}
	return sheet(t2Header(), append(rows, dataRows...)...)
}

func TestInstrumentsReshape(t *testing.T) {
	s := twoInstrumentSheet(
		row(nil, "2020", 10, 1.5, 20, 2),
		row(nil, "Total", 30, 3.5, 40, 4),
		row(nil, 2021, 0, 2, "-", 3),
		row(),
		row(nil, "2022 notes", 1, 1, 1, 1),
	)

	records, layout, err := InstrumentsWithLayout(s, DefaultInstrumentOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, layout.MetricRow)
	assert.Equal(t, 1, layout.LabelRow)
	assert.Equal(t, 1, layout.PeriodCol)
	assert.False(t, layout.PeriodFallback)
	assert.Equal(t, models.Span{Start: 4, End: 6}, layout.DataRows)
	assert.Equal(t, 1, layout.DroppedRows)

	require.Len(t, records, 4)

	// sorted by instrument, source row order within
	assert.Equal(t, "Credit Card", records[0].Instrument)
	assert.Equal(t, "2020", records[0].Period)
	assert.Equal(t, "Credit Card", records[1].Instrument)
	assert.Equal(t, "2021", records[1].Period)
	assert.Equal(t, "Internet Banking", records[2].Instrument)
	assert.Equal(t, "Internet Banking", records[3].Instrument)

	assert.Equal(t, f(1500000), records[2].Value)
	assert.Equal(t, f(150000), records[2].AvgTxnValue)

	// unparseable volume: null volume, null average
	assert.Nil(t, records[1].Volume)
	assert.Equal(t, f(3000000), records[1].Value)
	assert.Nil(t, records[1].AvgTxnValue)

	// zero volume: null average
	assert.Equal(t, f(0), records[3].Volume)
	assert.Nil(t, records[3].AvgTxnValue)

	for _, r := range records {
		assert.GreaterOrEqual(t, r.Year, parser.YearMin)
		assert.LessOrEqual(t, r.Year, parser.YearMax)
	}
}

func TestInstrumentsDropsRowsWithoutYear(t *testing.T) {
	base, err := Instruments(twoInstrumentSheet(
		row(nil, "2020", 10, 1, 20, 2),
		row(nil, "2021", 11, 1, 21, 2),
	), DefaultInstrumentOptions())
	require.NoError(t, err)

	withTotal, err := Instruments(twoInstrumentSheet(
		row(nil, "2020", 10, 1, 20, 2),
		row(nil, "Grand total", 21, 2, 41, 4),
		row(nil, "2021", 11, 1, 21, 2),
	), DefaultInstrumentOptions())
	require.NoError(t, err)

	// three data rows, two instruments: the total row is dropped from both
	assert.Len(t, withTotal, 2*2)
	assert.Equal(t, base, withTotal)
}

func TestInstrumentsPartialMetrics(t *testing.T) {
	s := sheet(t2Header(),
		row(nil, nil, "E-Money", nil, "Debit Card"),
		row(),
		row(nil, nil, "Volume", "Volume", "Value", "Value"),
		row(nil, "2023", 7, 8, 9, 10),
	)

	records, err := Instruments(s, DefaultInstrumentOptions())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Debit Card", records[0].Instrument)
	assert.Nil(t, records[0].Volume)
	assert.Equal(t, f(10000000), records[0].Value, "later columns overwrite earlier ones")

	assert.Equal(t, "E-Money", records[1].Instrument)
	assert.Equal(t, f(8), records[1].Volume)
	assert.Nil(t, records[1].Value)
	assert.Nil(t, records[1].AvgTxnValue)
}

func TestInstrumentsPeriodFallback(t *testing.T) {
	s := sheet(row("Table 2.1"),
		row(nil, nil, "Credit Card"),
		row(),
		row(nil, nil, "Volume", "Value", "volume", "value"),
		row(nil, "2020", 1, 2, 3, 4),
	)

	records, layout, err := InstrumentsWithLayout(s, DefaultInstrumentOptions())
	require.NoError(t, err)

	assert.True(t, layout.PeriodFallback)
	assert.Equal(t, 1, layout.PeriodCol)
	require.Len(t, records, 1)
	assert.Equal(t, 2020, records[0].Year)
}

func TestInstrumentsHeaderNotFound(t *testing.T) {
	rows := make([][]models.Cell, 0, 14)
	for i := 0; i < 12; i++ {
		rows = append(rows, row("filler"))
	}
	rows = append(rows, row(nil, "Volume", "Value", "Volume", "Value"))

	_, err := Instruments(sheet(t2Header(), rows...), DefaultInstrumentOptions())
	assert.ErrorIs(t, err, parser.ErrHeaderNotFound)
}

func TestInstrumentsRowWithoutYearReducesCountByOne(t *testing.T) {
	build := func(extra ...[]models.Cell) *models.RawSheet {
		rows := [][]models.Cell{
			row(nil, nil, "Credit Card1"),
			row(),
			row(nil, "Period", "Volume", "Value", "Volume", "Value"),
			row(nil, "2020", 90, 4, 90, 4),
		}
		rows = append(rows, extra...)
		rows = append(rows, row(nil, "2021", 100, 5, 100, 5))
		return sheet(t2Header(), rows...)
	}

	without, err := Instruments(build(), DefaultInstrumentOptions())
	require.NoError(t, err)
	with, err := Instruments(build(row(nil, "Jan-Dec (p)", 1, 1, 1, 1)), DefaultInstrumentOptions())
	require.NoError(t, err)

	assert.Len(t, without, 2)
	assert.Len(t, with, 2)

	withRows, err := Instruments(build(row(nil, "2020 H2", 1, 1, 1, 1)), DefaultInstrumentOptions())
	require.NoError(t, err)
	assert.Len(t, withRows, 3)
	assert.Equal(t, len(withRows)-1, len(with))
}

func TestInstrumentsSuperscriptFootnotesShareKey(t *testing.T) {
	s := sheet(t2Header(),
		row(nil, nil, "Credit Card¹", nil, "Credit Card2"),
		row(),
		row(nil, "Period", "Volume", "Value", "Volume", "Value"),
		row(nil, "2021", 10, 1, 20, 3),
	)

	records, err := Instruments(s, DefaultInstrumentOptions())
	require.NoError(t, err)

	// one key; the later columns win
	require.Len(t, records, 1)
	assert.Equal(t, "Credit Card", records[0].Instrument)
	assert.Equal(t, 20.0, *records[0].Volume)
	assert.Equal(t, 3000000.0, *records[0].Value)
}
