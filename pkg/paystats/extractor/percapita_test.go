package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
)

func TestPerCapita(t *testing.T) {
	s := sheet(row("Table 1"),
		row("", "Transactions per capita"),
		row(nil, nil, nil, 2020, 2021, 2022),
		row(nil, "Cheques per capita", nil, 3.1, 2.8, 2.2),
		row(nil, " E-payments per capita", nil, 10.5, 12.3, 15.0),
	)

	series, err := PerCapita(s, DefaultPerCapitaOptions())
	require.NoError(t, err)

	assert.Equal(t, models.YearSeries{
		{Year: 2020, EPaymentsPerCapita: f(10.5)},
		{Year: 2021, EPaymentsPerCapita: f(12.3)},
		{Year: 2022, EPaymentsPerCapita: f(15.0)},
	}, series)
}

func TestPerCapitaSkipsNonYearColumns(t *testing.T) {
	s := sheet(nil,
		row(),
		row(nil, nil, nil, "2019", 2020, "Growth (%)", 1850),
		row(nil, "E-payments per capita", nil, 8, "n/a", 4.2),
	)

	series, err := PerCapita(s, DefaultPerCapitaOptions())
	require.NoError(t, err)

	// values are zipped positionally from the first value column
	require.Len(t, series, 2)
	assert.Equal(t, 2019, series[0].Year)
	assert.Equal(t, f(8), series[0].EPaymentsPerCapita)
	assert.Equal(t, 2020, series[1].Year)
	assert.Nil(t, series[1].EPaymentsPerCapita, "unparseable cells become null")
}

func TestPerCapitaUniqueYears(t *testing.T) {
	s := sheet(nil,
		row(),
		row(nil, nil, nil, 2020, 2020, 2021),
		row(nil, "E-payments", nil, 1, 2, 3),
	)

	series, err := PerCapita(s, DefaultPerCapitaOptions())
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, f(1), series[0].EPaymentsPerCapita)
	assert.Equal(t, 2021, series[1].Year)
	assert.Equal(t, f(3), series[1].EPaymentsPerCapita)
}

func TestPerCapitaLabelNotFound(t *testing.T) {
	s := sheet(nil,
		row(),
		row(nil, nil, nil, 2020),
		row(nil, "Cheques", nil, 1),
	)

	_, err := PerCapita(s, DefaultPerCapitaOptions())
	assert.ErrorIs(t, err, parser.ErrLabelNotFound)
	assert.Contains(t, err.Error(), "E-payments")
}
