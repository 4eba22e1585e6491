package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name     string
		cell     models.Cell
		expected *float64
	}{
		{"number", models.Number(12.5), Float(12.5)},
		{"numeric text", models.Text(" 42 "), Float(42)},
		{"text", models.Text("n/a"), nil},
		{"thousands separator", models.Text("1,234"), nil},
		{"empty", models.Empty(), nil},
		{"date", models.Date(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToNumber(tt.cell))
		})
	}
}

func TestRecoverYear(t *testing.T) {
	tests := []struct {
		name   string
		cell   models.Cell
		year   int
		wantOK bool
	}{
		{"date fast path", models.Date(time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)), 2019, true},
		{"date out of range", models.Date(time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)), 0, false},
		{"text with year", models.Text("2021 (calendar)"), 2021, true},
		{"quarter label", models.Text("Q3 2022p"), 2022, true},
		{"numeric year", models.Number(2020), 2020, true},
		{"first token wins", models.Text("2019/2020"), 2019, true},
		{"no year", models.Text("Total"), 0, false},
		{"twentieth century", models.Text("1999"), 0, false},
		{"empty", models.Empty(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := RecoverYear(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.year, year)
		})
	}
}

func TestIntegralYear(t *testing.T) {
	year, ok := IntegralYear(2022)
	assert.True(t, ok)
	assert.Equal(t, 2022, year)

	for _, v := range []float64{2022.5, 1999, 2100, -1} {
		_, ok := IntegralYear(v)
		assert.False(t, ok, "IntegralYear(%v)", v)
	}
}

func TestMillionsToBase(t *testing.T) {
	assert.Nil(t, MillionsToBase(nil))

	got := MillionsToBase(Float(1.23))
	require.NotNil(t, got)
	assert.Equal(t, 1230000.0, *got)

	got = MillionsToBase(Float(5))
	require.NotNil(t, got)
	assert.Equal(t, 5000000.0, *got)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, Float(50000), Ratio(Float(5000000), Float(100)))
	assert.Nil(t, Ratio(Float(1), Float(0)))
	assert.Nil(t, Ratio(nil, Float(2)))
	assert.Nil(t, Ratio(Float(2), nil))
}

func TestStripDigits(t *testing.T) {
	tests := map[string]string{
		"Credit Card1":       "Credit Card",
		"Credit Card¹":       "Credit Card",
		"Debit Card²³":       "Debit Card",
		"E-Wallet₄":          "E-Wallet",
		" Internet Banking ": "Internet Banking",
		"E-Money 2,3":        "E-Money ,",
		"12":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripDigits(in), "StripDigits(%q)", in)
	}
}
