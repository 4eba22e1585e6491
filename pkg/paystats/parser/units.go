// Package parser loads worksheets into typed grids and provides the coercion
// and detection helpers the extractors are built from.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

// MillionsMultiplier converts source values reported in millions to base
// currency units.
const MillionsMultiplier = 1_000_000

// YearMin and YearMax bound every recovered year.
const (
	YearMin = 2000
	YearMax = 2099
)

var yearPattern = regexp.MustCompile(`20\d{2}`)

// ToNumber coerces a cell to a number. Cells that do not parse yield nil.
func ToNumber(c models.Cell) *float64 {
	switch c.Kind {
	case models.CellNumber:
		return Float(c.Num)
	case models.CellText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return nil
		}
		return &v
	default:
		return nil
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// FindYear returns the first 20xx token in s.
func FindYear(s string) (int, bool) {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

// RecoverYear extracts a year from a cell, trying the date value first and
// falling back to the 20xx pattern on the text form.
func RecoverYear(c models.Cell) (int, bool) {
	switch c.Kind {
	case models.CellEmpty:
		return 0, false
	case models.CellDate:
		if y := c.Time.Year(); y >= YearMin && y <= YearMax {
			return y, true
		}
		return 0, false
	}
	return FindYear(c.String())
}

// IntegralYear reports whether v is a whole number inside the year range.
func IntegralYear(v float64) (int, bool) {
	if v < YearMin || v > YearMax || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}

// MillionsToBase scales a value in millions to base units using decimal
// arithmetic so that 1.23 becomes exactly 1230000.
func MillionsToBase(v *float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := decimal.NewFromFloat(*v).Mul(decimal.NewFromInt(MillionsMultiplier))
	return Float(scaled.InexactFloat64())
}

// Ratio returns a/b, or nil when either side is missing or b is zero.
func Ratio(a, b *float64) *float64 {
	if a == nil || b == nil || *b == 0 {
		return nil
	}
	return Float(*a / *b)
}

// StripDigits removes every digit from s and trims surrounding whitespace.
// Source labels carry footnote markers such as "Credit Card1" or
// "Credit Card¹", so superscript and other numeric digits go too.
func StripDigits(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || unicode.Is(unicode.No, r) {
			return -1
		}
		return r
	}, s))
}
