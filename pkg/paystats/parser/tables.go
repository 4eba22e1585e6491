package parser

import (
	"errors"
	"strings"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
)

// Structural detection failures. Each one aborts extraction of its table.
var (
	// ErrHeaderNotFound indicates no row satisfied a header predicate.
	ErrHeaderNotFound = errors.New("header row not found")
	// ErrLabelNotFound indicates no row carried the requested label.
	ErrLabelNotFound = errors.New("label row not found")
	// ErrSectionNotFound indicates none of the section markers was present.
	ErrSectionNotFound = errors.New("section label not found")
)

// TokenCount requires at least Min cells of a row to contain Token.
type TokenCount struct {
	Token string
	Min   int
}

// FindRowWithCounts returns the first of the first limit rows in which every
// token is contained (case-insensitively) in at least its minimum number of
// cells.
func FindRowWithCounts(sheet *models.RawSheet, limit int, need []TokenCount) (int, error) {
	for r := 0; r < limit && r < sheet.Height(); r++ {
		if rowSatisfies(sheet.Rows[r], need) {
			return r, nil
		}
	}
	return -1, ErrHeaderNotFound
}

func rowSatisfies(row []models.Cell, need []TokenCount) bool {
	for _, n := range need {
		count := 0
		for _, c := range row {
			if strings.Contains(strings.ToLower(c.String()), n.Token) {
				count++
			}
		}
		if count < n.Min {
			return false
		}
	}
	return true
}

// FindColumnByHeader returns the first column whose header text contains
// needle (case-insensitive).
func FindColumnByHeader(sheet *models.RawSheet, needle string) (int, bool) {
	needle = strings.ToLower(needle)
	for c := 0; c < len(sheet.Header); c++ {
		if strings.Contains(strings.ToLower(sheet.HeaderCell(c).String()), needle) {
			return c, true
		}
	}
	return -1, false
}

// FindLabelRow returns the first row whose trimmed text in col starts with
// prefix. Later matches are not inspected.
func FindLabelRow(sheet *models.RawSheet, col int, prefix string) (int, error) {
	for r := 0; r < sheet.Height(); r++ {
		if strings.HasPrefix(strings.TrimSpace(sheet.Cell(r, col).String()), prefix) {
			return r, nil
		}
	}
	return -1, ErrLabelNotFound
}

// DataSpanUntilBlank returns the rows from start up to, but excluding, the
// first fully blank row. The span is empty when start itself is blank.
func DataSpanUntilBlank(sheet *models.RawSheet, start int) models.Span {
	end := start
	for end < sheet.Height() && !sheet.RowIsEmpty(end) {
		end++
	}
	return models.Span{Start: start, End: end - 1}
}

// ForwardFill returns the text of each cell, carrying the last non-blank
// value rightward across blanks. Leading blanks stay empty.
func ForwardFill(row []models.Cell) []string {
	out := make([]string, len(row))
	last := ""
	for i, c := range row {
		if !c.IsEmpty() {
			last = c.String()
		}
		out[i] = last
	}
	return out
}

// FindSections locates the start column of each label in row. An exact
// (trimmed, case-insensitive) match is preferred; labels still unresolved are
// then matched by substring. The first matching column wins in each pass.
func FindSections(row []models.Cell, labels []string) map[string]int {
	found := make(map[string]int, len(labels))
	for _, label := range labels {
		want := strings.ToLower(label)
		for c, cell := range row {
			if strings.ToLower(strings.TrimSpace(cell.String())) == want {
				found[label] = c
				break
			}
		}
	}
	for _, label := range labels {
		if _, ok := found[label]; ok {
			continue
		}
		want := strings.ToLower(label)
		for c, cell := range row {
			if !cell.IsEmpty() && strings.Contains(strings.ToLower(cell.String()), want) {
				found[label] = c
				break
			}
		}
	}
	return found
}

// SectionSpans bounds each section from its start column to just before the
// nearest section starting to its right, or to the last column.
func SectionSpans(starts map[string]int, width int) map[string]models.Span {
	spans := make(map[string]models.Span, len(starts))
	for label, start := range starts {
		end := width - 1
		for _, other := range starts {
			if other > start && other-1 < end {
				end = other - 1
			}
		}
		spans[label] = models.Span{Start: start, End: end}
	}
	return spans
}
