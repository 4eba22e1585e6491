// Package models defines the grid and table types shared by the payments ETL.
package models

import (
	"strconv"
	"time"
)

// CellKind tags the value held by a Cell.
type CellKind int

const (
	// CellEmpty is a blank cell.
	CellEmpty CellKind = iota
	// CellNumber holds a numeric value in Num.
	CellNumber
	// CellText holds a string value in Text.
	CellText
	// CellDate holds a date value in Time.
	CellDate
)

// Cell is a single heterogeneously-typed spreadsheet cell.
type Cell struct {
	// Kind selects which of the value fields is meaningful.
	Kind CellKind `json:"kind"`
	// Num is the numeric value for CellNumber.
	Num float64 `json:"num,omitempty"`
	// Text is the string value for CellText.
	Text string `json:"text,omitempty"`
	// Time is the date value for CellDate.
	Time time.Time `json:"time,omitempty"`
}

// Empty returns a blank cell.
func Empty() Cell { return Cell{} }

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }

// Text returns a text cell. An empty string yields a blank cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// Date returns a date cell.
func Date(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell as text. Integral numbers print without a
// fractional part so that "2021" survives a numeric round trip.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellText:
		return c.Text
	case CellDate:
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
