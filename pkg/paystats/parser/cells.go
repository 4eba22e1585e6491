package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/paystats-go/pkg/paystats/models"
	"github.com/xuri/excelize/v2"
)

// LoadSheet reads a worksheet into a RawSheet, classifying every cell as a
// number, text, date or blank. When withHeader is set the first sheet row is
// consumed as the header and data row 0 is the second sheet row.
func LoadSheet(f *excelize.File, sheetName string, withHeader bool) (*models.RawSheet, error) {
	formatted, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]models.Cell, max(len(formatted), len(raw)))
	for rowIdx := range grid {
		var fmtRow, rawRow []string
		if rowIdx < len(formatted) {
			fmtRow = formatted[rowIdx]
		}
		if rowIdx < len(raw) {
			rawRow = raw[rowIdx]
		}

		cells := make([]models.Cell, max(len(fmtRow), len(rawRow)))
		for colIdx := range cells {
			text, value := at(fmtRow, colIdx), at(rawRow, colIdx)
			if text == "" && value == "" {
				continue
			}
			// 1-based coordinates for excelize
			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			cells[colIdx] = classifyCell(f, sheetName, cellName, text, value)
		}
		grid[rowIdx] = cells
	}

	var header []models.Cell
	if withHeader {
		header = []models.Cell{}
		if len(grid) > 0 {
			header, grid = grid[0], grid[1:]
		}
	}
	return models.NewRawSheet(sheetName, header, grid), nil
}

func at(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// classifyCell maps one cell to the tagged union. Numeric cells carrying a
// date number format become dates.
func classifyCell(f *excelize.File, sheetName, cellName, text, value string) models.Cell {
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		cellType = excelize.CellTypeUnset
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return models.Text(text)
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return models.Date(t)
		}
		return models.Text(text)
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return models.Text(text)
	}
	if hasDateFormat(f, sheetName, cellName) {
		if t, err := excelize.ExcelDateToTime(num, false); err == nil {
			return models.Date(t)
		}
	}
	return models.Number(num)
}

// builtInDateFormats lists the built-in number format ids that render a
// calendar date (time-only formats are excluded).
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func hasDateFormat(f *excelize.File, sheetName, cellName string) bool {
	styleID, err := f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return builtInDateFormats[style.NumFmt]
}

// isDateFormatCode reports whether a custom number format code contains a
// year or day token outside quoted literals and bracketed sections.
func isDateFormatCode(code string) bool {
	var inQuote, inBracket bool
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		case r == 'y' || r == 'd':
			return true
		}
	}
	return false
}
