package models

// RawSheet is an in-memory grid of cells read from one worksheet.
// Rows are padded to a common width; offsets are 0-based.
type RawSheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Header is the consumed first row when the sheet was loaded with a
	// header, nil otherwise.
	Header []Cell `json:"header,omitempty"`
	// Rows contains the data rows beneath the header.
	Rows [][]Cell `json:"rows"`
}

// NewRawSheet builds a sheet and pads every row (and the header) to the
// widest row.
func NewRawSheet(name string, header []Cell, rows [][]Cell) *RawSheet {
	width := len(header)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	s := &RawSheet{Name: name, Rows: make([][]Cell, len(rows))}
	if header != nil {
		s.Header = pad(header, width)
	}
	for i, row := range rows {
		s.Rows[i] = pad(row, width)
	}
	return s
}

func pad(row []Cell, width int) []Cell {
	out := make([]Cell, width)
	copy(out, row)
	return out
}

// Height returns the number of data rows.
func (s *RawSheet) Height() int {
	return len(s.Rows)
}

// Width returns the number of columns.
func (s *RawSheet) Width() int {
	if len(s.Rows) > 0 {
		return len(s.Rows[0])
	}
	return len(s.Header)
}

// Cell returns the cell at (row, col), or a blank cell when out of range.
func (s *RawSheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Empty()
	}
	return s.Rows[row][col]
}

// HeaderCell returns the header cell for col, or a blank cell.
func (s *RawSheet) HeaderCell(col int) Cell {
	if col < 0 || col >= len(s.Header) {
		return Empty()
	}
	return s.Header[col]
}

// RowIsEmpty reports whether every cell in row is blank. Rows past the end
// count as empty.
func (s *RawSheet) RowIsEmpty(row int) bool {
	if row < 0 || row >= len(s.Rows) {
		return true
	}
	for _, c := range s.Rows[row] {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
