package paystats

import (
	"errors"
	"fmt"

	"github.com/ukaji3/paystats-go/pkg/paystats/parser"
)

// ErrFileNotFound indicates an input workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates an input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// Structural detection failures, matched with errors.Is.
var (
	ErrHeaderNotFound  = parser.ErrHeaderNotFound
	ErrLabelNotFound   = parser.ErrLabelNotFound
	ErrSectionNotFound = parser.ErrSectionNotFound
)

// ExtractionError reports which table and step of the run failed.
type ExtractionError struct {
	Table string
	Step  string // "open", "load", "detect", "export"
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in table %s (%s): %v", e.Table, e.Step, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(table, step string, err error) *ExtractionError {
	return &ExtractionError{
		Table: table,
		Step:  step,
		Err:   err,
	}
}

// IsStructural reports whether err is a layout detection failure.
func IsStructural(err error) bool {
	return errors.Is(err, ErrHeaderNotFound) ||
		errors.Is(err, ErrLabelNotFound) ||
		errors.Is(err, ErrSectionNotFound)
}
