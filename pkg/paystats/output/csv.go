// Package output writes the ETL tables as flat CSV files and reads them back.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVWriter writes CSV files below a base directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a writer rooted at dir.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// WriteOptions configures a single CSV file.
type WriteOptions struct {
	Headers []string
	Records [][]string
}

// Path returns the full path of name below the writer's directory.
func (w *CSVWriter) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteCSV truncates name and writes the header row followed by the records.
func (w *CSVWriter) WriteCSV(name string, options WriteOptions) error {
	fullPath := w.Path(name)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// ReadCSV reads name and returns its header row and records.
func (w *CSVWriter) ReadCSV(name string) ([]string, [][]string, error) {
	file, err := os.Open(w.Path(name))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: missing header row", name)
	}
	return rows[0], rows[1:], nil
}
