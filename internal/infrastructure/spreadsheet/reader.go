// Package spreadsheet converts uploaded statement files (CSV and Excel)
// into the raw cell grid the ingestion pipeline works on.
package spreadsheet

import (
	"path/filepath"
	"strings"

	"github.com/strivehq/backend/internal/domain/finance"
)

// FormatReader parses one file format into a grid
type FormatReader interface {
	Read(data []byte) (finance.Grid, error)
}

// Reader dispatches to a format-specific reader based on file extension.
type Reader struct {
	byExtension map[string]FormatReader
}

// NewReader creates a reader supporting .csv, .xlsx, and .xls files
func NewReader() *Reader {
	csvReader := NewCSVReader()
	xlsxReader := NewXLSXReader()
	return &Reader{
		byExtension: map[string]FormatReader{
			".csv":  csvReader,
			".xlsx": xlsxReader,
			".xls":  xlsxReader,
		},
	}
}

// Read parses file bytes into a grid, choosing the parser by extension
func (r *Reader) Read(fileName string, data []byte) (finance.Grid, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	reader, ok := r.byExtension[ext]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return reader.Read(data)
}

// Supports reports whether the extension (with leading dot) is readable
func (r *Reader) Supports(ext string) bool {
	_, ok := r.byExtension[strings.ToLower(ext)]
	return ok
}
