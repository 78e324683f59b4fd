package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/xuri/excelize/v2"
)

// XLSXReader reads Excel workbooks into a grid using the first sheet.
type XLSXReader struct{}

// NewXLSXReader creates a new Excel reader
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Read parses workbook bytes into a grid of string cells
func (r *XLSXReader) Read(data []byte) (finance.Grid, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	grid := make(finance.Grid, len(rows))
	for i, row := range rows {
		cells := make([]finance.Cell, len(row))
		for j, value := range row {
			cells[j] = value
		}
		grid[i] = cells
	}

	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}

	return grid, nil
}
