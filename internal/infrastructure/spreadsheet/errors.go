package spreadsheet

import "errors"

// Common spreadsheet reading errors
var (
	// ErrEmptyFile is returned when the uploaded file has no content
	ErrEmptyFile = errors.New("spreadsheet file is empty")

	// ErrInvalidEncoding is returned when a CSV file is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrUnsupportedFormat is returned for file extensions no reader handles
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrNoSheets is returned when a workbook contains no sheets
	ErrNoSheets = errors.New("workbook contains no sheets")
)
