package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/strivehq/backend/internal/domain/finance"
)

// CSVReader reads CSV statement files into a grid. It strips a UTF-8 BOM,
// validates the encoding, and sniffs the delimiter since trial balances are
// exported with either commas or semicolons.
type CSVReader struct {
	delimiter  rune
	lazyQuotes bool
}

// CSVOption is a functional option for CSVReader configuration
type CSVOption func(*CSVReader)

// WithDelimiter fixes the field delimiter instead of sniffing it
func WithDelimiter(d rune) CSVOption {
	return func(r *CSVReader) {
		r.delimiter = d
	}
}

// NewCSVReader creates a new CSV reader
func NewCSVReader(opts ...CSVOption) *CSVReader {
	r := &CSVReader{lazyQuotes: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read parses CSV bytes into a grid of string cells
func (r *CSVReader) Read(data []byte) (finance.Grid, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	bufReader := bufio.NewReader(bytes.NewReader(data))

	// Detect and strip UTF-8 BOM (0xEF, 0xBB, 0xBF)
	head, err := bufReader.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = bufReader.Discard(3)
	}

	if err := validateUTF8(bufReader); err != nil {
		return nil, err
	}

	delimiter := r.delimiter
	if delimiter == 0 {
		delimiter = sniffDelimiter(bufReader)
	}

	reader := csv.NewReader(bufReader)
	reader.Comma = delimiter
	reader.LazyQuotes = r.lazyQuotes
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // allow ragged rows

	var grid finance.Grid
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		row := make([]finance.Cell, len(record))
		for i, field := range record {
			row[i] = strings.TrimSpace(field)
		}
		grid = append(grid, row)
	}

	if len(grid) == 0 {
		return nil, ErrEmptyFile
	}

	return grid, nil
}

// validateUTF8 checks that the content is valid UTF-8
func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}

	if len(content) == 0 {
		return ErrEmptyFile
	}
	// The peek can cut a multi-byte rune at the window boundary. Trim back
	// to the last complete rune so a split diacritic is not treated as a
	// bad encoding.
	if len(content) == checkSize {
		for i := 0; i < utf8.UTFMax && len(content) > 0; i++ {
			if r, size := utf8.DecodeLastRune(content); r != utf8.RuneError || size > 1 {
				break
			}
			content = content[:len(content)-1]
		}
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// sniffDelimiter inspects the first line and picks the separator that splits
// it into the most fields. Comma wins ties.
func sniffDelimiter(r *bufio.Reader) rune {
	const peekSize = 1024
	content, _ := r.Peek(peekSize)

	line := string(content)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	best := ','
	bestCount := strings.Count(line, ",")
	for _, candidate := range []rune{';', '\t'} {
		if count := strings.Count(line, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}
