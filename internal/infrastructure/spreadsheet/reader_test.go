package spreadsheet

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVReader_Read(t *testing.T) {
	t.Run("parses comma separated rows", func(t *testing.T) {
		data := []byte("Cont,Denumire,Rulaj debitoare,Rulaj creditoare\n701,Venituri,0,5000\n")

		grid, err := NewCSVReader().Read(data)
		require.NoError(t, err)

		require.Len(t, grid, 2)
		assert.Equal(t, "Cont", grid[0][0])
		assert.Equal(t, "701", grid[1][0])
		assert.Equal(t, "5000", grid[1][3])
	})

	t.Run("strips UTF-8 BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Cont,Denumire\n601,Cheltuieli\n")...)

		grid, err := NewCSVReader().Read(data)
		require.NoError(t, err)
		assert.Equal(t, "Cont", grid[0][0])
	})

	t.Run("sniffs semicolon delimiter", func(t *testing.T) {
		data := []byte("Cont;Denumire;Rulaj D;Rulaj C\n701;Venituri;0;1.234,56\n")

		grid, err := NewCSVReader().Read(data)
		require.NoError(t, err)
		require.Len(t, grid[0], 4)
		assert.Equal(t, "1.234,56", grid[1][3])
	})

	t.Run("fixed delimiter overrides sniffing", func(t *testing.T) {
		data := []byte("a;b\nc;d\n")

		grid, err := NewCSVReader(WithDelimiter(';')).Read(data)
		require.NoError(t, err)
		require.Len(t, grid[0], 2)
	})

	t.Run("empty data fails", func(t *testing.T) {
		_, err := NewCSVReader().Read(nil)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("non-UTF8 data fails", func(t *testing.T) {
		_, err := NewCSVReader().Read([]byte{0xFF, 0xFE, 0x00, 0x41})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("diacritic straddling the validation window", func(t *testing.T) {
		// place a two-byte rune so it starts on the last byte of the
		// 4 KB encoding-check window
		var buf bytes.Buffer
		buf.WriteString("Cont,Denumire\n701,")
		for buf.Len() < 4095 {
			buf.WriteByte('a')
		}
		buf.WriteString("ălăturate\n")

		data := buf.Bytes()
		require.True(t, utf8.Valid(data))

		grid, err := NewCSVReader().Read(data)
		require.NoError(t, err)
		require.Len(t, grid, 2)
	})

	t.Run("handles ragged rows", func(t *testing.T) {
		data := []byte("a,b,c\nd,e\nf\n")

		grid, err := NewCSVReader().Read(data)
		require.NoError(t, err)
		require.Len(t, grid, 3)
		assert.Len(t, grid[1], 2)
	})
}

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestXLSXReader_Read(t *testing.T) {
	t.Run("reads first sheet into grid", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"Cont", "Denumire", "Rulaj debitoare", "Rulaj creditoare"},
			{"701", "Venituri din vanzari", 0, 5000},
		})

		grid, err := NewXLSXReader().Read(data)
		require.NoError(t, err)

		require.Len(t, grid, 2)
		assert.Equal(t, "Cont", grid[0][0])
		assert.Equal(t, "701", grid[1][0])
	})

	t.Run("empty data fails", func(t *testing.T) {
		_, err := NewXLSXReader().Read(nil)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("garbage bytes fail", func(t *testing.T) {
		_, err := NewXLSXReader().Read([]byte("definitely not a zip archive"))
		assert.Error(t, err)
	})
}

func TestReader_Read(t *testing.T) {
	reader := NewReader()

	t.Run("dispatches csv by extension", func(t *testing.T) {
		grid, err := reader.Read("balanta.CSV", []byte("a,b\nc,d\n"))
		require.NoError(t, err)
		assert.Len(t, grid, 2)
	})

	t.Run("dispatches xlsx by extension", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{{"a", "b"}})
		grid, err := reader.Read("balanta.xlsx", data)
		require.NoError(t, err)
		assert.Len(t, grid, 1)
	})

	t.Run("unknown extension is rejected", func(t *testing.T) {
		_, err := reader.Read("statement.pdf", []byte("%PDF"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("Supports reports known extensions", func(t *testing.T) {
		assert.True(t, reader.Supports(".csv"))
		assert.True(t, reader.Supports(".XLSX"))
		assert.False(t, reader.Supports(".pdf"))
	})
}
