package finance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a raw cell value into a finite float64. It never
// fails: unparsable input degrades to 0, since trial balance exports
// routinely contain blank and garbage cells.
//
// String values are interpreted with European locale conventions: every "."
// is a thousands separator and is removed, every "," is the decimal
// separator and becomes ".". "1.234.567,89" therefore parses as 1234567.89.
func ParseAmount(value Cell) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmountString(v)
	default:
		return parseAmountString(fmt.Sprintf("%v", v))
	}
}

func parseAmountString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CellString renders a raw cell value as a trimmed string
func CellString(value Cell) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
