package report

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// MaxCellLength is the longest text a report cell shows before truncation.
const MaxCellLength = 50

const cellDateLayout = "01/02/2006"

// FormatCurrency renders v as US dollars with thousands separators and two
// decimals. Example: 1234.5 => "$1,234.50"; -3 => "-$3.00".
func FormatCurrency(v decimal.Decimal) string {
	prefix := "$"
	if v.IsNegative() {
		prefix = "-$"
		v = v.Neg()
	}
	s := v.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	return prefix + groupThousands(intPart) + "." + fracPart
}

// FormatQuantity renders v rounded to a whole number with separators.
func FormatQuantity(v decimal.Decimal) string {
	s := v.Round(0).String()
	if strings.HasPrefix(s, "-") {
		return "-" + groupThousands(s[1:])
	}
	return groupThousands(s)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	if n < 0 {
		return "-" + groupThousands(strconv.Itoa(-n))
	}
	return groupThousands(strconv.Itoa(n))
}

// groupThousands inserts commas into a string of digits.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var buf []byte
	count := 0
	for i := len(s) - 1; i >= 0; i-- {
		buf = append(buf, s[i])
		count++
		if count == 3 && i != 0 {
			buf = append(buf, ',')
			count = 0
		}
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Truncate shortens s to max runes, replacing the tail with "...".
func Truncate(s string, max int) string {
	if max <= 3 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// Cell formats free text for a table cell.
func Cell(s string) string {
	return Truncate(strings.TrimSpace(s), MaxCellLength)
}

// CellDate formats an optional date as MM/DD/YYYY, or "" when absent.
func CellDate(d domain.Optional[time.Time]) string {
	t, ok := d.Get()
	if !ok {
		return ""
	}
	return t.Format(cellDateLayout)
}
