package sales

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// ParseAmount coerces a money or quantity cell. A leading "$" and thousands
// separators are accepted; anything else unparseable is None.
func ParseAmount(raw string) domain.Optional[decimal.Decimal] {
	if IsAbsent(raw) {
		return domain.None[decimal.Decimal]()
	}
	s := strings.TrimSpace(raw)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return domain.None[decimal.Decimal]()
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return domain.None[decimal.Decimal]()
	}
	if neg {
		d = d.Neg()
	}
	return domain.Some(d)
}

// sumPresent adds v to acc, treating None as zero.
func sumPresent(acc decimal.Decimal, v domain.Optional[decimal.Decimal]) decimal.Decimal {
	if d, ok := v.Get(); ok {
		return acc.Add(d)
	}
	return acc
}
