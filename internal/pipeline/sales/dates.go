package sales

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// DateStep is one named attempt in the date fallback chain.
type DateStep struct {
	Name  string
	Parse func(s string) (time.Time, bool)
}

// DateChain is tried in order and the first successful step wins. A value
// accepted by an earlier step is never re-parsed by a later one.
var DateChain = []DateStep{
	{Name: "mm-dd-yyyy", Parse: layoutStep("01-02-2006")},
	{Name: "m/d/yyyy", Parse: layoutStep("1/2/2006")},
	{Name: "month-first", Parse: monthFirst},
}

func layoutStep(layout string) func(string) (time.Time, bool) {
	return func(s string) (time.Time, bool) {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		return t, err == nil
	}
}

// currentYear fills dates written without a year.
var currentYear = func() int { return time.Now().Year() }

// monthFirst resolves anything else dateparse understands. Ambiguous numeric
// dates are read month before day and are never swapped to day-first. The
// written wall-clock date is kept even when the value carries a UTC offset.
func monthFirst(s string) (time.Time, bool) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	year := t.Year()
	if year == 0 {
		year = currentYear()
	}
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
}

var absenceLiterals = []string{"nan", "none", "nat"}

// IsAbsent reports whether a sheet cell textually means "no value".
func IsAbsent(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return true
	}
	for _, lit := range absenceLiterals {
		if strings.EqualFold(s, lit) {
			return true
		}
	}
	return false
}

// NormalizeDate parses a free-text date cell.
func NormalizeDate(raw string) domain.Optional[time.Time] {
	t, _ := MatchDate(raw)
	return t
}

// MatchDate is NormalizeDate that also reports the index into DateChain of
// the step that accepted the value, or -1 when none did.
func MatchDate(raw string) (domain.Optional[time.Time], int) {
	if IsAbsent(raw) {
		return domain.None[time.Time](), -1
	}
	s := strings.TrimSpace(raw)
	for i, step := range DateChain {
		if t, ok := step.Parse(s); ok {
			return domain.Some(t), i
		}
	}
	return domain.None[time.Time](), -1
}

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format("2006-01-02")
}
