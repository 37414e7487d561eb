package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// BuildFilter parses request parameters. A malformed date_start or date_end
// is an error wrapping domain.ErrInvalidFilter; pickup dates that do not
// parse are kept as None and never match. When no pickup date parses the
// predicate imposes no constraint.
func BuildFilter(p domain.FilterParams) (domain.FilterSpec, error) {
	var spec domain.FilterSpec

	start, err := boundary("date_start", p.DateStart)
	if err != nil {
		return spec, err
	}
	end, err := boundary("date_end", p.DateEnd)
	if err != nil {
		return spec, err
	}
	spec.DateStart = start
	spec.DateEnd = end

	spec.OrderTypes = SplitList(p.OrderType)
	spec.Products = SplitList(p.Product)
	for _, raw := range SplitList(p.PickupDates) {
		day := domain.None[time.Time]()
		if t, ok := NormalizeDate(raw).Get(); ok {
			day = domain.Some(Day(t))
		}
		spec.PickupDates = append(spec.PickupDates, day)
	}
	return spec, nil
}

func boundary(name, raw string) (domain.Optional[time.Time], error) {
	if strings.TrimSpace(raw) == "" {
		return domain.None[time.Time](), nil
	}
	t, ok := NormalizeDate(raw).Get()
	if !ok {
		return domain.None[time.Time](), fmt.Errorf("%w: %s %q is not a date", domain.ErrInvalidFilter, name, raw)
	}
	return domain.Some(Day(t)), nil
}

// SplitList splits a comma-separated parameter, trimming entries and
// dropping empty ones.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Apply returns the records of ds matching every active predicate of spec.
// ds is not modified. Predicates on a column the source table lacks are
// skipped, except the order date range which then excludes every record.
func Apply(ds domain.Dataset, spec domain.FilterSpec) domain.Dataset {
	out := ds
	if spec.IsEmpty() {
		out.Records = append([]domain.MergedRecord(nil), ds.Records...)
		return out
	}
	out.Records = make([]domain.MergedRecord, 0, len(ds.Records))

	m := newMatcher(ds, spec)
	for _, rec := range ds.Records {
		if m.match(rec) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

type matcher struct {
	start, end   time.Time
	hasStart     bool
	hasEnd       bool
	orderTypes   map[string]struct{}
	products     []string
	pickupDays   map[time.Time]struct{}
	byOrderType  bool
	byProduct    bool
	byPickupDate bool
}

func newMatcher(ds domain.Dataset, spec domain.FilterSpec) matcher {
	var m matcher
	if t, ok := spec.DateStart.Get(); ok {
		m.start, m.hasStart = Day(t), true
	}
	if t, ok := spec.DateEnd.Get(); ok {
		m.end, m.hasEnd = Day(t).AddDate(0, 0, 1), true
	}

	if len(spec.OrderTypes) > 0 && ds.OrderColumns.Has(domain.ColOrderType) {
		m.byOrderType = true
		m.orderTypes = make(map[string]struct{}, len(spec.OrderTypes))
		for _, ot := range spec.OrderTypes {
			m.orderTypes[ot] = struct{}{}
		}
	}

	if len(spec.Products) > 0 && ds.ItemColumns.Has(domain.ColProductDescription) {
		m.byProduct = true
		for _, p := range spec.Products {
			m.products = append(m.products, strings.ToLower(p))
		}
	}

	if len(spec.PickupDates) > 0 && ds.OrderColumns.Has(domain.ColDuePickupDate) {
		days := make(map[time.Time]struct{}, len(spec.PickupDates))
		for _, d := range spec.PickupDates {
			if t, ok := d.Get(); ok {
				days[Day(t)] = struct{}{}
			}
		}
		m.pickupDays = days
		m.byPickupDate = len(days) > 0
	}
	return m
}

func (m matcher) match(rec domain.MergedRecord) bool {
	if m.hasStart || m.hasEnd {
		t, ok := rec.Order.OrderDate.Get()
		if !ok {
			return false
		}
		if m.hasStart && t.Before(m.start) {
			return false
		}
		if m.hasEnd && !t.Before(m.end) {
			return false
		}
	}

	if m.byOrderType {
		if _, ok := m.orderTypes[rec.Order.OrderType]; !ok {
			return false
		}
	}

	if m.byProduct {
		if rec.Item == nil || rec.Item.Description == "" {
			return false
		}
		desc := strings.ToLower(rec.Item.Description)
		found := false
		for _, p := range m.products {
			if strings.Contains(desc, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if m.byPickupDate {
		t, ok := rec.Order.DuePickupDate.Get()
		if !ok {
			return false
		}
		if _, ok := m.pickupDays[Day(t)]; !ok {
			return false
		}
	}
	return true
}
