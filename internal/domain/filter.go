package domain

import "time"

// FilterParams is the raw request shape. Multi-valued fields are comma-separated.
type FilterParams struct {
	DateStart   string `form:"date_start" json:"date_start,omitempty"`
	DateEnd     string `form:"date_end" json:"date_end,omitempty"`
	Product     string `form:"product" json:"product,omitempty"`
	PickupDates string `form:"pickup_dates" json:"pickup_dates,omitempty"`
	OrderType   string `form:"order_type" json:"order_type,omitempty"`
}

// FilterSpec is the parsed, immutable set of optional predicates. An empty
// predicate imposes no constraint.
type FilterSpec struct {
	DateStart   Optional[time.Time]
	DateEnd     Optional[time.Time]
	OrderTypes  []string
	Products    []string
	PickupDates []Optional[time.Time] // None entries never match; all-None imposes no constraint
}

// IsEmpty reports whether the spec constrains nothing.
func (f FilterSpec) IsEmpty() bool {
	return f.DateStart.IsNone() && f.DateEnd.IsNone() &&
		len(f.OrderTypes) == 0 && len(f.Products) == 0 && len(f.PickupDates) == 0
}
