package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is one row of the customer orders sheet.
type OrderRecord struct {
	OrderID       string // canonical join key: trimmed, upper-cased
	RawOrderID    string
	OrderDate     Optional[time.Time]
	DuePickupDate Optional[time.Time]
	DuePickupTime string
	FirstName     string
	LastName      string
	OrderType     string
	Total         Optional[decimal.Decimal]
	Fields        Row
}

// CustomerName joins first and last name the way the printed reports show it.
func (o OrderRecord) CustomerName() string {
	switch {
	case o.FirstName == "":
		return o.LastName
	case o.LastName == "":
		return o.FirstName
	default:
		return o.FirstName + " " + o.LastName
	}
}

// ProductLineRecord is one row of the ordered products sheet.
type ProductLineRecord struct {
	OrderID     string
	RawOrderID  string
	Description string
	Category    string
	UnitPrice   Optional[decimal.Decimal]
	Subtotal    Optional[decimal.Decimal]
	Quantity    Optional[decimal.Decimal]
	Fields      Row
}

// OrderSet is the parsed orders table.
type OrderSet struct {
	Columns Columns
	Records []OrderRecord
}

// ItemSet is the parsed line items table.
type ItemSet struct {
	Columns Columns
	Records []ProductLineRecord
}

// MergedRecord pairs an order with one of its line items. Item is nil when
// the order has no matching line item or the merge degraded to orders only.
type MergedRecord struct {
	Order OrderRecord
	Item  *ProductLineRecord
}

func (m MergedRecord) ProductDescription() Optional[string] {
	if m.Item == nil {
		return None[string]()
	}
	return Some(m.Item.Description)
}

func (m MergedRecord) Subtotal() Optional[decimal.Decimal] {
	if m.Item == nil {
		return None[decimal.Decimal]()
	}
	return m.Item.Subtotal
}

// Dataset is a merged record set together with the columns each source table
// actually carried, so computations can guard on optional columns.
type Dataset struct {
	Records      []MergedRecord
	OrderColumns Columns
	ItemColumns  Columns
	Joined       bool
}

// Snapshot is the cached result of one successful upstream load.
type Snapshot struct {
	Orders   OrderSet
	Items    ItemSet
	Dataset  Dataset
	Revision string
	LoadedAt time.Time
}
