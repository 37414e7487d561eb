package sales

import (
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// JoinKind selects how orders without line items are treated.
type JoinKind int

const (
	// LeftJoin keeps every order; orders with no items yield one record with no item.
	LeftJoin JoinKind = iota
	// InnerJoin keeps only orders with at least one matching item.
	InnerJoin
)

func (k JoinKind) String() string {
	if k == InnerJoin {
		return "inner"
	}
	return "left"
}

// Merge joins orders to their line items on the canonical order id. Output
// follows order-table order, then item-table order within an order. When
// either side has no OrderID column no join is attempted and the result
// holds the orders alone.
func Merge(orders domain.OrderSet, items domain.ItemSet, kind JoinKind) domain.Dataset {
	if !orders.Columns.Has(domain.ColOrderID) || !items.Columns.Has(domain.ColOrderID) {
		ds := domain.Dataset{
			OrderColumns: orders.Columns,
			Records:      make([]domain.MergedRecord, 0, len(orders.Records)),
		}
		for _, o := range orders.Records {
			ds.Records = append(ds.Records, domain.MergedRecord{Order: o})
		}
		return ds
	}

	byOrder := make(map[string][]int, len(items.Records))
	for i, it := range items.Records {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], i)
	}

	ds := domain.Dataset{
		OrderColumns: orders.Columns,
		ItemColumns:  items.Columns,
		Joined:       true,
		Records:      make([]domain.MergedRecord, 0, len(items.Records)+len(orders.Records)),
	}
	for _, o := range orders.Records {
		matches := byOrder[o.OrderID]
		if len(matches) == 0 {
			if kind == LeftJoin {
				ds.Records = append(ds.Records, domain.MergedRecord{Order: o})
			}
			continue
		}
		for _, idx := range matches {
			ds.Records = append(ds.Records, domain.MergedRecord{Order: o, Item: &items.Records[idx]})
		}
	}
	return ds
}

// Side says which source table a flattened column comes from.
type Side int

const (
	OrderSide Side = iota
	ItemSide
)

// FlatColumn is one column of a flattened merge. Name carries the _order or
// _item suffix when Field exists in both tables.
type FlatColumn struct {
	Name  string
	Field string
	Side  Side
}

// Raw returns the source cell for rec, with OrderID in its canonical form.
// ok is false when the column is on the item side and rec has no item.
func (c FlatColumn) Raw(rec domain.MergedRecord) (string, bool) {
	if c.Side == ItemSide {
		if rec.Item == nil {
			return "", false
		}
		return rec.Item.Fields[c.Field], true
	}
	if c.Field == domain.ColOrderID {
		return rec.Order.OrderID, true
	}
	return rec.Order.Fields[c.Field], true
}

// FlatColumns lists the columns of ds as one wide table: order columns
// first, then item columns, with the shared OrderID emitted once.
func FlatColumns(ds domain.Dataset) []FlatColumn {
	shared := make(map[string]bool)
	if ds.Joined {
		for _, c := range ds.ItemColumns {
			if c != domain.ColOrderID && ds.OrderColumns.Has(c) {
				shared[c] = true
			}
		}
	}

	cols := make([]FlatColumn, 0, len(ds.OrderColumns)+len(ds.ItemColumns))
	for _, c := range ds.OrderColumns {
		if c == "" {
			continue
		}
		name := c
		if shared[c] {
			name = c + domain.OrderSuffix
		}
		cols = append(cols, FlatColumn{Name: name, Field: c, Side: OrderSide})
	}
	if !ds.Joined {
		return cols
	}
	for _, c := range ds.ItemColumns {
		if c == "" || c == domain.ColOrderID {
			continue
		}
		name := c
		if shared[c] {
			name = c + domain.ItemSuffix
		}
		cols = append(cols, FlatColumn{Name: name, Field: c, Side: ItemSide})
	}
	return cols
}

// FlattenRecord renders rec as a flat map of raw cell values. Item-side
// columns are omitted when rec has no item.
func FlattenRecord(cols []FlatColumn, rec domain.MergedRecord) map[string]string {
	out := make(map[string]string, len(cols))
	for _, c := range cols {
		if v, ok := c.Raw(rec); ok {
			out[c.Name] = v
		}
	}
	return out
}
