package sales

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// DefaultTopProducts is how many products the summary breakdown keeps.
const DefaultTopProducts = 10

// UnknownProduct labels line counts whose record has no product description.
const UnknownProduct = "Unknown Product"

// Summarize computes the per-request scalars. Absent or unparseable amounts
// count as zero.
func Summarize(ds domain.Dataset) domain.SummaryResult {
	res := domain.SummaryResult{
		TotalItems:   len(ds.Records),
		TotalRevenue: decimal.Zero,
		OrderTotal:   decimal.Zero,
	}

	hasID := ds.OrderColumns.Has(domain.ColOrderID)
	if hasID {
		res.TotalOrders = len(distinctOrders(ds.Records))
	}
	if ds.ItemColumns.Has(domain.ColSubtotal) {
		for _, rec := range ds.Records {
			res.TotalRevenue = sumPresent(res.TotalRevenue, rec.Subtotal())
		}
	}
	if hasID && ds.OrderColumns.Has(domain.ColTotal) {
		for _, o := range firstPerOrder(ds.Records) {
			res.OrderTotal = sumPresent(res.OrderTotal, o.Total)
		}
	}
	return res
}

// Summary bundles Summarize with every breakdown the dashboard shows.
func Summary(ds domain.Dataset) domain.SalesSummary {
	return domain.SalesSummary{
		Summary:        Summarize(ds),
		CategorySales:  CategorySales(ds),
		ProductSales:   TopProducts(ds, DefaultTopProducts),
		OrderTypeSales: OrderTypeSales(ds),
		DailySales:     DailySales(ds),
	}
}

// CategorySales sums subtotal and quantity per category, sorted by category.
func CategorySales(ds domain.Dataset) []domain.CategorySales {
	if !ds.ItemColumns.Has(domain.ColCategory) || !ds.ItemColumns.Has(domain.ColSubtotal) {
		return []domain.CategorySales{}
	}

	idx := make(map[string]int)
	out := []domain.CategorySales{}
	for _, rec := range ds.Records {
		if rec.Item == nil {
			continue
		}
		i, ok := idx[rec.Item.Category]
		if !ok {
			i = len(out)
			idx[rec.Item.Category] = i
			out = append(out, domain.CategorySales{Category: rec.Item.Category})
		}
		out[i].Revenue = sumPresent(out[i].Revenue, rec.Item.Subtotal)
		out[i].Quantity = sumPresent(out[i].Quantity, rec.Item.Quantity)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Category < out[b].Category })
	return out
}

// TopProducts sums subtotal per product description and returns the n
// largest, descending by revenue with ties broken by name. n <= 0 keeps all.
func TopProducts(ds domain.Dataset, n int) []domain.ProductSales {
	if !ds.ItemColumns.Has(domain.ColProductDescription) || !ds.ItemColumns.Has(domain.ColSubtotal) {
		return []domain.ProductSales{}
	}

	idx := make(map[string]int)
	out := []domain.ProductSales{}
	for _, rec := range ds.Records {
		if rec.Item == nil {
			continue
		}
		i, ok := idx[rec.Item.Description]
		if !ok {
			i = len(out)
			idx[rec.Item.Description] = i
			out = append(out, domain.ProductSales{Product: rec.Item.Description})
		}
		out[i].Revenue = sumPresent(out[i].Revenue, rec.Item.Subtotal)
		out[i].Quantity = sumPresent(out[i].Quantity, rec.Item.Quantity)
	}
	sort.Slice(out, func(a, b int) bool {
		if c := out[a].Revenue.Cmp(out[b].Revenue); c != 0 {
			return c > 0
		}
		return out[a].Product < out[b].Product
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// OrderTypeSales sums the order-level total per order type. Each order is
// counted once no matter how many line items it has.
func OrderTypeSales(ds domain.Dataset) []domain.OrderTypeSales {
	if !ds.OrderColumns.Has(domain.ColOrderType) || !ds.OrderColumns.Has(domain.ColTotal) {
		return []domain.OrderTypeSales{}
	}

	orders := firstPerOrder(ds.Records)
	if !ds.OrderColumns.Has(domain.ColOrderID) {
		orders = orders[:0]
		for _, rec := range ds.Records {
			orders = append(orders, rec.Order)
		}
	}

	idx := make(map[string]int)
	out := []domain.OrderTypeSales{}
	for _, o := range orders {
		i, ok := idx[o.OrderType]
		if !ok {
			i = len(out)
			idx[o.OrderType] = i
			out = append(out, domain.OrderTypeSales{OrderType: o.OrderType})
		}
		out[i].Total = sumPresent(out[i].Total, o.Total)
		out[i].Orders++
	}
	sort.Slice(out, func(a, b int) bool { return out[a].OrderType < out[b].OrderType })
	return out
}

// DailySales groups by the calendar day of the order date, ascending.
// Records without an order date are left out.
func DailySales(ds domain.Dataset) []domain.DailySales {
	if !ds.OrderColumns.Has(domain.ColOrderDate) {
		return []domain.DailySales{}
	}

	type bucket struct {
		revenue decimal.Decimal
		orders  map[string]struct{}
	}
	days := make(map[time.Time]*bucket)
	for _, rec := range ds.Records {
		t, ok := rec.Order.OrderDate.Get()
		if !ok {
			continue
		}
		day := Day(t)
		b, ok := days[day]
		if !ok {
			b = &bucket{orders: make(map[string]struct{})}
			days[day] = b
		}
		b.revenue = sumPresent(b.revenue, rec.Subtotal())
		b.orders[rec.Order.OrderID] = struct{}{}
	}

	out := make([]domain.DailySales, 0, len(days))
	for day, b := range days {
		out = append(out, domain.DailySales{Date: day, Revenue: b.revenue, Orders: len(b.orders)})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.Before(out[b].Date) })
	return out
}

// Products returns the distinct non-empty product descriptions, sorted.
func Products(ds domain.Dataset) []string {
	if !ds.ItemColumns.Has(domain.ColProductDescription) {
		return []string{}
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, rec := range ds.Records {
		if rec.Item == nil || rec.Item.Description == "" {
			continue
		}
		if _, ok := seen[rec.Item.Description]; ok {
			continue
		}
		seen[rec.Item.Description] = struct{}{}
		out = append(out, rec.Item.Description)
	}
	sort.Strings(out)
	return out
}

// PickupDates returns the distinct due pickup days, newest first.
func PickupDates(ds domain.Dataset) []time.Time {
	if !ds.OrderColumns.Has(domain.ColDuePickupDate) {
		return []time.Time{}
	}
	seen := make(map[time.Time]struct{})
	out := []time.Time{}
	for _, rec := range ds.Records {
		t, ok := rec.Order.DuePickupDate.Get()
		if !ok {
			continue
		}
		day := Day(t)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].After(out[b]) })
	return out
}

// OrderDateRange returns the earliest and latest order dates.
func OrderDateRange(ds domain.Dataset) domain.DateRange {
	var r domain.DateRange
	for _, rec := range ds.Records {
		t, ok := rec.Order.OrderDate.Get()
		if !ok {
			continue
		}
		if lo, ok := r.Min.Get(); !ok || t.Before(lo) {
			r.Min = domain.Some(t)
		}
		if hi, ok := r.Max.Get(); !ok || t.After(hi) {
			r.Max = domain.Some(t)
		}
	}
	return r
}

// ProductsByPickupDay counts line items per product for each due pickup
// day. Days are ascending with the undated bucket last; products within a
// day are sorted by name.
func ProductsByPickupDay(ds domain.Dataset) []domain.PickupDay {
	type key struct {
		day   time.Time
		dated bool
	}
	counts := make(map[key]map[string]int)
	for _, rec := range ds.Records {
		k := key{}
		if t, ok := rec.Order.DuePickupDate.Get(); ok {
			k = key{day: Day(t), dated: true}
		}
		product := UnknownProduct
		if rec.Item != nil && rec.Item.Description != "" {
			product = rec.Item.Description
		}
		if counts[k] == nil {
			counts[k] = make(map[string]int)
		}
		counts[k][product]++
	}

	keys := make([]key, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].dated != keys[b].dated {
			return keys[a].dated
		}
		return keys[a].day.Before(keys[b].day)
	})

	out := make([]domain.PickupDay, 0, len(keys))
	for _, k := range keys {
		day := domain.PickupDay{}
		if k.dated {
			day.Date = domain.Some(k.day)
		}
		names := make([]string, 0, len(counts[k]))
		for name := range counts[k] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := counts[k][name]
			day.Products = append(day.Products, domain.ProductCount{Product: name, Count: c})
			day.Total += c
		}
		out = append(out, day)
	}
	return out
}

// OrdersByPickupDate groups records by order, then groups orders by the due
// pickup day of their first record. The undated bucket comes first, then
// days newest first. Orders keep first-seen order within a day.
func OrdersByPickupDate(ds domain.Dataset) []domain.PickupDateGroup {
	var orders []domain.OrderGroup
	idx := make(map[string]int)
	for _, rec := range ds.Records {
		i, ok := idx[rec.Order.OrderID]
		if !ok {
			i = len(orders)
			idx[rec.Order.OrderID] = i
			orders = append(orders, domain.OrderGroup{OrderID: displayID(rec.Order)})
		}
		orders[i].Rows = append(orders[i].Rows, rec)
	}

	var groups []domain.PickupDateGroup
	byDay := make(map[time.Time]int)
	undated := -1
	for _, og := range orders {
		t, ok := og.Rows[0].Order.DuePickupDate.Get()
		if !ok {
			if undated < 0 {
				undated = len(groups)
				groups = append(groups, domain.PickupDateGroup{})
			}
			groups[undated].Orders = append(groups[undated].Orders, og)
			continue
		}
		day := Day(t)
		i, seen := byDay[day]
		if !seen {
			i = len(groups)
			byDay[day] = i
			groups = append(groups, domain.PickupDateGroup{Date: domain.Some(day)})
		}
		groups[i].Orders = append(groups[i].Orders, og)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		ta, okA := groups[a].Date.Get()
		tb, okB := groups[b].Date.Get()
		if okA != okB {
			return !okA
		}
		return ta.After(tb)
	})
	return groups
}

func displayID(o domain.OrderRecord) string {
	if s := strings.TrimSpace(o.RawOrderID); s != "" {
		return s
	}
	return o.OrderID
}

func distinctOrders(recs []domain.MergedRecord) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, rec := range recs {
		ids[rec.Order.OrderID] = struct{}{}
	}
	return ids
}

// firstPerOrder returns one order per distinct canonical id in first-seen
// order. Its Total is the first present total among that order's records.
func firstPerOrder(recs []domain.MergedRecord) []domain.OrderRecord {
	idx := make(map[string]int)
	var out []domain.OrderRecord
	for _, rec := range recs {
		i, ok := idx[rec.Order.OrderID]
		if !ok {
			idx[rec.Order.OrderID] = len(out)
			out = append(out, rec.Order)
			continue
		}
		if out[i].Total.IsNone() && rec.Order.Total.IsSome() {
			out[i].Total = rec.Order.Total
		}
	}
	return out
}
