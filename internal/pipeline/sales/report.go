package sales

import (
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// ReportSampleSize is how many merged rows a report keeps for preview.
const ReportSampleSize = 20

// BuildReport produces the standalone sales report for window. Orders are
// selected by order day, their line items are selected by canonical id, and
// the two are inner-joined for the breakdowns.
func BuildReport(orders domain.OrderSet, items domain.ItemSet, window domain.ReportWindow, now time.Time) domain.SalesReport {
	spec := domain.FilterSpec{
		DateStart: domain.Some(window.Start),
		DateEnd:   domain.Some(window.End),
	}

	inWindow := Apply(Merge(orders, domain.ItemSet{}, LeftJoin), spec)
	filteredOrders := domain.OrderSet{Columns: orders.Columns}
	ids := make(map[string]struct{}, len(inWindow.Records))
	for _, rec := range inWindow.Records {
		filteredOrders.Records = append(filteredOrders.Records, rec.Order)
		ids[rec.Order.OrderID] = struct{}{}
	}

	filteredItems := domain.ItemSet{Columns: items.Columns}
	canJoin := orders.Columns.Has(domain.ColOrderID) && items.Columns.Has(domain.ColOrderID)
	if canJoin {
		for _, it := range items.Records {
			if _, ok := ids[it.OrderID]; ok {
				filteredItems.Records = append(filteredItems.Records, it)
			}
		}
	} else {
		filteredItems.Records = items.Records
	}

	rep := domain.SalesReport{
		GeneratedAt:         now,
		Start:               Day(window.Start),
		End:                 Day(window.End),
		TotalCustomerOrders: len(filteredOrders.Records),
		TotalLineItems:      len(filteredItems.Records),
		OrderColumns:        orders.Columns,
		ItemColumns:         items.Columns,
		Orders:              filteredOrders,
		Items:               filteredItems,
	}

	for _, it := range filteredItems.Records {
		rep.TotalRevenue = sumPresent(rep.TotalRevenue, it.Subtotal)
		rep.TotalQuantity = sumPresent(rep.TotalQuantity, it.Quantity)
		rep.TotalTax = sumPresent(rep.TotalTax, ParseAmount(it.Fields[domain.ColTaxSubtotal]))
	}
	rep.TotalRevenue = rep.TotalRevenue.Round(2)
	rep.TotalTax = rep.TotalTax.Round(2)

	merged := Merge(filteredOrders, filteredItems, InnerJoin)
	rep.Merged = merged
	if !canJoin {
		return rep
	}
	rep.Matched = true
	rep.MatchedOrders = len(distinctOrders(merged.Records))
	rep.MatchedLineItems = len(merged.Records)

	rep.Categories = CategorySales(merged)
	for i := range rep.Categories {
		rep.Categories[i].Revenue = rep.Categories[i].Revenue.Round(2)
		rep.Categories[i].Quantity = rep.Categories[i].Quantity.Round(2)
	}
	rep.TopProducts = TopProducts(merged, DefaultTopProducts)
	for i := range rep.TopProducts {
		rep.TopProducts[i].Revenue = rep.TopProducts[i].Revenue.Round(2)
		rep.TopProducts[i].Quantity = rep.TopProducts[i].Quantity.Round(2)
	}
	rep.OrderTypes = OrderTypeSales(merged)
	for i := range rep.OrderTypes {
		rep.OrderTypes[i].Total = rep.OrderTypes[i].Total.Round(2)
	}

	n := len(merged.Records)
	if n > ReportSampleSize {
		n = ReportSampleSize
	}
	rep.Sample = merged.Records[:n]
	return rep
}
