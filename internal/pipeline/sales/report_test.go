package sales

import (
	"testing"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

func TestBuildReport(t *testing.T) {
	orders := ParseOrders(domain.NewTable("o", orderHeader, [][]string{
		{"A1", "11-01-2025", "", "", "", "Pickup", "30"},
		{"B1", "11-15-2025", "", "", "", "Delivery", "12.345"},
		{"C1", "11-16-2025", "", "", "", "Pickup", "99"},
		{"D1", "11-02-2025", "", "", "", "Pickup", "5"},
	}))
	items := ParseItems(domain.NewTable("i",
		append(append([]string{}, itemHeader...), domain.ColTaxSubtotal),
		[][]string{
			{"a1", "Cake", "Cakes", "10", "1", "0.80"},
			{"A1", "Pie", "Pies", "20", "2", "1.60"},
			{"B1", "Cake", "Cakes", "12.345", "1", "1"},
			{"C1", "Cake", "Cakes", "99", "9", "7"},
		},
	))
	now := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

	rep := BuildReport(orders, items, domain.ReportWindow{Start: date(2025, 11, 1), End: date(2025, 11, 15)}, now)

	if rep.TotalCustomerOrders != 3 {
		t.Errorf("TotalCustomerOrders = %d, want 3", rep.TotalCustomerOrders)
	}
	if rep.TotalLineItems != 3 {
		t.Errorf("TotalLineItems = %d, want 3", rep.TotalLineItems)
	}
	if !rep.Matched || rep.MatchedOrders != 2 || rep.MatchedLineItems != 3 {
		t.Errorf("matched = %v %d/%d, want true 2/3", rep.Matched, rep.MatchedOrders, rep.MatchedLineItems)
	}
	if got := rep.TotalRevenue.String(); got != "42.35" {
		t.Errorf("TotalRevenue = %s, want 42.35", got)
	}
	if got := rep.TotalTax.String(); got != "3.4" {
		t.Errorf("TotalTax = %s, want 3.4", got)
	}
	if got := rep.TotalQuantity.String(); got != "4" {
		t.Errorf("TotalQuantity = %s, want 4", got)
	}
	if len(rep.TopProducts) != 2 || rep.TopProducts[0].Product != "Cake" {
		t.Errorf("TopProducts = %+v", rep.TopProducts)
	}
	if len(rep.Sample) != 3 {
		t.Errorf("Sample has %d rows, want 3", len(rep.Sample))
	}
	if !rep.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v", rep.GeneratedAt)
	}
}

func TestBuildReport_EmptyWindow(t *testing.T) {
	orders := ParseOrders(domain.NewTable("o", orderHeader, [][]string{
		{"A1", "10-01-2025", "", "", "", "Pickup", "30"},
	}))
	items := ParseItems(domain.NewTable("i", itemHeader, [][]string{{"A1", "Cake", "Cakes", "30", "1"}}))

	rep := BuildReport(orders, items, domain.ReportWindow{Start: date(2025, 11, 1), End: date(2025, 11, 15)}, time.Now())
	if rep.TotalCustomerOrders != 0 || rep.TotalLineItems != 0 || rep.MatchedOrders != 0 {
		t.Errorf("report = %+v", rep)
	}
	if !rep.TotalRevenue.IsZero() {
		t.Errorf("TotalRevenue = %s, want 0", rep.TotalRevenue)
	}
}
