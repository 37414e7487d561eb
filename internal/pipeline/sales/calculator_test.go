package sales

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize_OrderTotalCountedOncePerOrder(t *testing.T) {
	ds := buildDataset(
		[][]string{{"A1", "11-01-2025", "", "Ann", "Lee", "Pickup", "30"}},
		[][]string{
			{"A1", "Cake", "Cakes", "10", "1"},
			{"A1", "Pie", "Pies", "10", "1"},
			{"A1", "Tart", "Pies", "10", "1"},
		},
	)

	got := Summarize(ds)
	if got.TotalOrders != 1 || got.TotalItems != 3 {
		t.Errorf("orders/items = %d/%d, want 1/3", got.TotalOrders, got.TotalItems)
	}
	if !got.OrderTotal.Equal(dec("30")) {
		t.Errorf("OrderTotal = %s, want 30", got.OrderTotal)
	}
	if !got.TotalRevenue.Equal(dec("30")) {
		t.Errorf("TotalRevenue = %s, want 30", got.TotalRevenue)
	}

	types := OrderTypeSales(ds)
	if len(types) != 1 || !types[0].Total.Equal(dec("30")) || types[0].Orders != 1 {
		t.Errorf("OrderTypeSales = %+v, want one Pickup entry of 30", types)
	}
}

func TestSummarize_NullSafe(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "nan", "", "", "", "Pickup", "None"},
			{"B1", "11-01-2025", "", "", "", "Pickup", "n/a"},
		},
		[][]string{
			{"A1", "Cake", "Cakes", "abc", ""},
			{"B1", "Pie", "Pies", "$1,000.25", "2"},
		},
	)

	got := Summarize(ds)
	if !got.TotalRevenue.Equal(dec("1000.25")) {
		t.Errorf("TotalRevenue = %s, want 1000.25", got.TotalRevenue)
	}
	if !got.OrderTotal.IsZero() {
		t.Errorf("OrderTotal = %s, want 0", got.OrderTotal)
	}
}

func TestSummarize_FirstPresentTotalPerOrder(t *testing.T) {
	ds := domain.Dataset{
		OrderColumns: domain.Columns{domain.ColOrderID, domain.ColTotal},
		Records: []domain.MergedRecord{
			{Order: domain.OrderRecord{OrderID: "A1"}},
			{Order: domain.OrderRecord{OrderID: "A1", Total: domain.Some(dec("12"))}},
			{Order: domain.OrderRecord{OrderID: "A1", Total: domain.Some(dec("99"))}},
		},
	}
	if got := Summarize(ds).OrderTotal; !got.Equal(dec("12")) {
		t.Errorf("OrderTotal = %s, want 12", got)
	}
}

func TestTopProducts_SortedAndTruncated(t *testing.T) {
	var orders, items [][]string
	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("O%d", i)
		orders = append(orders, []string{id, "11-01-2025", "", "", "", "Pickup", "1"})
		items = append(items, []string{id, fmt.Sprintf("Product %02d", i), "Cakes", fmt.Sprint(i * 10), "1"})
	}
	// A tie on revenue with Product 12 is broken by name.
	orders = append(orders, []string{"X", "11-01-2025", "", "", "", "Pickup", "1"})
	items = append(items, []string{"X", "Apple Pie", "Pies", "120", "1"})

	got := TopProducts(buildDataset(orders, items), DefaultTopProducts)
	if len(got) != 10 {
		t.Fatalf("got %d products, want 10", len(got))
	}
	if got[0].Product != "Apple Pie" || got[1].Product != "Product 12" {
		t.Errorf("head = %s, %s", got[0].Product, got[1].Product)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Revenue.GreaterThan(got[i-1].Revenue) {
			t.Errorf("not descending at %d: %s > %s", i, got[i].Revenue, got[i-1].Revenue)
		}
	}
	if last := got[9]; last.Product != "Product 04" {
		t.Errorf("last = %s, want Product 04", last.Product)
	}
}

func TestCategorySales_SortedByKeyWithQuantity(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "11-01-2025", "", "", "", "Pickup", "1"},
			{"B1", "11-01-2025", "", "", "", "Pickup", "1"},
		},
		[][]string{
			{"A1", "Pie", "Pies", "5", "2"},
			{"A1", "Cake", "Cakes", "10", "1"},
			{"B1", "Cake", "Cakes", "20", "3"},
		},
	)
	got := CategorySales(ds)
	if len(got) != 2 || got[0].Category != "Cakes" || got[1].Category != "Pies" {
		t.Fatalf("got %+v", got)
	}
	if !got[0].Revenue.Equal(dec("30")) || !got[0].Quantity.Equal(dec("4")) {
		t.Errorf("Cakes = %+v", got[0])
	}
}

func TestDailySales(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"B1", "11-02-2025", "", "", "", "Pickup", "1"},
			{"A1", "11-01-2025", "", "", "", "Pickup", "1"},
			{"A2", "11/1/2025", "", "", "", "Pickup", "1"},
			{"N1", "", "", "", "", "Pickup", "1"},
		},
		[][]string{
			{"A1", "Cake", "Cakes", "10", "1"},
			{"A1", "Pie", "Pies", "5", "1"},
			{"A2", "Pie", "Pies", "5", "1"},
			{"B1", "Pie", "Pies", "7", "1"},
			{"N1", "Pie", "Pies", "100", "1"},
		},
	)
	got := DailySales(ds)
	if len(got) != 2 {
		t.Fatalf("got %d days, want 2", len(got))
	}
	if !got[0].Date.Equal(date(2025, 11, 1)) || got[0].Orders != 2 || !got[0].Revenue.Equal(dec("20")) {
		t.Errorf("day 1 = %+v", got[0])
	}
	if !got[1].Date.Equal(date(2025, 11, 2)) || got[1].Orders != 1 {
		t.Errorf("day 2 = %+v", got[1])
	}
}

func TestBreakdowns_MissingColumnsYieldEmpty(t *testing.T) {
	orders := ParseOrders(domain.NewTable("o", []string{domain.ColOrderID}, [][]string{{"A1"}}))
	items := ParseItems(domain.NewTable("i", []string{domain.ColOrderID}, [][]string{{"A1"}}))
	ds := Merge(orders, items, LeftJoin)

	s := Summary(ds)
	if len(s.CategorySales) != 0 || len(s.ProductSales) != 0 || len(s.OrderTypeSales) != 0 || len(s.DailySales) != 0 {
		t.Errorf("expected empty breakdowns, got %+v", s)
	}
	if s.Summary.TotalOrders != 1 || s.Summary.TotalItems != 1 {
		t.Errorf("summary = %+v", s.Summary)
	}
	if s.CategorySales == nil || s.DailySales == nil {
		t.Error("empty breakdowns should be non-nil so they encode as []")
	}
}

func TestProductsAndPickupDates(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "11-03-2025", "11-05-2025", "", "", "Pickup", "1"},
			{"B1", "11-01-2025", "11-07-2025", "", "", "Pickup", "1"},
			{"C1", "11-02-2025", "11-05-2025", "", "", "Pickup", "1"},
			{"D1", "", "", "", "", "Pickup", "1"},
		},
		[][]string{
			{"A1", "Pie", "Pies", "1", "1"},
			{"B1", "Cake", "Cakes", "1", "1"},
			{"C1", "Pie", "Pies", "1", "1"},
		},
	)

	products := Products(ds)
	if len(products) != 2 || products[0] != "Cake" || products[1] != "Pie" {
		t.Errorf("Products() = %v", products)
	}

	days := PickupDates(ds)
	if len(days) != 2 || !days[0].Equal(date(2025, 11, 7)) || !days[1].Equal(date(2025, 11, 5)) {
		t.Errorf("PickupDates() = %v", days)
	}

	r := OrderDateRange(ds)
	if !r.Min.OrZero().Equal(date(2025, 11, 1)) || !r.Max.OrZero().Equal(date(2025, 11, 3)) {
		t.Errorf("OrderDateRange() = %v..%v", r.Min.OrZero(), r.Max.OrZero())
	}
}

func TestProductsByPickupDay(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "", "11-07-2025", "", "", "Pickup", "1"},
			{"B1", "", "", "", "", "Pickup", "1"},
			{"C1", "", "11-05-2025", "", "", "Pickup", "1"},
		},
		[][]string{
			{"A1", "Pie", "Pies", "1", "1"},
			{"A1", "Cake", "Cakes", "1", "1"},
			{"A1", "Pie", "Pies", "1", "1"},
			{"B1", "Cake", "Cakes", "1", "1"},
			{"C1", "Bread", "Bread", "1", "1"},
		},
	)

	got := ProductsByPickupDay(ds)
	if len(got) != 3 {
		t.Fatalf("got %d days, want 3", len(got))
	}
	if !got[0].Date.OrZero().Equal(date(2025, 11, 5)) || !got[1].Date.OrZero().Equal(date(2025, 11, 7)) {
		t.Errorf("days out of order: %v, %v", got[0].Date.OrZero(), got[1].Date.OrZero())
	}
	if got[2].Date.IsSome() {
		t.Error("undated bucket should come last")
	}
	nov7 := got[1]
	if nov7.Total != 3 || len(nov7.Products) != 2 || nov7.Products[0].Product != "Cake" || nov7.Products[1].Count != 2 {
		t.Errorf("Nov 7 = %+v", nov7)
	}
}

func TestOrdersByPickupDate(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "", "11-05-2025", "", "", "Pickup", "1"},
			{"B1", "", "", "", "", "Pickup", "1"},
			{"C1", "", "11-07-2025", "", "", "Pickup", "1"},
			{"D1", "", "11-05-2025", "", "", "Pickup", "1"},
		},
		[][]string{
			{"A1", "Pie", "Pies", "1", "1"},
			{"A1", "Cake", "Cakes", "1", "1"},
			{"C1", "Bread", "Bread", "1", "1"},
		},
	)

	got := OrdersByPickupDate(ds)
	if len(got) != 3 {
		t.Fatalf("got %d groups, want 3", len(got))
	}
	if got[0].Date.IsSome() || got[0].Orders[0].OrderID != "B1" {
		t.Errorf("first group = %+v, want undated B1", got[0])
	}
	if !got[1].Date.OrZero().Equal(date(2025, 11, 7)) || !got[2].Date.OrZero().Equal(date(2025, 11, 5)) {
		t.Errorf("dated groups not newest first")
	}
	nov5 := got[2]
	if len(nov5.Orders) != 2 || nov5.Orders[0].OrderID != "A1" || len(nov5.Orders[0].Rows) != 2 {
		t.Errorf("Nov 5 = %+v", nov5)
	}
}

func TestEndToEnd_SingleOrderScenario(t *testing.T) {
	ds := buildDataset(
		[][]string{{"A1", "11-01-2025", "", "", "", "Pickup", "20"}},
		[][]string{{"a1", "Cake", "", "20", ""}},
	)
	spec, err := BuildFilter(domain.FilterParams{DateStart: "2025-11-01", DateEnd: "2025-11-01"})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}

	filtered := Apply(ds, spec)
	if len(filtered.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(filtered.Records))
	}
	sum := Summarize(filtered)
	if sum.TotalOrders != 1 {
		t.Errorf("TotalOrders = %d, want 1", sum.TotalOrders)
	}
	if sum.TotalRevenue.StringFixed(2) != "20.00" {
		t.Errorf("TotalRevenue = %s, want 20.00", sum.TotalRevenue.StringFixed(2))
	}
}
