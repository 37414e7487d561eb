package sales

import (
	"errors"
	"testing"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

func recordAt(id string, at time.Time) domain.MergedRecord {
	return domain.MergedRecord{Order: domain.OrderRecord{OrderID: id, OrderDate: domain.Some(at)}}
}

func TestApply_EndOfDayIsInclusive(t *testing.T) {
	lastMicro := date(2025, 11, 1).Add(24*time.Hour - time.Microsecond)
	ds := domain.Dataset{
		OrderColumns: domain.Columns{domain.ColOrderID, domain.ColOrderDate},
		Records: []domain.MergedRecord{
			recordAt("START", date(2025, 11, 1)),
			recordAt("LAST", lastMicro),
			recordAt("AFTER", lastMicro.Add(time.Microsecond)),
			recordAt("BEFORE", date(2025, 11, 1).Add(-time.Microsecond)),
			{Order: domain.OrderRecord{OrderID: "NODATE"}},
		},
	}
	spec, err := BuildFilter(domain.FilterParams{DateStart: "2025-11-01", DateEnd: "2025-11-01"})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}

	got := Apply(ds, spec)
	if len(got.Records) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(got.Records), got.Records)
	}
	if got.Records[0].Order.OrderID != "START" || got.Records[1].Order.OrderID != "LAST" {
		t.Errorf("got %s, %s", got.Records[0].Order.OrderID, got.Records[1].Order.OrderID)
	}
	if len(ds.Records) != 5 {
		t.Error("Apply modified its input")
	}
}

func TestApply_OrWithinAndAcross(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"P1", "11-01-2025", "", "A", "A", "Pickup", "10"},
			{"D1", "11-01-2025", "", "B", "B", "Delivery", "10"},
			{"P2", "11-01-2025", "", "C", "C", "Pickup", "10"},
			{"S1", "11-01-2025", "", "D", "D", "Shipping", "10"},
		},
		[][]string{
			{"P1", "Chocolate Cake", "Cakes", "10", "1"},
			{"D1", "Carrot CAKE", "Cakes", "10", "1"},
			{"P2", "Sourdough Bread", "Bread", "10", "1"},
			{"S1", "Cake Pops", "Cakes", "10", "1"},
		},
	)
	spec, err := BuildFilter(domain.FilterParams{OrderType: "Pickup, Delivery", Product: "cake"})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}

	got := Apply(ds, spec)
	var ids []string
	for _, rec := range got.Records {
		ids = append(ids, rec.Order.OrderID)
	}
	if len(ids) != 2 || ids[0] != "P1" || ids[1] != "D1" {
		t.Errorf("got %v, want [P1 D1]", ids)
	}
}

func TestApply_ProductNeverMatchesMissingItem(t *testing.T) {
	ds := buildDataset(
		[][]string{{"A1", "11-01-2025", "", "A", "A", "Pickup", "10"}},
		[][]string{{"ZZ", "Cake", "Cakes", "10", "1"}},
	)
	got := Apply(ds, domain.FilterSpec{Products: []string{"cake"}})
	if len(got.Records) != 0 {
		t.Errorf("got %d records, want 0", len(got.Records))
	}
}

func TestApply_PickupDates(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "11-01-2025", "11-05-2025", "A", "A", "Pickup", "10"},
			{"B1", "11-01-2025", "11/6/2025", "B", "B", "Pickup", "10"},
			{"C1", "11-01-2025", "", "C", "C", "Pickup", "10"},
			{"D1", "11-01-2025", "11-07-2025", "D", "D", "Pickup", "10"},
		},
		nil,
	)

	spec, err := BuildFilter(domain.FilterParams{PickupDates: "2025-11-05,not-a-date, 2025-11-06"})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}
	if len(spec.PickupDates) != 3 || spec.PickupDates[1].IsSome() {
		t.Fatalf("pickup dates = %+v, want 3 with the middle one absent", spec.PickupDates)
	}
	got := Apply(ds, spec)
	if len(got.Records) != 2 || got.Records[0].Order.OrderID != "A1" || got.Records[1].Order.OrderID != "B1" {
		t.Errorf("got %+v", got.Records)
	}
}

func TestApply_UnparseablePickupDatesImposeNoConstraint(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "11-01-2025", "11-05-2025", "A", "A", "Pickup", "10"},
			{"B1", "11-01-2025", "11-06-2025", "B", "B", "Pickup", "10"},
		},
		nil,
	)
	spec, err := BuildFilter(domain.FilterParams{PickupDates: "soon,later"})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}
	if got := Apply(ds, spec); len(got.Records) != 2 {
		t.Errorf("got %d records, want all 2", len(got.Records))
	}
}

func TestApply_EmptySpecKeepsEverything(t *testing.T) {
	ds := buildDataset(
		[][]string{
			{"A1", "", "", "A", "A", "Pickup", "10"},
			{"B1", "11-01-2025", "", "B", "B", "", ""},
		},
		nil,
	)
	spec, err := BuildFilter(domain.FilterParams{Product: " , ", OrderType: ""})
	if err != nil {
		t.Fatalf("BuildFilter: %v", err)
	}
	if !spec.IsEmpty() {
		t.Fatalf("spec = %+v, want empty", spec)
	}
	if got := Apply(ds, spec); len(got.Records) != 2 {
		t.Errorf("got %d records, want 2", len(got.Records))
	}
}

func TestApply_MissingColumnsImposeNoConstraint(t *testing.T) {
	orders := ParseOrders(domain.NewTable("o",
		[]string{domain.ColOrderID, domain.ColTotal},
		[][]string{{"A1", "10"}, {"B1", "20"}},
	))
	ds := Merge(orders, domain.ItemSet{}, LeftJoin)

	spec := domain.FilterSpec{
		OrderTypes:  []string{"Pickup"},
		Products:    []string{"cake"},
		PickupDates: []domain.Optional[time.Time]{domain.Some(date(2025, 11, 5))},
	}
	if got := Apply(ds, spec); len(got.Records) != 2 {
		t.Errorf("got %d records, want 2", len(got.Records))
	}

	spec.DateStart = domain.Some(date(2025, 1, 1))
	if got := Apply(ds, spec); len(got.Records) != 0 {
		t.Errorf("date range without an order date column: got %d records, want 0", len(got.Records))
	}
}

func TestBuildFilter_RejectsBadBoundary(t *testing.T) {
	for _, p := range []domain.FilterParams{
		{DateStart: "yesterday-ish"},
		{DateEnd: "TBD"},
	} {
		_, err := BuildFilter(p)
		if !errors.Is(err, domain.ErrInvalidFilter) {
			t.Errorf("BuildFilter(%+v) err = %v, want ErrInvalidFilter", p, err)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" Pickup ,,Delivery , ")
	if len(got) != 2 || got[0] != "Pickup" || got[1] != "Delivery" {
		t.Errorf("SplitList() = %q", got)
	}
	if SplitList("   ") != nil {
		t.Error("SplitList(blank) should be nil")
	}
}
