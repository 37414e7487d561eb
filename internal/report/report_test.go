package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/pipeline/sales"
)

var (
	orderHeader = []string{"OrderID", "Order Date", "Due Pickup Date", "Due Pickup Time",
		"Customer First Name", "Customer Last Name", "Order Type ", "Total", "Category"}
	itemHeader = []string{"OrderID", "Product Description", "Category", "Unit Price",
		"Subtotal (Calculated)", "CakeQty", "Tax Subtotal"}
)

func fixture() (domain.OrderSet, domain.ItemSet) {
	orders := sales.ParseOrders(domain.NewTable(domain.DefaultOrdersSheet, orderHeader, [][]string{
		{"A1", "11-01-2025", "11-05-2025", "10:00 AM", "Ann", "Lee", "Pickup", "35", "Retail"},
		{"B2", "11-02-2025", "", "", "Bob", "Ray", "Delivery", "12.50", "Retail"},
		{"C3", "12-01-2025", "12-03-2025", "", "Cy", "Dee", "Pickup", "8", "Retail"},
	}))
	items := sales.ParseItems(domain.NewTable(domain.DefaultItemsSheet, itemHeader, [][]string{
		{"a1", "Chocolate Cake with an extraordinarily long decorative description", "Cakes", "20", "20", "1", "1.60"},
		{"A1 ", "Croissant", "Pastry", "5", "15", "3", "1.20"},
		{"b2", "Sourdough", "Bread", "12.50", "12.50", "1", "1"},
		{"c3", "Bagel", "Bread", "8", "8", "2", "0.64"},
	}))
	return orders, items
}

func TestWriteOrderDetailsPDF(t *testing.T) {
	orders, items := fixture()
	ds := sales.Merge(orders, items, sales.LeftJoin)

	var buf bytes.Buffer
	h := Header{Title: "Order Details Report", DateStart: "2025-11-01", GeneratedAt: time.Now()}
	if err := WriteOrderDetailsPDF(&buf, h, sales.OrdersByPickupDate(ds)); err != nil {
		t.Fatalf("WriteOrderDetailsPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWriteProductByDayPDF(t *testing.T) {
	orders, items := fixture()
	ds := sales.Merge(orders, items, sales.LeftJoin)

	var buf bytes.Buffer
	h := Header{Title: "Product by Day Report", GeneratedAt: time.Now()}
	if err := WriteProductByDayPDF(&buf, h, sales.ProductsByPickupDay(ds)); err != nil {
		t.Fatalf("WriteProductByDayPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestWriteOrderDetailsPDF_ManyRowsPaginates(t *testing.T) {
	rows := make([][]string, 0, 200)
	for i := 0; i < 200; i++ {
		rows = append(rows, []string{"X" + strconv.Itoa(i), "11-01-2025", "11-05-2025", "", "N", "M", "Pickup", "1", ""})
	}
	orders := sales.ParseOrders(domain.NewTable(domain.DefaultOrdersSheet, orderHeader, rows))
	ds := sales.Merge(orders, domain.ItemSet{}, sales.LeftJoin)

	var buf bytes.Buffer
	if err := WriteOrderDetailsPDF(&buf, Header{Title: "Order Details Report", GeneratedAt: time.Now()}, sales.OrdersByPickupDate(ds)); err != nil {
		t.Fatalf("WriteOrderDetailsPDF: %v", err)
	}
	if bytes.Count(buf.Bytes(), []byte("/Type /Page\n")) < 2 {
		t.Error("expected more than one page")
	}
}

func TestSalesReportOutputs(t *testing.T) {
	orders, items := fixture()
	window := domain.ReportWindow{
		Start: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	}
	rep := sales.BuildReport(orders, items, window, time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC))

	var pdf bytes.Buffer
	if err := WriteSalesReportPDF(&pdf, rep); err != nil {
		t.Fatalf("WriteSalesReportPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}

	var text bytes.Buffer
	if err := WriteConsole(&text, rep); err != nil {
		t.Fatalf("WriteConsole: %v", err)
	}
	out := text.String()
	for _, want := range []string{
		"SALES REPORT",
		"Total Customer Orders: 2",
		"Matched Line Items: 3",
		"Total Revenue: $47.50",
		"Cakes: $20.00 (1 items)",
		"Pickup: $35.00 (1 orders)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q\n%s", want, out)
		}
	}
}

func TestDatasetTableCSV(t *testing.T) {
	orders, items := fixture()
	ds := sales.Merge(orders, items, sales.LeftJoin)

	header, rows := DatasetTable(ds)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	var hasOrderCat, hasItemCat bool
	for _, h := range header {
		hasOrderCat = hasOrderCat || h == "Category_order"
		hasItemCat = hasItemCat || h == "Category_item"
	}
	if !hasOrderCat || !hasItemCat {
		t.Errorf("shared column not suffixed: %v", header)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, header, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 5 || records[1][0] != "A1" {
		t.Errorf("csv = %v", records)
	}
}

func TestOrdersTableKeepsRawCells(t *testing.T) {
	orders, _ := fixture()
	header, rows := OrdersTable(orders)
	if len(header) != len(orderHeader) || rows[1][7] != "12.50" {
		t.Errorf("header=%v rows=%v", header, rows)
	}
}
