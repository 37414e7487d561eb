package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// Header is the title block shared by every PDF report.
type Header struct {
	Title       string
	DateStart   string
	DateEnd     string
	GeneratedAt time.Time
}

type rgb struct{ r, g, b int }

var (
	colorAccent  = rgb{0x66, 0x7e, 0xea}
	colorDark    = rgb{0x34, 0x49, 0x5e}
	colorTitle   = rgb{0x1a, 0x1a, 0x1a}
	colorHeading = rgb{0x2c, 0x3e, 0x50}
	colorGroup   = rgb{0xf0, 0xf0, 0xf0}
	colorOrder   = rgb{0xe8, 0xf4, 0xf8}
	colorStripe  = rgb{0xf8, 0xf9, 0xfa}
	colorWhite   = rgb{0xff, 0xff, 0xff}
)

const (
	pageMargin = 12.7 // half an inch
	rowHeight  = 6.0
)

// document wraps fpdf with the table helpers the reports share.
type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument() *document {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()
	return &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d *document) fill(c rgb)  { d.pdf.SetFillColor(c.r, c.g, c.b) }
func (d *document) color(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }

func (d *document) title(h Header) {
	d.pdf.SetFont("Helvetica", "B", 18)
	d.color(colorTitle)
	d.pdf.CellFormat(0, 10, d.tr(h.Title), "", 1, "C", false, 0, "")
	d.pdf.Ln(4)

	d.pdf.SetFont("Helvetica", "", 10)
	if h.DateStart != "" || h.DateEnd != "" {
		text := "Date Range: " + h.DateStart
		if h.DateEnd != "" {
			text += " to " + h.DateEnd
		}
		d.pdf.CellFormat(0, 5, d.tr(text), "", 1, "L", false, 0, "")
		d.pdf.Ln(2)
	}
	generated := "Generated: " + h.GeneratedAt.Format("January 02, 2006 at 03:04 PM")
	d.pdf.CellFormat(0, 5, d.tr(generated), "", 1, "L", false, 0, "")
	d.pdf.Ln(6)
}

func (d *document) heading(text string) {
	d.ensureSpace(rowHeight * 3)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.color(colorHeading)
	d.pdf.Ln(2)
	d.pdf.CellFormat(0, 8, d.tr(text), "", 1, "L", false, 0, "")
}

// ensureSpace starts a new page when h millimetres do not fit.
func (d *document) ensureSpace(h float64) bool {
	_, pageH := d.pdf.GetPageSize()
	if d.pdf.GetY()+h <= pageH-pageMargin {
		return false
	}
	d.pdf.AddPage()
	return true
}

// table is a bordered grid whose header repeats on every page.
type table struct {
	doc     *document
	widths  []float64
	aligns  []string
	header  []string
	headBg  rgb
	rowFont float64
	rows    int
}

func (d *document) newTable(header []string, widths []float64, headBg rgb, rowFont float64) *table {
	aligns := make([]string, len(header))
	for i := range aligns {
		aligns[i] = "L"
	}
	t := &table{doc: d, widths: widths, aligns: aligns, header: header, headBg: headBg, rowFont: rowFont}
	t.drawHeader()
	return t
}

func (t *table) align(col int, a string) *table {
	t.aligns[col] = a
	return t
}

func (t *table) drawHeader() {
	d := t.doc
	d.ensureSpace(rowHeight * 2)
	d.pdf.SetFont("Helvetica", "B", t.rowFont+1)
	d.fill(t.headBg)
	d.color(colorWhite)
	d.pdf.SetDrawColor(128, 128, 128)
	for i, h := range t.header {
		d.pdf.CellFormat(t.widths[i], rowHeight+2, d.tr(h), "1", 0, t.aligns[i], true, 0, "")
	}
	d.pdf.Ln(-1)
}

// row draws one line. A nil bg alternates white and striped rows.
func (t *table) row(values []string, bg *rgb, bold bool) {
	d := t.doc
	if d.ensureSpace(rowHeight) {
		t.drawHeader()
	}
	style := ""
	if bold {
		style = "B"
	}
	d.pdf.SetFont("Helvetica", style, t.rowFont)
	d.color(colorTitle)

	fill := colorWhite
	if bg != nil {
		fill = *bg
	} else if t.rows%2 == 1 {
		fill = colorStripe
	}
	d.fill(fill)
	for i, v := range values {
		d.pdf.CellFormat(t.widths[i], rowHeight, d.tr(v), "1", 0, t.aligns[i], true, 0, "")
	}
	d.pdf.Ln(-1)
	t.rows++
}

func (d *document) output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

const noDate = "No Date"

var orderDetailColumns = []string{
	domain.ColDuePickupDate, domain.ColDuePickupTime, "Customer Name",
	domain.ColProductDescription, domain.ColOrderDate, domain.ColOrderID,
}

// WriteOrderDetailsPDF renders orders grouped by pickup date. Multi-line
// orders get a header row followed by one description row per item.
func WriteOrderDetailsPDF(w io.Writer, h Header, groups []domain.PickupDateGroup) error {
	d := newDocument()
	d.title(h)

	widths := []float64{30.5, 25.4, 38.1, 63.5, 25.4, 25.4}
	t := d.newTable(orderDetailColumns, widths, colorAccent, 8)

	for _, g := range groups {
		label := noDate
		if day, ok := g.Date.Get(); ok {
			label = fmt.Sprintf("%s (%s)", day.Format(cellDateLayout), day.Weekday())
		}
		groupRow := make([]string, len(orderDetailColumns))
		groupRow[0] = "Due Pickup Date: " + label
		bg := colorGroup
		t.row(groupRow, &bg, true)

		for _, order := range g.Orders {
			if len(order.Rows) == 0 {
				continue
			}
			first := order.Rows[0]
			if len(order.Rows) > 1 {
				header := orderDetailRow(first)
				header[3] = fmt.Sprintf("Order: %d items", len(order.Rows))
				bg := colorOrder
				t.row(header, &bg, true)
				for _, rec := range order.Rows {
					line := make([]string, len(orderDetailColumns))
					line[3] = Cell(rec.ProductDescription().OrZero())
					t.row(line, nil, false)
				}
				continue
			}
			t.row(orderDetailRow(first), nil, false)
		}
	}
	return d.output(w)
}

func orderDetailRow(rec domain.MergedRecord) []string {
	return []string{
		CellDate(rec.Order.DuePickupDate),
		Cell(rec.Order.DuePickupTime),
		Cell(rec.Order.CustomerName()),
		Cell(rec.ProductDescription().OrZero()),
		CellDate(rec.Order.OrderDate),
		Cell(rec.Order.RawOrderID),
	}
}

// WriteProductByDayPDF renders one product table per pickup day with a day
// total, then the grand total of line items.
func WriteProductByDayPDF(w io.Writer, h Header, days []domain.PickupDay) error {
	d := newDocument()
	d.title(h)

	grand := 0
	for _, day := range days {
		label := noDate
		if t, ok := day.Date.Get(); ok {
			label = t.Format("Monday, Jan 02, 2006")
		}
		d.heading(label)

		t := d.newTable([]string{domain.ColProductDescription, "Quantity"}, []float64{114.3, 38.1}, colorAccent, 9).
			align(1, "C")
		for _, p := range day.Products {
			t.row([]string{Cell(p.Product), FormatCount(p.Count)}, nil, false)
		}
		bg := colorGroup
		t.row([]string{"Total", FormatCount(day.Total)}, &bg, true)
		grand += day.Total
		d.pdf.Ln(6)
	}

	d.ensureSpace(10)
	d.pdf.SetFont("Helvetica", "B", 12)
	d.color(colorTitle)
	d.pdf.CellFormat(0, 8, "Total Line Items: "+FormatCount(grand), "", 1, "C", false, 0, "")
	return d.output(w)
}

var sampleColumns = []string{
	domain.ColOrderDate, domain.ColOrderID, domain.ColFirstName, domain.ColLastName,
	domain.ColProductDescription, domain.ColUnitPrice, domain.ColTotal,
}

const sampleCellLength = 30

// WriteSalesReportPDF renders the standalone sales report: summary,
// breakdowns and a sample of merged rows.
func WriteSalesReportPDF(w io.Writer, rep domain.SalesReport) error {
	d := newDocument()
	d.title(Header{
		Title:       "Sales Report",
		DateStart:   rep.Start.Format("January 02, 2006"),
		DateEnd:     rep.End.Format("January 02, 2006"),
		GeneratedAt: rep.GeneratedAt,
	})

	d.heading("Summary")
	t := d.newTable([]string{"Metric", "Value"}, []float64{76.2, 50.8}, colorDark, 10)
	for _, m := range summaryMetrics(rep) {
		t.row([]string{m.label, m.value}, nil, false)
	}
	d.pdf.Ln(6)

	if len(rep.Categories) > 0 {
		d.heading("Sales by Category")
		t := d.newTable([]string{"Category", "Revenue", "Quantity"}, []float64{50.8, 50.8, 38.1}, colorDark, 9).
			align(1, "R").align(2, "R")
		for _, c := range rep.Categories {
			t.row([]string{Cell(c.Category), FormatCurrency(c.Revenue), FormatQuantity(c.Quantity)}, nil, false)
		}
		d.pdf.Ln(6)
	}

	if len(rep.TopProducts) > 0 {
		d.heading("Top 10 Products by Revenue")
		t := d.newTable([]string{"Product", "Revenue", "Quantity"}, []float64{76.2, 38.1, 25.4}, colorDark, 9).
			align(1, "R").align(2, "R")
		for _, p := range rep.TopProducts {
			t.row([]string{Truncate(p.Product, 43), FormatCurrency(p.Revenue), FormatQuantity(p.Quantity)}, nil, false)
		}
		d.pdf.Ln(6)
	}

	if len(rep.OrderTypes) > 0 {
		d.heading("Sales by Order Type")
		t := d.newTable([]string{"Order Type", "Revenue", "Orders"}, []float64{63.5, 50.8, 25.4}, colorDark, 9).
			align(1, "R").align(2, "R")
		for _, o := range rep.OrderTypes {
			t.row([]string{Cell(o.OrderType), FormatCurrency(o.Total), FormatCount(o.Orders)}, nil, false)
		}
	}

	if len(rep.Sample) > 0 {
		cols := availableSampleColumns(rep)
		if len(cols) > 0 {
			d.pdf.AddPage()
			d.heading(fmt.Sprintf("Sample Orders (First %d)", len(rep.Sample)))
			widths := make([]float64, len(cols))
			for i := range widths {
				widths[i] = 139.7 / float64(len(cols))
			}
			t := d.newTable(cols, widths, colorDark, 7)
			for _, rec := range rep.Sample {
				values := make([]string, len(cols))
				for i, c := range cols {
					values[i] = Truncate(sampleValue(rec, c), sampleCellLength)
				}
				t.row(values, nil, false)
			}
		}
	}

	return d.output(w)
}

type metric struct {
	label string
	value string
}

func summaryMetrics(rep domain.SalesReport) []metric {
	out := []metric{
		{"Total Customer Orders", FormatCount(rep.TotalCustomerOrders)},
		{"Total Line Items", FormatCount(rep.TotalLineItems)},
	}
	if rep.Matched {
		out = append(out,
			metric{"Matched Orders", FormatCount(rep.MatchedOrders)},
			metric{"Matched Line Items", FormatCount(rep.MatchedLineItems)},
		)
	} else {
		out = append(out, metric{"Matched Orders", "Unable to merge - no common column"})
	}
	if rep.ItemColumns.Has(domain.ColSubtotal) {
		out = append(out, metric{"Total Revenue", FormatCurrency(rep.TotalRevenue)})
	}
	if rep.ItemColumns.Has(domain.ColTaxSubtotal) {
		out = append(out, metric{"Total Tax", FormatCurrency(rep.TotalTax)})
	}
	if rep.ItemColumns.Has(domain.ColQuantity) {
		out = append(out, metric{"Total Quantity", FormatQuantity(rep.TotalQuantity)})
	}
	return out
}

func availableSampleColumns(rep domain.SalesReport) []string {
	var cols []string
	for _, c := range sampleColumns {
		if rep.OrderColumns.Has(c) || rep.ItemColumns.Has(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// sampleValue reads a column from the order side first, then the item.
func sampleValue(rec domain.MergedRecord, col string) string {
	if v, ok := rec.Order.Fields[col]; ok {
		return v
	}
	if rec.Item != nil {
		return rec.Item.Fields[col]
	}
	return ""
}
