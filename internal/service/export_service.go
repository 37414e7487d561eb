package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/pipeline/sales"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/report"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/storage"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/workbook"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	archiveTimeout = 15 * time.Second
	fileStamp      = "20060102_150405"
)

// Export kinds recorded in the report history.
const (
	KindOrderDetails = "order_details_pdf"
	KindProductByDay = "product_by_day_pdf"
	KindCSV          = "csv"
	KindXLSX         = "xlsx"
	KindSalesReport  = "sales_report"
)

// Export is one rendered download.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
	RowCount    int
}

// ExportService renders filtered sales data into downloadable files and
// records each export in the archive and history when those are enabled.
type ExportService struct {
	sales *SalesService
	store storage.ObjectStorage
	runs  repository.ReportRunRepository
	now   func() time.Time
	newID func() uuid.UUID
}

func NewExportService(salesSvc *SalesService, store storage.ObjectStorage, runs repository.ReportRunRepository) *ExportService {
	if store == nil {
		store = storage.NoopStorage{}
	}
	if runs == nil {
		runs = repository.NoopReportRunRepository{}
	}
	return &ExportService{
		sales: salesSvc,
		store: store,
		runs:  runs,
		now:   time.Now,
		newID: uuid.New,
	}
}

// filtered returns the filtered records, or domain.ErrNothingToExport.
func (s *ExportService) filtered(ctx context.Context, params domain.FilterParams) (domain.Dataset, error) {
	ds, err := s.sales.Records(ctx, params)
	if err != nil {
		return ds, err
	}
	if len(ds.Records) == 0 {
		return ds, domain.ErrNothingToExport
	}
	return ds, nil
}

// OrderDetailsPDF renders orders grouped by pickup date, newest first.
func (s *ExportService) OrderDetailsPDF(ctx context.Context, params domain.FilterParams) (*Export, error) {
	ds, err := s.filtered(ctx, params)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var buf bytes.Buffer
	h := report.Header{Title: "Order Details Report", DateStart: params.DateStart, DateEnd: params.DateEnd, GeneratedAt: now}
	if err := report.WriteOrderDetailsPDF(&buf, h, sales.OrdersByPickupDate(ds)); err != nil {
		return nil, err
	}

	exp := &Export{
		FileName:    fmt.Sprintf("order_report_%s.pdf", now.Format(fileStamp)),
		ContentType: ContentTypePDF,
		Data:        buf.Bytes(),
		RowCount:    len(ds.Records),
	}
	s.archive(ctx, KindOrderDetails, params, exp, sales.Summarize(ds).TotalRevenue)
	return exp, nil
}

// ProductByDayPDF renders line-item counts per product per pickup day.
func (s *ExportService) ProductByDayPDF(ctx context.Context, params domain.FilterParams) (*Export, error) {
	ds, err := s.filtered(ctx, params)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var buf bytes.Buffer
	h := report.Header{Title: "Product by Day Report", DateStart: params.DateStart, DateEnd: params.DateEnd, GeneratedAt: now}
	if err := report.WriteProductByDayPDF(&buf, h, sales.ProductsByPickupDay(ds)); err != nil {
		return nil, err
	}

	exp := &Export{
		FileName:    fmt.Sprintf("product_by_day_report_%s.pdf", now.Format(fileStamp)),
		ContentType: ContentTypePDF,
		Data:        buf.Bytes(),
		RowCount:    len(ds.Records),
	}
	s.archive(ctx, KindProductByDay, params, exp, sales.Summarize(ds).TotalRevenue)
	return exp, nil
}

// CSV exports the filtered records as one flat table.
func (s *ExportService) CSV(ctx context.Context, params domain.FilterParams) (*Export, error) {
	ds, err := s.filtered(ctx, params)
	if err != nil {
		return nil, err
	}

	header, rows := report.DatasetTable(ds)
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, header, rows); err != nil {
		return nil, err
	}

	exp := &Export{
		FileName:    fmt.Sprintf("sales_data_%s.csv", s.now().Format(fileStamp)),
		ContentType: ContentTypeCSV,
		Data:        buf.Bytes(),
		RowCount:    len(rows),
	}
	s.archive(ctx, KindCSV, params, exp, sales.Summarize(ds).TotalRevenue)
	return exp, nil
}

// XLSX exports the filtered records as a single-sheet workbook.
func (s *ExportService) XLSX(ctx context.Context, params domain.FilterParams) (*Export, error) {
	ds, err := s.filtered(ctx, params)
	if err != nil {
		return nil, err
	}

	header, rows := report.DatasetTable(ds)
	var buf bytes.Buffer
	if err := workbook.WriteTable(&buf, "Sales", header, rows); err != nil {
		return nil, err
	}

	exp := &Export{
		FileName:    fmt.Sprintf("sales_data_%s.xlsx", s.now().Format(fileStamp)),
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
		RowCount:    len(rows),
	}
	s.archive(ctx, KindXLSX, params, exp, sales.Summarize(ds).TotalRevenue)
	return exp, nil
}

// SalesReport builds the standalone report for an order-date window.
func (s *ExportService) SalesReport(ctx context.Context, window domain.ReportWindow) (domain.SalesReport, error) {
	snap, err := s.sales.Snapshot(ctx)
	if err != nil {
		return domain.SalesReport{}, err
	}
	return sales.BuildReport(snap.Orders, snap.Items, window, s.now()), nil
}

// SaveSalesReport writes the report PDF and the filtered source tables as
// CSV into dir and returns the written paths.
func (s *ExportService) SaveSalesReport(ctx context.Context, rep domain.SalesReport, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	var pdf bytes.Buffer
	if err := report.WriteSalesReportPDF(&pdf, rep); err != nil {
		return nil, err
	}
	stamp := s.now().Format(fileStamp)
	pdfExport := &Export{
		FileName:    fmt.Sprintf("sales_report_%s_to_%s.pdf", rep.Start.Format("20060102"), rep.End.Format("20060102")),
		ContentType: ContentTypePDF,
		Data:        pdf.Bytes(),
		RowCount:    rep.MatchedLineItems,
	}

	orderHeader, orderRows := report.OrdersTable(rep.Orders)
	itemHeader, itemRows := report.ItemsTable(rep.Items)
	var orders, items bytes.Buffer
	if err := report.WriteCSV(&orders, orderHeader, orderRows); err != nil {
		return nil, err
	}
	if err := report.WriteCSV(&items, itemHeader, itemRows); err != nil {
		return nil, err
	}

	files := []*Export{
		pdfExport,
		{FileName: "customer_orders_" + stamp + ".csv", ContentType: ContentTypeCSV, Data: orders.Bytes(), RowCount: len(orderRows)},
		{FileName: "bakery_products_" + stamp + ".csv", ContentType: ContentTypeCSV, Data: items.Bytes(), RowCount: len(itemRows)},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.FileName)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	params := domain.FilterParams{
		DateStart: rep.Start.Format("2006-01-02"),
		DateEnd:   rep.End.Format("2006-01-02"),
	}
	s.archive(ctx, KindSalesReport, params, pdfExport, rep.TotalRevenue)
	return paths, nil
}

// History lists recorded exports, newest first.
func (s *ExportService) History(ctx context.Context, limit int) ([]domain.ReportRun, error) {
	return s.runs.ListRuns(ctx, limit)
}

// archive uploads the export and records a history row. Failures are logged
// and never fail the export.
func (s *ExportService) archive(ctx context.Context, kind string, params domain.FilterParams, exp *Export, revenue decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	run := &domain.ReportRun{
		ID:        s.newID(),
		Kind:      kind,
		Filters:   encodeFilters(params),
		RowCount:  exp.RowCount,
		Revenue:   revenue.Round(2),
		FileName:  exp.FileName,
		CreatedAt: s.now().UTC(),
	}

	key := fmt.Sprintf("reports/%s/%s-%s", run.CreatedAt.Format("2006/01/02"), run.ID, exp.FileName)
	if err := s.store.UploadObject(ctx, key, exp.ContentType, exp.Data); err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("key", key).Msg("export: archive upload failed")
	} else if _, disabled := s.store.(storage.NoopStorage); !disabled {
		run.ObjectKey = key
	}

	if err := s.runs.SaveRun(ctx, run); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("export: failed to record report run")
	}
}

func encodeFilters(p domain.FilterParams) string {
	v := url.Values{}
	add := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	add("date_start", p.DateStart)
	add("date_end", p.DateEnd)
	add("product", p.Product)
	add("pickup_dates", p.PickupDates)
	add("order_type", p.OrderType)
	return v.Encode()
}
