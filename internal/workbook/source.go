package workbook

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// Source reads the orders and line items tables from a local .xlsx export
// of the spreadsheet.
type Source struct {
	path        string
	ordersSheet string
	itemsSheet  string
	now         func() time.Time
}

func NewSource(path, ordersSheet, itemsSheet string) *Source {
	return &Source{
		path:        path,
		ordersSheet: ordersSheet,
		itemsSheet:  itemsSheet,
		now:         time.Now,
	}
}

func (s *Source) FetchTables(ctx context.Context) (domain.SourceTables, error) {
	if err := ctx.Err(); err != nil {
		return domain.SourceTables{}, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return domain.SourceTables{}, fmt.Errorf("%w: failed to open xlsx file %s: %w", domain.ErrUpstreamUnavailable, s.path, err)
	}
	defer f.Close()

	orders, err := readSheet(f, s.ordersSheet)
	if err != nil {
		return domain.SourceTables{}, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	items, err := readSheet(f, s.itemsSheet)
	if err != nil {
		return domain.SourceTables{}, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	rev, _ := s.Revision(ctx)
	return domain.SourceTables{
		Orders:    orders,
		Items:     items,
		Revision:  rev,
		FetchedAt: s.now(),
	}, nil
}

// Revision is the workbook's modification time.
func (s *Source) Revision(ctx context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", s.path, err)
	}
	return info.ModTime().UTC().Format(time.RFC3339Nano), nil
}

func readSheet(f *excelize.File, name string) (domain.Table, error) {
	sheet, err := resolveSheet(f, name)
	if err != nil {
		return domain.Table{}, err
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var header []string
	var values [][]string
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to read row from sheet %s: %w", sheet, err)
		}
		if header == nil {
			header = record
			continue
		}
		values = append(values, record)
	}
	if err := rows.Error(); err != nil {
		return domain.Table{}, fmt.Errorf("error iterating rows in sheet %s: %w", sheet, err)
	}

	// Keep the configured name so the trailing-space sheet stays recognizable.
	return domain.NewTable(name, header, values), nil
}

// resolveSheet finds name exactly, then ignoring surrounding whitespace,
// since spreadsheet exports do not always keep trailing spaces.
func resolveSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	for _, s := range sheets {
		if s == name {
			return s, nil
		}
	}
	want := strings.TrimSpace(name)
	for _, s := range sheets {
		if strings.TrimSpace(s) == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found", name)
}
