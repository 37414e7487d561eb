package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/pipeline/sales"
)

// DatasetTable flattens merged records into a header and string rows, with
// shared column names suffixed _order / _item.
func DatasetTable(ds domain.Dataset) ([]string, [][]string) {
	cols := sales.FlatColumns(ds)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	rows := make([][]string, 0, len(ds.Records))
	for _, rec := range ds.Records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i], _ = c.Raw(rec)
		}
		rows = append(rows, row)
	}
	return header, rows
}

// OrdersTable returns the raw cells of an order set in header order.
func OrdersTable(set domain.OrderSet) ([]string, [][]string) {
	rows := make([][]string, 0, len(set.Records))
	for _, r := range set.Records {
		rows = append(rows, fieldsRow(set.Columns, r.Fields))
	}
	return set.Columns, rows
}

// ItemsTable returns the raw cells of an item set in header order.
func ItemsTable(set domain.ItemSet) ([]string, [][]string) {
	rows := make([][]string, 0, len(set.Records))
	for _, r := range set.Records {
		rows = append(rows, fieldsRow(set.Columns, r.Fields))
	}
	return set.Columns, rows
}

func fieldsRow(cols domain.Columns, fields domain.Row) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = fields[c]
	}
	return row
}

// WriteCSV writes header and rows as RFC 4180 CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
