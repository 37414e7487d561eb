package domain

import (
	"strings"
	"time"
)

// Row is one upstream record keyed by column name.
type Row map[string]string

// Columns is an ordered list of column names as they appear in the sheet header.
type Columns []string

func (c Columns) Has(name string) bool {
	for _, col := range c {
		if col == name {
			return true
		}
	}
	return false
}

// Table is a raw upstream table: header order plus string-keyed rows.
type Table struct {
	Name    string  `json:"name"`
	Columns Columns `json:"columns"`
	Rows    []Row   `json:"rows"`
}

// NewTable builds a Table from a header row and value rows, the way a
// "get all records" call on a sheet would. Cells missing at the end of a
// short row become empty strings and fully blank rows are dropped.
func NewTable(name string, header []string, values [][]string) Table {
	t := Table{Name: name, Columns: make(Columns, len(header))}
	copy(t.Columns, header)

	for _, raw := range values {
		if isBlankRow(raw) {
			continue
		}
		row := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// SourceTables is the result of one upstream fetch.
type SourceTables struct {
	Orders    Table     `json:"orders"`
	Items     Table     `json:"items"`
	Revision  string    `json:"revision,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}
