package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReport is the standalone report generator's output for one window.
type SalesReport struct {
	GeneratedAt         time.Time        `json:"generated_at"`
	Start               time.Time        `json:"start"`
	End                 time.Time        `json:"end"`
	TotalCustomerOrders int              `json:"total_customer_orders"`
	TotalLineItems      int              `json:"total_line_items"`
	Matched             bool             `json:"matched"`
	MatchedOrders       int              `json:"matched_orders"`
	MatchedLineItems    int              `json:"matched_line_items"`
	TotalRevenue        decimal.Decimal  `json:"total_revenue"`
	TotalTax            decimal.Decimal  `json:"total_tax"`
	TotalQuantity       decimal.Decimal  `json:"total_quantity"`
	Categories          []CategorySales  `json:"sales_by_category"`
	TopProducts         []ProductSales   `json:"top_10_products"`
	OrderTypes          []OrderTypeSales `json:"sales_by_order_type"`
	OrderColumns        Columns          `json:"customer_orders_columns"`
	ItemColumns         Columns          `json:"bakery_products_columns"`
	Sample              []MergedRecord   `json:"-"`

	Orders OrderSet `json:"-"`
	Items  ItemSet  `json:"-"`
	Merged Dataset  `json:"-"`
}

// ReportWindow is an inclusive range of order days.
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// ReportRun records one generated export for the history endpoint.
type ReportRun struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Kind      string          `json:"kind" db:"kind"`
	Filters   string          `json:"filters" db:"filters"`
	RowCount  int             `json:"row_count" db:"row_count"`
	Revenue   decimal.Decimal `json:"revenue" db:"revenue"`
	FileName  string          `json:"file_name" db:"file_name"`
	ObjectKey string          `json:"object_key,omitempty" db:"object_key"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
