package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SummaryResult holds per-request scalars. Sums are always finite.
type SummaryResult struct {
	TotalOrders  int             `json:"total_orders"`
	TotalItems   int             `json:"total_items"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	OrderTotal   decimal.Decimal `json:"order_total"`
}

type CategorySales struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity decimal.Decimal `json:"quantity"`
}

type ProductSales struct {
	Product  string          `json:"product"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity decimal.Decimal `json:"quantity"`
}

type OrderTypeSales struct {
	OrderType string          `json:"order_type"`
	Total     decimal.Decimal `json:"total"`
	Orders    int             `json:"orders"`
}

type DailySales struct {
	Date    time.Time       `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// SalesSummary is everything the summary endpoint renders.
type SalesSummary struct {
	Summary        SummaryResult    `json:"summary"`
	CategorySales  []CategorySales  `json:"category_sales"`
	ProductSales   []ProductSales   `json:"product_sales"`
	OrderTypeSales []OrderTypeSales `json:"order_type_sales"`
	DailySales     []DailySales     `json:"daily_sales"`
}

// DateRange is the min/max order date of a dataset.
type DateRange struct {
	Min Optional[time.Time]
	Max Optional[time.Time]
}

// ProductCount is a line-item count for one product on one pickup day.
type ProductCount struct {
	Product string
	Count   int
}

// PickupDay groups product counts under a pickup date. Date is None for the
// "No Date" bucket.
type PickupDay struct {
	Date     Optional[time.Time]
	Products []ProductCount
	Total    int
}

// OrderGroup is all merged rows of one order, in source order.
type OrderGroup struct {
	OrderID string
	Rows    []MergedRecord
}

// PickupDateGroup is the orders due on one pickup date.
type PickupDateGroup struct {
	Date   Optional[time.Time]
	Orders []OrderGroup
}
