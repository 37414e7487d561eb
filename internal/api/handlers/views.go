package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/pipeline/sales"
)

const dayLayout = "2006-01-02"

var amountColumns = map[string]bool{
	domain.ColUnitPrice: true,
	domain.ColSubtotal:  true,
	domain.ColTotal:     true,
}

// recordsView renders merged records keyed by the display column names the
// dataset actually has. Dates are YYYY-MM-DD, amounts are numbers and
// anything absent is null.
func recordsView(ds domain.Dataset) []gin.H {
	byName := make(map[string]sales.FlatColumn)
	for _, c := range sales.FlatColumns(ds) {
		byName[c.Name] = c
	}
	cols := make([]sales.FlatColumn, 0, len(domain.DisplayColumns))
	for _, name := range domain.DisplayColumns {
		if c, ok := byName[name]; ok {
			cols = append(cols, c)
		}
	}

	out := make([]gin.H, 0, len(ds.Records))
	for _, rec := range ds.Records {
		row := make(gin.H, len(cols))
		for _, c := range cols {
			row[c.Name] = cellView(c, rec)
		}
		out = append(out, row)
	}
	return out
}

func cellView(c sales.FlatColumn, rec domain.MergedRecord) interface{} {
	if c.Side == sales.OrderSide {
		switch c.Field {
		case domain.ColOrderDate:
			return dayView(rec.Order.OrderDate)
		case domain.ColDuePickupDate:
			return dayView(rec.Order.DuePickupDate)
		}
	}

	raw, ok := c.Raw(rec)
	if !ok || sales.IsAbsent(raw) {
		return nil
	}
	if amountColumns[c.Field] {
		if v, ok := sales.ParseAmount(raw).Get(); ok {
			return v.InexactFloat64()
		}
		return nil
	}
	return raw
}

func dayView(d domain.Optional[time.Time]) interface{} {
	if t, ok := d.Get(); ok {
		return t.Format(dayLayout)
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// summaryView keeps the sheet column names as JSON keys.
func summaryView(s *domain.SalesSummary) gin.H {
	categories := make([]gin.H, 0, len(s.CategorySales))
	for _, c := range s.CategorySales {
		categories = append(categories, gin.H{
			domain.ColCategory: c.Category,
			domain.ColSubtotal: money(c.Revenue),
			domain.ColQuantity: c.Quantity.InexactFloat64(),
		})
	}
	products := make([]gin.H, 0, len(s.ProductSales))
	for _, p := range s.ProductSales {
		products = append(products, gin.H{
			domain.ColProductDescription: p.Product,
			domain.ColSubtotal:           money(p.Revenue),
			domain.ColQuantity:           p.Quantity.InexactFloat64(),
		})
	}
	orderTypes := make([]gin.H, 0, len(s.OrderTypeSales))
	for _, o := range s.OrderTypeSales {
		orderTypes = append(orderTypes, gin.H{
			domain.ColOrderType: o.OrderType,
			domain.ColTotal:     money(o.Total),
			"Orders":            o.Orders,
		})
	}
	daily := make([]gin.H, 0, len(s.DailySales))
	for _, d := range s.DailySales {
		daily = append(daily, gin.H{
			"Date":    d.Date.Format(dayLayout),
			"Revenue": money(d.Revenue),
			"Orders":  d.Orders,
		})
	}

	return gin.H{
		"success": true,
		"summary": gin.H{
			"total_orders":  s.Summary.TotalOrders,
			"total_items":   s.Summary.TotalItems,
			"total_revenue": money(s.Summary.TotalRevenue),
			"order_total":   money(s.Summary.OrderTotal),
		},
		"category_sales":   categories,
		"product_sales":    products,
		"order_type_sales": orderTypes,
		"daily_sales":      daily,
	}
}

func dateRangeView(r domain.DateRange) gin.H {
	out := gin.H{}
	if t, ok := r.Min.Get(); ok {
		out["order_date_min"] = t.Format(dayLayout)
	}
	if t, ok := r.Max.Get(); ok {
		out["order_date_max"] = t.Format(dayLayout)
	}
	return out
}

func daysView(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format(dayLayout))
	}
	return out
}
