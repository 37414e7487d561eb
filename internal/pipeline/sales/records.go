package sales

import (
	"strings"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// CanonicalID is the join key form of an order id.
func CanonicalID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ParseOrders converts the raw orders table into typed records. Missing
// columns leave the corresponding fields empty or None.
func ParseOrders(t domain.Table) domain.OrderSet {
	set := domain.OrderSet{
		Columns: t.Columns,
		Records: make([]domain.OrderRecord, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		set.Records = append(set.Records, domain.OrderRecord{
			OrderID:       CanonicalID(row[domain.ColOrderID]),
			RawOrderID:    row[domain.ColOrderID],
			OrderDate:     NormalizeDate(row[domain.ColOrderDate]),
			DuePickupDate: NormalizeDate(row[domain.ColDuePickupDate]),
			DuePickupTime: text(row[domain.ColDuePickupTime]),
			FirstName:     text(row[domain.ColFirstName]),
			LastName:      text(row[domain.ColLastName]),
			OrderType:     row[domain.ColOrderType],
			Total:         ParseAmount(row[domain.ColTotal]),
			Fields:        row,
		})
	}
	return set
}

// ParseItems converts the raw line items table into typed records.
func ParseItems(t domain.Table) domain.ItemSet {
	set := domain.ItemSet{
		Columns: t.Columns,
		Records: make([]domain.ProductLineRecord, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		set.Records = append(set.Records, domain.ProductLineRecord{
			OrderID:     CanonicalID(row[domain.ColOrderID]),
			RawOrderID:  row[domain.ColOrderID],
			Description: text(row[domain.ColProductDescription]),
			Category:    text(row[domain.ColCategory]),
			UnitPrice:   ParseAmount(row[domain.ColUnitPrice]),
			Subtotal:    ParseAmount(row[domain.ColSubtotal]),
			Quantity:    ParseAmount(row[domain.ColQuantity]),
			Fields:      row,
		})
	}
	return set
}

// text maps absence literals to the empty string and keeps everything else.
func text(raw string) string {
	if IsAbsent(raw) {
		return ""
	}
	return raw
}
