package sales

import (
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

var (
	orderHeader = []string{
		domain.ColOrderID, domain.ColOrderDate, domain.ColDuePickupDate,
		domain.ColFirstName, domain.ColLastName, domain.ColOrderType, domain.ColTotal,
	}
	itemHeader = []string{
		domain.ColOrderID, domain.ColProductDescription, domain.ColCategory,
		domain.ColSubtotal, domain.ColQuantity,
	}
)

func buildDataset(orders, items [][]string) domain.Dataset {
	return Merge(
		ParseOrders(domain.NewTable(domain.DefaultOrdersSheet, orderHeader, orders)),
		ParseItems(domain.NewTable(domain.DefaultItemsSheet, itemHeader, items)),
		LeftJoin,
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
