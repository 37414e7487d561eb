package sales

import (
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// BuildSnapshot parses both source tables and left-joins them. It is the
// unit the snapshot cache holds.
func BuildSnapshot(src domain.SourceTables, loadedAt time.Time) domain.Snapshot {
	orders := ParseOrders(src.Orders)
	items := ParseItems(src.Items)
	return domain.Snapshot{
		Orders:   orders,
		Items:    items,
		Dataset:  Merge(orders, items, LeftJoin),
		Revision: src.Revision,
		LoadedAt: loadedAt,
	}
}
