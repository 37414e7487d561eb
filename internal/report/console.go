package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// WriteConsole prints the sales report as plain text.
func WriteConsole(w io.Writer, rep domain.SalesReport) error {
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nSALES REPORT\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Generated at: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Window: %s to %s\n\n", rep.Start.Format("2006-01-02"), rep.End.Format("2006-01-02"))

	fmt.Fprintf(&b, "SUMMARY:\n%s\n", thin)
	for _, m := range summaryMetrics(rep) {
		fmt.Fprintf(&b, "  %s: %s\n", m.label, m.value)
	}

	fmt.Fprintf(&b, "\nDATA STRUCTURE:\n%s\n", thin)
	fmt.Fprintf(&b, "Customer Orders columns: %s\n", strings.Join(rep.OrderColumns, ", "))
	fmt.Fprintf(&b, "Bakery Products columns: %s\n", strings.Join(rep.ItemColumns, ", "))

	if len(rep.Categories) > 0 {
		fmt.Fprintf(&b, "\nSALES BY CATEGORY:\n%s\n", thin)
		for _, c := range rep.Categories {
			fmt.Fprintf(&b, "  %s: %s (%s items)\n", c.Category, FormatCurrency(c.Revenue), FormatQuantity(c.Quantity))
		}
	}
	if len(rep.TopProducts) > 0 {
		fmt.Fprintf(&b, "\nTOP 10 PRODUCTS BY REVENUE:\n%s\n", thin)
		for _, p := range rep.TopProducts {
			fmt.Fprintf(&b, "  %s: %s (%s qty)\n", p.Product, FormatCurrency(p.Revenue), FormatQuantity(p.Quantity))
		}
	}
	if len(rep.OrderTypes) > 0 {
		fmt.Fprintf(&b, "\nSALES BY ORDER TYPE:\n%s\n", thin)
		for _, o := range rep.OrderTypes {
			fmt.Fprintf(&b, "  %s: %s (%d orders)\n", o.OrderType, FormatCurrency(o.Total), o.Orders)
		}
	}
	fmt.Fprintf(&b, "\n%s\n", rule)

	_, err := io.WriteString(w, b.String())
	return err
}
