package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/report"
)

const dayLayout = "2006-01-02"

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Build the sales report for an order-date window",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "First order day (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "end", Usage: "Last order day (YYYY-MM-DD), defaults to today"},
			&cli.IntFlag{Name: "days", Usage: "Window length when --start is not given", Value: 7},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "Directory for the PDF and CSV files",
				Value: config.Load().App.ReportDir,
			},
			&cli.BoolFlag{Name: "json", Usage: "Print the report as JSON instead of text"},
			&cli.BoolFlag{Name: "no-files", Usage: "Skip writing the PDF and CSV files"},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	window, err := reportWindow(c.String("start"), c.String("end"), c.Int("days"), time.Now())
	if err != nil {
		return err
	}

	exports := appFrom(c).Exports
	rep, err := exports.SalesReport(c.Context, window)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else if err := report.WriteConsole(os.Stdout, rep); err != nil {
		return err
	}

	if c.Bool("no-files") {
		return nil
	}
	if !hasOrders(rep) {
		fmt.Fprintln(os.Stderr, "No orders in the window, skipping file output")
		return nil
	}
	paths, err := exports.SaveSalesReport(c.Context, rep, c.String("out-dir"))
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(os.Stderr, "wrote", p)
	}
	return nil
}

// hasOrders reports whether the window selected any customer order. The
// join status does not matter: orders without line items still get files.
func hasOrders(rep domain.SalesReport) bool {
	return rep.TotalCustomerOrders > 0
}

// reportWindow resolves the flags to an inclusive day range. An explicit
// start wins over days; end defaults to today.
func reportWindow(start, end string, days int, now time.Time) (domain.ReportWindow, error) {
	endDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if end != "" {
		t, err := time.Parse(dayLayout, end)
		if err != nil {
			return domain.ReportWindow{}, fmt.Errorf("invalid --end %q: %w", end, err)
		}
		endDay = t
	}

	var startDay time.Time
	if start != "" {
		t, err := time.Parse(dayLayout, start)
		if err != nil {
			return domain.ReportWindow{}, fmt.Errorf("invalid --start %q: %w", start, err)
		}
		startDay = t
	} else {
		if days < 1 {
			return domain.ReportWindow{}, fmt.Errorf("--days must be at least 1, got %d", days)
		}
		startDay = endDay.AddDate(0, 0, -(days - 1))
	}

	if startDay.After(endDay) {
		return domain.ReportWindow{}, fmt.Errorf("start %s is after end %s", startDay.Format(dayLayout), endDay.Format(dayLayout))
	}
	return domain.ReportWindow{Start: startDay, End: endDay}, nil
}
