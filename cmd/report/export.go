package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/report"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date-start", Usage: "Earliest order date"},
		&cli.StringFlag{Name: "date-end", Usage: "Latest order date (inclusive)"},
		&cli.StringFlag{Name: "product", Usage: "Comma-separated product descriptions"},
		&cli.StringFlag{Name: "pickup-dates", Usage: "Comma-separated pickup dates"},
		&cli.StringFlag{Name: "order-type", Usage: "Comma-separated order types"},
	}
}

func filterParams(c *cli.Context) domain.FilterParams {
	return domain.FilterParams{
		DateStart:   c.String("date-start"),
		DateEnd:     c.String("date-end"),
		Product:     c.String("product"),
		PickupDates: c.String("pickup-dates"),
		OrderType:   c.String("order-type"),
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export filtered sales data",
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "csv, xlsx, order-pdf or product-pdf",
				Value: "csv",
			},
			&cli.StringFlag{Name: "out-dir", Usage: "Output directory", Value: "."},
		),
		Action: func(c *cli.Context) error {
			exports := appFrom(c).Exports
			params := filterParams(c)

			var (
				exp *service.Export
				err error
			)
			switch c.String("format") {
			case "csv":
				exp, err = exports.CSV(c.Context, params)
			case "xlsx":
				exp, err = exports.XLSX(c.Context, params)
			case "order-pdf":
				exp, err = exports.OrderDetailsPDF(c.Context, params)
			case "product-pdf":
				exp, err = exports.ProductByDayPDF(c.Context, params)
			default:
				return fmt.Errorf("unknown format %q", c.String("format"))
			}
			if errors.Is(err, domain.ErrNothingToExport) {
				fmt.Fprintln(os.Stderr, "No data to export")
				return nil
			}
			if err != nil {
				return err
			}

			if err := os.MkdirAll(c.String("out-dir"), 0o755); err != nil {
				return err
			}
			path := filepath.Join(c.String("out-dir"), exp.FileName)
			if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d rows)\n", path, exp.RowCount)
			return nil
		},
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded exports, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20},
		},
		Action: func(c *cli.Context) error {
			runs, err := appFrom(c).Exports.History(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No report runs recorded")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CREATED\tKIND\tROWS\tREVENUE\tFILE\tFILTERS")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					r.Kind,
					r.RowCount,
					report.FormatCurrency(r.Revenue),
					r.FileName,
					r.Filters,
				)
			}
			return tw.Flush()
		},
	}
}
