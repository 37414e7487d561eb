package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/app"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/pkg/logger"
)

type ctxKey struct{}

func initApp(c *cli.Context) error {
	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	if c.Bool("verbose") {
		logger.SetLevel("debug")
	}
	if path := c.String("workbook"); path != "" {
		cfg.Source.Kind = config.SourceXLSX
		cfg.Source.WorkbookPath = path
	}

	a, err := app.New(c.Context, cfg)
	if err != nil {
		return err
	}
	c.Context = context.WithValue(c.Context, ctxKey{}, a)
	return nil
}

func closeApp(c *cli.Context) error {
	if a, ok := c.Context.Value(ctxKey{}).(*app.App); ok && a != nil {
		return a.Close()
	}
	return nil
}

func appFrom(c *cli.Context) *app.App {
	return c.Context.Value(ctxKey{}).(*app.App)
}

func main() {
	cliApp := &cli.App{
		Name:  "report",
		Usage: "Generate sales reports from the order and product sheets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workbook",
				Usage:   "Read from a local .xlsx workbook instead of Google Sheets",
				EnvVars: []string{"REPORT_WORKBOOK"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: initApp,
		After:  closeApp,
		Commands: []*cli.Command{
			generateCommand(),
			exportCommand(),
			historyCommand(),
			archiveCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
