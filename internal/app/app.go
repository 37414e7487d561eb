// Package app wires configuration into the services shared by the API
// server, the dashboard server and the report CLI.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/service"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/sheets"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/storage"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/workbook"
)

type App struct {
	Sales   *service.SalesService
	Exports *service.ExportService
	Storage storage.ObjectStorage

	db *postgres.DB
}

// New builds the services. Optional backends that fail to initialise are
// logged and replaced by no-op implementations; only the data source is
// required.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tables, err := cache.NewTableStore(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("table store unavailable, continuing without persisted fallback")
		tables = cache.NewNoopTableStore()
	}
	summaries, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("summary cache unavailable, continuing without it")
		summaries = cache.NewNoopSummaryCache()
	}

	sales := service.NewSalesService(service.NewFallbackSource(source, tables), summaries, service.SalesServiceOptions{
		Slot: cache.SlotOptions{
			TTL:          cfg.Cache.SnapshotTTL(),
			RetryBackoff: cfg.Cache.RetryBackoff(),
			LoadTimeout:  cfg.Sheets.FetchTimeout(),
		},
		CheckRevision: cfg.Sheets.CheckRevision,
	})

	a := &App{Sales: sales}

	a.Storage, err = storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, exports will not be archived")
		a.Storage = storage.NoopStorage{}
	}

	var runs repository.ReportRunRepository = repository.NoopReportRunRepository{}
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Warn().Err(err).Msg("database unavailable, report history disabled")
		} else if err := db.Migrate(ctx); err != nil {
			log.Warn().Err(err).Msg("database migration failed, report history disabled")
			db.Close()
		} else {
			a.db = db
			runs = postgres.NewReportRunRepository(db)
		}
	}

	a.Exports = service.NewExportService(sales, a.Storage, runs)
	return a, nil
}

func newSource(ctx context.Context, cfg *config.Config) (service.TableSource, error) {
	switch cfg.Source.Kind {
	case config.SourceXLSX:
		log.Info().Str("path", cfg.Source.WorkbookPath).Msg("reading sales data from workbook")
		return workbook.NewSource(cfg.Source.WorkbookPath, cfg.Sheets.OrdersSheet, cfg.Sheets.ItemsSheet), nil
	case config.SourceSheets, "":
		svc, err := sheets.NewService(ctx, cfg.Sheets)
		if err != nil {
			return nil, fmt.Errorf("init sheets source: %w", err)
		}
		log.Info().Str("spreadsheet", cfg.Sheets.SpreadsheetID).Msg("reading sales data from Google Sheets")
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
