package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// Service reads the orders and line items sheets of one spreadsheet.
type Service struct {
	sheets        *sheets.Service
	drive         *drive.Service
	spreadsheetID string
	ordersSheet   string
	itemsSheet    string
	now           func() time.Time
}

func NewService(ctx context.Context, cfg config.SheetsConfig) (*Service, error) {
	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	jwt, err := google.JWTConfigFromJSON(
		credentialsJSON,
		sheets.SpreadsheetsReadonlyScope,
		drive.DriveReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials: %w", err)
	}
	client := jwt.Client(ctx)

	sheetsSrv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	driveSrv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive client: %w", err)
	}

	return &Service{
		sheets:        sheetsSrv,
		drive:         driveSrv,
		spreadsheetID: cfg.SpreadsheetID,
		ordersSheet:   cfg.OrdersSheet,
		itemsSheet:    cfg.ItemsSheet,
		now:           time.Now,
	}, nil
}

// loadCredentials prefers the base64 environment value and falls back to
// the credentials file.
func loadCredentials(cfg config.SheetsConfig) ([]byte, error) {
	if encoded := strings.TrimSpace(cfg.CredentialsBase64); encoded != "" {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode SHEETS_CREDENTIALS_BASE64: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", cfg.CredentialsFile, err)
	}
	return raw, nil
}

// FetchTables reads both sheets concurrently. Errors are classified into
// domain.ErrRateLimited or domain.ErrUpstreamUnavailable.
func (s *Service) FetchTables(ctx context.Context) (domain.SourceTables, error) {
	var out domain.SourceTables

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.fetchTable(gctx, s.ordersSheet)
		out.Orders = t
		return err
	})
	g.Go(func() error {
		t, err := s.fetchTable(gctx, s.itemsSheet)
		out.Items = t
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.SourceTables{}, Classify(err)
	}

	out.FetchedAt = s.now()
	return out, nil
}

func (s *Service) fetchTable(ctx context.Context, name string) (domain.Table, error) {
	resp, err := s.sheets.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(name)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return TableFromValues(name, resp.Values), nil
}

// Revision returns the spreadsheet's Drive modifiedTime, a cheap marker
// that changes whenever any cell does.
func (s *Service) Revision(ctx context.Context) (string, error) {
	f, err := s.drive.Files.Get(s.spreadsheetID).
		Fields("modifiedTime").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", Classify(fmt.Errorf("read spreadsheet revision: %w", err))
	}
	return f.ModifiedTime, nil
}

// sheetRange addresses a whole sheet. Names are always quoted since the
// line items sheet carries a trailing space.
func sheetRange(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// TableFromValues treats the first row as the header, like a "get all
// records" read of the sheet.
func TableFromValues(name string, values [][]interface{}) domain.Table {
	if len(values) == 0 {
		return domain.Table{Name: name}
	}

	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = cellString(v)
	}

	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = cellString(v)
		}
		rows = append(rows, row)
	}
	return domain.NewTable(name, header, rows)
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
