package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/pipeline/sales"
)

type SalesServiceOptions struct {
	Slot cache.SlotOptions
	// CheckRevision asks the source for its revision on TTL expiry and keeps
	// the current snapshot when it has not changed.
	CheckRevision bool
}

// SalesService answers every read of the sales data from one cached
// snapshot.
type SalesService struct {
	source    TableSource
	slot      *cache.Slot[domain.Snapshot]
	summaries cache.SummaryCache
	now       func() time.Time
}

func NewSalesService(source TableSource, summaries cache.SummaryCache, opts SalesServiceOptions) *SalesService {
	if summaries == nil {
		summaries = cache.NewNoopSummaryCache()
	}
	now := opts.Slot.Now
	if now == nil {
		now = time.Now
	}

	s := &SalesService{source: source, summaries: summaries, now: now}

	revisions, hasRevisions := source.(RevisionSource)
	checkRevision := opts.CheckRevision && hasRevisions

	s.slot = cache.NewSlot("sales_snapshot", func(ctx context.Context) (domain.Snapshot, error) {
		tables, err := source.FetchTables(ctx)
		if err != nil {
			return domain.Snapshot{}, err
		}
		if checkRevision && tables.Revision == "" {
			rev, err := revisions.Revision(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("sales: revision lookup failed")
			}
			tables.Revision = rev
		}
		snap := sales.BuildSnapshot(tables, s.now())
		log.Info().
			Int("orders", len(snap.Orders.Records)).
			Int("items", len(snap.Items.Records)).
			Int("merged", len(snap.Dataset.Records)).
			Str("revision", snap.Revision).
			Msg("sales: snapshot loaded")
		return snap, nil
	}, opts.Slot)

	if checkRevision {
		s.slot.WithFreshness(func(ctx context.Context, current domain.Snapshot) (bool, error) {
			if current.Revision == "" {
				return false, nil
			}
			rev, err := revisions.Revision(ctx)
			if err != nil {
				return false, err
			}
			return rev == current.Revision, nil
		})
	}
	return s
}

// Snapshot returns the cached snapshot, loading it if needed.
func (s *SalesService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	return s.slot.Get(ctx)
}

// Reload forces a fresh upstream load and drops memoized summaries. When the
// load fails but a snapshot is cached, the cached snapshot comes back marked
// stale and no error is returned.
func (s *SalesService) Reload(ctx context.Context) (cache.ReloadResult[domain.Snapshot], error) {
	res, err := s.slot.Reload(ctx)
	if err != nil || res.Stale {
		return res, err
	}
	if err := s.summaries.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sales: summary cache invalidation failed")
	}
	return res, nil
}

// Status reports when the cached snapshot was loaded, if one exists.
func (s *SalesService) Status() (time.Time, bool) {
	snap, _, ok := s.slot.Peek()
	return snap.LoadedAt, ok
}

// Records returns the merged records that pass the filter.
func (s *SalesService) Records(ctx context.Context, params domain.FilterParams) (domain.Dataset, error) {
	spec, err := sales.BuildFilter(params)
	if err != nil {
		return domain.Dataset{}, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	return sales.Apply(snap.Dataset, spec), nil
}

// Summary aggregates the filtered records. Results are memoized per
// snapshot and filter.
func (s *SalesService) Summary(ctx context.Context, params domain.FilterParams) (*domain.SalesSummary, error) {
	spec, err := sales.BuildFilter(params)
	if err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	version := snapshotVersion(snap)
	if cached, ok, err := s.summaries.GetSummary(ctx, version, params); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("sales: cache get summary failed")
	}

	summary := sales.Summary(sales.Apply(snap.Dataset, spec))
	if err := s.summaries.SetSummary(ctx, version, params, &summary); err != nil {
		log.Warn().Err(err).Msg("sales: cache set summary failed")
	}
	return &summary, nil
}

func (s *SalesService) Products(ctx context.Context) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return sales.Products(snap.Dataset), nil
}

func (s *SalesService) DateRange(ctx context.Context) (domain.DateRange, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.DateRange{}, err
	}
	return sales.OrderDateRange(snap.Dataset), nil
}

func (s *SalesService) PickupDates(ctx context.Context) ([]time.Time, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return sales.PickupDates(snap.Dataset), nil
}

// snapshotVersion identifies one loaded snapshot for summary memoization.
func snapshotVersion(snap domain.Snapshot) string {
	v := strconv.FormatInt(snap.LoadedAt.UnixNano(), 36)
	if snap.Revision != "" {
		v += "-" + snap.Revision
	}
	return v
}
