package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

func newTestSales(t *testing.T, src TableSource, clock *fakeClock, summaries cache.SummaryCache, checkRevision bool) *SalesService {
	t.Helper()
	return NewSalesService(src, summaries, SalesServiceOptions{
		Slot: cache.SlotOptions{
			TTL:          5 * time.Minute,
			RetryBackoff: 30 * time.Second,
			Now:          clock.Now,
		},
		CheckRevision: checkRevision,
	})
}

func TestSalesService_RecordsAndSummary(t *testing.T) {
	src := &fakeSource{tables: sampleTables()}
	clock := &fakeClock{t: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestSales(t, src, clock, nil, false)
	ctx := context.Background()

	ds, err := svc.Records(ctx, domain.FilterParams{DateStart: "2025-11-01", DateEnd: "2025-11-01"})
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(ds.Records) != 1 || ds.Records[0].Order.OrderID != "A1" {
		t.Fatalf("records = %+v", ds.Records)
	}

	sum, err := svc.Summary(ctx, domain.FilterParams{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Summary.TotalOrders != 2 || sum.Summary.TotalRevenue.String() != "35" {
		t.Errorf("summary = %+v", sum.Summary)
	}
	if src.calls.Load() != 1 {
		t.Errorf("source fetched %d times, want 1", src.calls.Load())
	}
}

func TestSalesService_InvalidFilter(t *testing.T) {
	src := &fakeSource{tables: sampleTables()}
	svc := newTestSales(t, src, &fakeClock{t: time.Now()}, nil, false)

	_, err := svc.Summary(context.Background(), domain.FilterParams{DateStart: "someday"})
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("err = %v, want ErrInvalidFilter", err)
	}
	if src.calls.Load() != 0 {
		t.Error("invalid filter should not load the source")
	}
}

func TestSalesService_StaleOnFailure(t *testing.T) {
	src := &fakeSource{tables: sampleTables()}
	clock := &fakeClock{t: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestSales(t, src, clock, nil, false)
	ctx := context.Background()

	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}

	src.set(domain.SourceTables{}, fmt.Errorf("%w: quota", domain.ErrRateLimited))
	clock.Advance(6 * time.Minute)

	products, err := svc.Products(ctx)
	if err != nil {
		t.Fatalf("stale read failed: %v", err)
	}
	if len(products) != 2 {
		t.Errorf("products = %v", products)
	}

	res, err := svc.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload err = %v, want nil with a cached snapshot", err)
	}
	if !res.Stale || !errors.Is(res.StaleErr, domain.ErrRateLimited) {
		t.Errorf("Reload = stale %v, err %v; want stale rate-limit failure", res.Stale, res.StaleErr)
	}
	if len(res.Value.Dataset.Records) == 0 {
		t.Error("stale reload should return the cached snapshot")
	}
}

func TestSalesService_ColdReloadSurfacesError(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("%w: quota", domain.ErrRateLimited)}
	svc := newTestSales(t, src, &fakeClock{t: time.Now()}, nil, false)

	if _, err := svc.Reload(context.Background()); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

func TestSalesService_ColdFailureSurfacesError(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("%w: boom", domain.ErrUpstreamUnavailable)}
	svc := newTestSales(t, src, &fakeClock{t: time.Now()}, nil, false)

	if _, err := svc.DateRange(context.Background()); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := svc.Status(); ok {
		t.Error("Status reports a snapshot after a failed cold load")
	}
}

func TestSalesService_RevisionCheckExtendsSnapshot(t *testing.T) {
	src := &fakeSource{tables: sampleTables(), revision: "r1"}
	clock := &fakeClock{t: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestSales(t, src, clock, nil, true)
	ctx := context.Background()

	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(6 * time.Minute)
	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatal(err)
	}
	if src.calls.Load() != 1 {
		t.Errorf("unchanged revision reloaded: %d fetches", src.calls.Load())
	}

	src.mu.Lock()
	src.revision = "r2"
	src.mu.Unlock()
	clock.Advance(6 * time.Minute)
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if src.calls.Load() != 2 || snap.Revision != "r2" {
		t.Errorf("calls=%d revision=%q", src.calls.Load(), snap.Revision)
	}
}

func TestSalesService_SummaryMemoizedInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	summaries, err := cache.NewSummaryCache(config.CacheConfig{
		Enabled:           true,
		RedisURL:          "redis://" + mr.Addr(),
		SummaryTTLSeconds: 60,
	})
	if err != nil {
		t.Fatalf("NewSummaryCache: %v", err)
	}

	src := &fakeSource{tables: sampleTables()}
	clock := &fakeClock{t: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestSales(t, src, clock, summaries, false)
	ctx := context.Background()

	params := domain.FilterParams{OrderType: "Pickup"}
	first, err := svc.Summary(ctx, params)
	if err != nil {
		t.Fatal(err)
	}
	if len(mr.Keys()) != 1 {
		t.Fatalf("redis keys = %v, want one summary", mr.Keys())
	}
	second, err := svc.Summary(ctx, params)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Summary.TotalRevenue.Equal(second.Summary.TotalRevenue) || second.Summary.TotalOrders != 1 {
		t.Errorf("cached summary = %+v", second.Summary)
	}

	if _, err := svc.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if len(mr.Keys()) != 0 {
		t.Errorf("reload left keys %v", mr.Keys())
	}
}

func TestFallbackSource(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := cache.NewTableStore(config.CacheConfig{Enabled: true, RedisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatal(err)
	}

	upstream := &fakeSource{tables: sampleTables()}
	src := NewFallbackSource(upstream, store)
	ctx := context.Background()

	if _, err := src.FetchTables(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	upstream.set(domain.SourceTables{}, domain.ErrUpstreamUnavailable)
	got, err := src.FetchTables(ctx)
	if err != nil {
		t.Fatalf("fallback fetch: %v", err)
	}
	if len(got.Orders.Rows) != 2 || len(got.Items.Rows) != 2 {
		t.Errorf("fallback tables = %+v", got)
	}

	empty := NewFallbackSource(&fakeSource{err: domain.ErrRateLimited}, nil)
	if _, err := empty.FetchTables(ctx); !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}
