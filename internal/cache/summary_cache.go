package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

var summaryKeyPrefix = namespacedKey("summary") + ":"

// SummaryCache memoizes computed summaries per snapshot version and filter.
type SummaryCache interface {
	GetSummary(ctx context.Context, version string, filter domain.FilterParams) (*domain.SalesSummary, bool, error)
	SetSummary(ctx context.Context, version string, filter domain.FilterParams, summary *domain.SalesSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisSummaryCache struct {
	store *redisStore
	ttl   time.Duration
}

type noopSummaryCache struct{}

func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	store, err := newRedisStore(cfg)
	if err != nil {
		return nil, err
	}
	return &redisSummaryCache{store: store, ttl: summaryTTL(cfg)}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) GetSummary(ctx context.Context, version string, filter domain.FilterParams) (*domain.SalesSummary, bool, error) {
	var summary domain.SalesSummary
	ok, err := c.store.getJSON(ctx, buildSummaryKey(version, filter), &summary)
	if err != nil || !ok {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *redisSummaryCache) SetSummary(ctx context.Context, version string, filter domain.FilterParams, summary *domain.SalesSummary) error {
	return c.store.setJSON(ctx, buildSummaryKey(version, filter), summary, c.ttl)
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return c.store.deletePrefix(ctx, summaryKeyPrefix)
}

func (n *noopSummaryCache) GetSummary(ctx context.Context, version string, filter domain.FilterParams) (*domain.SalesSummary, bool, error) {
	return nil, false, nil
}

func (n *noopSummaryCache) SetSummary(ctx context.Context, version string, filter domain.FilterParams, summary *domain.SalesSummary) error {
	return nil
}

func (n *noopSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSummaryKey(version string, filter domain.FilterParams) string {
	return summaryKeyPrefix + version + ":" + filterHash(filter)
}

func filterHash(filter domain.FilterParams) string {
	parts := []string{}

	if v := strings.TrimSpace(filter.DateStart); v != "" {
		parts = append(parts, "date_start="+v)
	}
	if v := strings.TrimSpace(filter.DateEnd); v != "" {
		parts = append(parts, "date_end="+v)
	}
	// Order types match exactly, so their case is kept.
	if v := joinList(filter.OrderType, false); v != "" {
		parts = append(parts, "order_type="+v)
	}
	if v := joinList(filter.Product, true); v != "" {
		parts = append(parts, "product="+v)
	}
	if v := joinList(filter.PickupDates, false); v != "" {
		parts = append(parts, "pickup_dates="+v)
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func joinList(raw string, fold bool) string {
	var values []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if fold {
			v = strings.ToLower(v)
		}
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ",")
}
