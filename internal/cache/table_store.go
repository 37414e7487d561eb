package cache

import (
	"context"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

const sourceTablesTTL = 7 * 24 * time.Hour

var sourceTablesKey = namespacedKey("source_tables")

// TableStore keeps the last good upstream fetch outside the process so a
// restart during an upstream outage still has data to serve.
type TableStore interface {
	SaveTables(ctx context.Context, tables domain.SourceTables) error
	LoadTables(ctx context.Context) (domain.SourceTables, bool, error)
}

type redisTableStore struct {
	store *redisStore
}

type noopTableStore struct{}

func NewTableStore(cfg config.CacheConfig) (TableStore, error) {
	if !cfg.Enabled {
		return &noopTableStore{}, nil
	}

	store, err := newRedisStore(cfg)
	if err != nil {
		return nil, err
	}
	return &redisTableStore{store: store}, nil
}

func NewNoopTableStore() TableStore {
	return &noopTableStore{}
}

func (s *redisTableStore) SaveTables(ctx context.Context, tables domain.SourceTables) error {
	return s.store.setJSON(ctx, sourceTablesKey, tables, sourceTablesTTL)
}

func (s *redisTableStore) LoadTables(ctx context.Context) (domain.SourceTables, bool, error) {
	var tables domain.SourceTables
	ok, err := s.store.getJSON(ctx, sourceTablesKey, &tables)
	return tables, ok, err
}

func (n *noopTableStore) SaveTables(ctx context.Context, tables domain.SourceTables) error {
	return nil
}

func (n *noopTableStore) LoadTables(ctx context.Context) (domain.SourceTables, bool, error) {
	return domain.SourceTables{}, false, nil
}
