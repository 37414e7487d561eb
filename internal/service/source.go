package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// TableSource loads the two upstream tables.
type TableSource interface {
	FetchTables(ctx context.Context) (domain.SourceTables, error)
}

// RevisionSource reports a cheap upstream change marker.
type RevisionSource interface {
	Revision(ctx context.Context) (string, error)
}

// FallbackSource saves every successful fetch to a TableStore and answers
// from the stored copy when the upstream fails.
type FallbackSource struct {
	upstream TableSource
	store    cache.TableStore
}

func NewFallbackSource(upstream TableSource, store cache.TableStore) *FallbackSource {
	if store == nil {
		store = cache.NewNoopTableStore()
	}
	return &FallbackSource{upstream: upstream, store: store}
}

func (s *FallbackSource) FetchTables(ctx context.Context) (domain.SourceTables, error) {
	tables, err := s.upstream.FetchTables(ctx)
	if err == nil {
		if saveErr := s.store.SaveTables(ctx, tables); saveErr != nil {
			log.Warn().Err(saveErr).Msg("source: failed to persist fetched tables")
		}
		return tables, nil
	}

	stored, ok, loadErr := s.store.LoadTables(ctx)
	if loadErr != nil {
		log.Warn().Err(loadErr).Msg("source: failed to load persisted tables")
	}
	if !ok {
		return domain.SourceTables{}, err
	}

	log.Warn().Err(err).Time("fetched_at", stored.FetchedAt).Msg("source: upstream failed, using persisted tables")
	return stored, nil
}

// Revision delegates to the upstream when it supports revision checks.
func (s *FallbackSource) Revision(ctx context.Context) (string, error) {
	if rs, ok := s.upstream.(RevisionSource); ok {
		return rs.Revision(ctx)
	}
	return "", nil
}

var (
	_ TableSource    = (*FallbackSource)(nil)
	_ RevisionSource = (*FallbackSource)(nil)
)
