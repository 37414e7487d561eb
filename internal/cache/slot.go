package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	defaultSlotTTL         = 5 * time.Minute
	defaultSlotLoadTimeout = 20 * time.Second
)

// LoadFunc fetches a fresh value for a Slot.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// FreshFunc reports whether current still matches the upstream. It is
// consulted on TTL expiry before paying for a full load.
type FreshFunc[T any] func(ctx context.Context, current T) (bool, error)

type SlotOptions struct {
	TTL          time.Duration
	RetryBackoff time.Duration
	LoadTimeout  time.Duration
	Now          func() time.Time
}

// Slot is a single-value read-through cache. Concurrent loads are
// coalesced, a failed load keeps serving the previous value, and after a
// failure no new load is attempted until the retry backoff has passed.
type Slot[T any] struct {
	name    string
	load    LoadFunc[T]
	fresh   FreshFunc[T]
	ttl     time.Duration
	backoff time.Duration
	timeout time.Duration
	now     func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	value    T
	has      bool
	loadedAt time.Time
	retryAt  time.Time
	lastErr  error
}

func NewSlot[T any](name string, load LoadFunc[T], opts SlotOptions) *Slot[T] {
	s := &Slot[T]{
		name:    name,
		load:    load,
		ttl:     opts.TTL,
		backoff: opts.RetryBackoff,
		timeout: opts.LoadTimeout,
		now:     opts.Now,
	}
	if s.ttl <= 0 {
		s.ttl = defaultSlotTTL
	}
	if s.timeout <= 0 {
		s.timeout = defaultSlotLoadTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// WithFreshness installs a revision check used when the TTL expires.
func (s *Slot[T]) WithFreshness(f FreshFunc[T]) *Slot[T] {
	s.fresh = f
	return s
}

// Get returns the cached value, loading it when missing or expired. When a
// load fails and a previous value exists, the previous value is returned
// with a nil error.
func (s *Slot[T]) Get(ctx context.Context) (T, error) {
	now := s.now()

	s.mu.RLock()
	value, has, loadedAt, retryAt, lastErr := s.value, s.has, s.loadedAt, s.retryAt, s.lastErr
	s.mu.RUnlock()

	if has && now.Sub(loadedAt) < s.ttl {
		return value, nil
	}
	if now.Before(retryAt) {
		if has {
			return value, nil
		}
		var zero T
		return zero, lastErr
	}

	v, err := s.refresh(ctx, "get", false)
	if err != nil {
		if has {
			log.Warn().Err(err).Str("cache", s.name).Time("loaded_at", loadedAt).Msg("reload failed, serving stale value")
			return value, nil
		}
		return v, err
	}
	return v, nil
}

// ReloadResult is the outcome of a forced load. When Stale is set the load
// failed, Value is the previous value and StaleErr holds the failure.
type ReloadResult[T any] struct {
	Value    T
	Stale    bool
	StaleErr error
}

// Reload forces a load. A failure is returned as an error only when there is
// no previous value to fall back to.
func (s *Slot[T]) Reload(ctx context.Context) (ReloadResult[T], error) {
	v, err := s.refresh(ctx, "reload", true)
	if err == nil {
		return ReloadResult[T]{Value: v}, nil
	}

	s.mu.RLock()
	value, has, loadedAt := s.value, s.has, s.loadedAt
	s.mu.RUnlock()
	if !has {
		return ReloadResult[T]{}, err
	}
	log.Warn().Err(err).Str("cache", s.name).Time("loaded_at", loadedAt).Msg("forced reload failed, keeping previous value")
	return ReloadResult[T]{Value: value, Stale: true, StaleErr: err}, nil
}

// Invalidate marks the value expired. It is kept as the fallback for the
// next failed load.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	s.loadedAt = time.Time{}
	s.retryAt = time.Time{}
	s.mu.Unlock()
}

// Peek returns the current value without loading.
func (s *Slot[T]) Peek() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.loadedAt, s.has
}

func (s *Slot[T]) refresh(ctx context.Context, key string, force bool) (T, error) {
	res, err, _ := s.group.Do(key, func() (interface{}, error) {
		now := s.now()

		s.mu.RLock()
		current, has, loadedAt := s.value, s.has, s.loadedAt
		s.mu.RUnlock()

		// Another caller may have finished a load between our check and Do.
		if !force && has && now.Sub(loadedAt) < s.ttl {
			return current, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		if !force && has && s.fresh != nil {
			unchanged, err := s.fresh(loadCtx, current)
			if err == nil && unchanged {
				s.mu.Lock()
				s.loadedAt = now
				s.mu.Unlock()
				log.Debug().Str("cache", s.name).Msg("upstream unchanged, extending cached value")
				return current, nil
			}
			if err != nil {
				log.Warn().Err(err).Str("cache", s.name).Msg("revision check failed, reloading")
			}
		}

		v, err := s.load(loadCtx)
		if err != nil {
			s.mu.Lock()
			s.retryAt = s.now().Add(s.backoff)
			s.lastErr = err
			s.mu.Unlock()
			return nil, err
		}

		s.mu.Lock()
		s.value = v
		s.has = true
		s.loadedAt = s.now()
		s.retryAt = time.Time{}
		s.lastErr = nil
		s.mu.Unlock()

		log.Info().Str("cache", s.name).Msg("cache reloaded")
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
