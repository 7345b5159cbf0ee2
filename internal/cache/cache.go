package cache

import (
	"context"
	"sync"
	"time"
)

// Tag identifies an invalidation domain. Writers invalidate by tag without
// needing to know which cache keys depend on their data.
type Tag string

const (
	// TagStats covers derived dashboard statistics.
	TagStats Tag = "dashboard-stats"
	// TagSubmissions covers anything derived from submitted records. Every
	// write path that touches surveys or partner mappings invalidates it.
	TagSubmissions Tag = "submitted-records"
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
	tags     []Tag
	stale    bool
}

// Store is an in-process cache with per-entry TTL and tag-based invalidation.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// New returns an empty Store using the wall clock.
func New() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// NewWithClock returns a Store whose notion of time is supplied by now.
// Tests use this to step time deterministically.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

// Invalidate marks every entry associated with any of the given tags as
// stale. The next GetOrCompute for those entries recomputes regardless of
// remaining TTL.
func (s *Store) Invalidate(tags ...Tag) {
	if len(tags) == 0 {
		return
	}
	wanted := make(map[Tag]struct{}, len(tags))
	for _, tag := range tags {
		wanted[tag] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		for _, tag := range e.tags {
			if _, ok := wanted[tag]; ok {
				e.stale = true
				break
			}
		}
	}
}

func (s *Store) lookup(key string) (any, time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || e.stale {
		return nil, time.Time{}, false
	}
	if s.now().Sub(e.storedAt) >= e.ttl {
		return nil, time.Time{}, false
	}
	return e.value, e.storedAt, true
}

func (s *Store) put(key string, value any, ttl time.Duration, tags []Tag) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	storedAt := s.now()
	s.entries[key] = &entry{
		value:    value,
		storedAt: storedAt,
		ttl:      ttl,
		tags:     append([]Tag(nil), tags...),
	}
	return storedAt
}

// GetOrCompute returns the cached value for key when it is younger than ttl
// and not invalidated; otherwise it invokes compute, stores the result and
// returns it. The returned time is when the value was computed, so cache
// hits report the original computation time rather than the read time.
// A compute failure is returned as-is and leaves any previous entry
// untouched, so callers decide their own fallback policy.
func GetOrCompute[T any](ctx context.Context, s *Store, key string, ttl time.Duration, tags []Tag, compute func(context.Context) (T, error)) (T, time.Time, error) {
	if cached, storedAt, ok := s.lookup(key); ok {
		if value, ok := cached.(T); ok {
			return value, storedAt, nil
		}
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, time.Time{}, err
	}
	return value, s.put(key, value, ttl, tags), nil
}
