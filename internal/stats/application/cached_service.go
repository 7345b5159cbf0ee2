package application

import (
	"context"
	"log"
	"time"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
)

const (
	dashboardCacheKey = "stats:dashboard"
	quickCacheKey     = "stats:quick"

	// FallbackMessage is carried in responses built from the static
	// snapshot so the substitution stays auditable without blocking users.
	FallbackMessage = "Fallback statistics returned due to database unavailability"
)

var statsCacheTags = []cache.Tag{cache.TagStats, cache.TagSubmissions}

// DashboardResult is the cached facade's answer for the dashboard surface.
// Fallback is true when the snapshot replaced a failed computation; the
// caller still reports success.
type DashboardResult struct {
	Stats      *DashboardStats
	ComputedAt time.Time
	Fallback   bool
	Message    string
}

// QuickCountsResult mirrors DashboardResult for the lightweight counters.
type QuickCountsResult struct {
	Counts     QuickCounts
	ComputedAt time.Time
	Fallback   bool
	Message    string
}

// CachedService wraps the aggregation engine with the time-boxed cache and
// the fallback policy: statistics reads never surface a hard error.
type CachedService struct {
	inner  Service
	store  *cache.Store
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

// NewCachedService builds the caching facade around inner.
func NewCachedService(inner Service, store *cache.Store, ttl time.Duration, logger *log.Logger) *CachedService {
	return &CachedService{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Dashboard returns the cached dashboard statistics, recomputing when the
// entry is stale. Computation failures are logged and replaced with the
// static snapshot.
func (c *CachedService) Dashboard(ctx context.Context) DashboardResult {
	stats, computedAt, err := cache.GetOrCompute(ctx, c.store, dashboardCacheKey, c.ttl, statsCacheTags, func(ctx context.Context) (*DashboardStats, error) {
		return c.inner.Dashboard(ctx)
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("dashboard stats computation failed, serving fallback snapshot: %v", err)
		}
		return DashboardResult{
			Stats:      FallbackStats(c.now().UTC()),
			ComputedAt: c.now().UTC(),
			Fallback:   true,
			Message:    FallbackMessage,
		}
	}
	return DashboardResult{Stats: stats, ComputedAt: computedAt.UTC()}
}

// QuickCounts serves the unauthenticated counters with the same policy.
func (c *CachedService) QuickCounts(ctx context.Context) QuickCountsResult {
	counts, computedAt, err := cache.GetOrCompute(ctx, c.store, quickCacheKey, c.ttl, statsCacheTags, func(ctx context.Context) (QuickCounts, error) {
		return c.inner.QuickCounts(ctx)
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("quick counts computation failed, serving fallback snapshot: %v", err)
		}
		return QuickCountsResult{
			Counts:     FallbackQuickCounts(),
			ComputedAt: c.now().UTC(),
			Fallback:   true,
			Message:    FallbackMessage,
		}
	}
	return QuickCountsResult{Counts: counts, ComputedAt: computedAt.UTC()}
}

// RecentActivity is not cached: the feed is cheap (indexed find with limit)
// and freshness matters more than the saved round trip. Failures degrade to
// an empty feed rather than an error.
func (c *CachedService) RecentActivity(ctx context.Context, limit int) []ActivityItem {
	items, err := c.inner.RecentActivity(ctx, limit)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("recent activity query failed, serving empty feed: %v", err)
		}
		return []ActivityItem{}
	}
	return items
}

// Refresh invalidates the stats entries so the next read recomputes.
func (c *CachedService) Refresh() {
	c.store.Invalidate(cache.TagStats)
}
