package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
)

func TestCachedDashboard_FallbackOnFailureStillSucceeds(t *testing.T) {
	repo := &fakeRepository{err: errors.New("database unavailable")}
	cached := NewCachedService(NewService(repo), cache.New(), 5*time.Minute, testLogger())

	result := cached.Dashboard(context.Background())

	require.NotNil(t, result.Stats, "fallback must carry a non-nil payload")
	assert.True(t, result.Fallback)
	assert.Equal(t, FallbackMessage, result.Message)
	assert.Equal(t, 39, result.Stats.TotalSurveys)
	assert.Len(t, result.Stats.MonthlyTrends, 6)
}

func TestCachedDashboard_ServesFromCache(t *testing.T) {
	repo := &fakeRepository{surveys: 5, drafts: 1}
	cached := NewCachedService(NewService(repo), cache.New(), 5*time.Minute, testLogger())

	first := cached.Dashboard(context.Background())
	require.False(t, first.Fallback)
	assert.Equal(t, 5, first.Stats.TotalSurveys)

	// A later read within the TTL must not see repository changes.
	repo.surveys = 50
	second := cached.Dashboard(context.Background())
	assert.Equal(t, 5, second.Stats.TotalSurveys)
}

func TestCachedDashboard_RefreshForcesRecompute(t *testing.T) {
	repo := &fakeRepository{surveys: 5}
	cached := NewCachedService(NewService(repo), cache.New(), time.Hour, testLogger())

	first := cached.Dashboard(context.Background())
	assert.Equal(t, 5, first.Stats.TotalSurveys)

	repo.surveys = 6
	cached.Refresh()
	second := cached.Dashboard(context.Background())
	assert.Equal(t, 6, second.Stats.TotalSurveys)
}

func TestCachedQuickCounts_FallbackShape(t *testing.T) {
	repo := &fakeRepository{err: errors.New("database unavailable")}
	cached := NewCachedService(NewService(repo), cache.New(), 5*time.Minute, testLogger())

	result := cached.QuickCounts(context.Background())
	assert.True(t, result.Fallback)
	assert.Equal(t, FallbackMessage, result.Message)
	assert.Equal(t, 39, result.Counts.TotalSurveys)
}

func TestCachedRecentActivity_DegradesToEmptyFeed(t *testing.T) {
	repo := &fakeRepository{err: errors.New("database unavailable")}
	cached := NewCachedService(NewService(repo), cache.New(), 5*time.Minute, testLogger())

	feed := cached.RecentActivity(context.Background(), 5)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestCachedDashboard_TimestampIsComputationTime(t *testing.T) {
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := cache.NewWithClock(func() time.Time { return current })
	repo := &fakeRepository{surveys: 5}
	cached := NewCachedService(NewService(repo), store, time.Hour, testLogger())

	first := cached.Dashboard(context.Background())
	require.False(t, first.Fallback)
	computedAt := first.ComputedAt

	current = current.Add(10 * time.Minute)
	second := cached.Dashboard(context.Background())
	assert.Equal(t, computedAt, second.ComputedAt, "a cache hit reports when the stats were computed, not when they were read")
}
