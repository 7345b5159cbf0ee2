package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCompute_CachesWithinTTL(t *testing.T) {
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return current })

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	value, _, err := GetOrCompute(context.Background(), store, "answer", 5*time.Minute, []Tag{TagStats}, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	current = current.Add(4 * time.Minute)
	value, _, err = GetOrCompute(context.Background(), store, "answer", 5*time.Minute, []Tag{TagStats}, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 1, calls, "second read within TTL must not recompute")
}

func TestGetOrCompute_RecomputesAfterTTL(t *testing.T) {
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return current })

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	value, _, err := GetOrCompute(context.Background(), store, "answer", 5*time.Minute, nil, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	current = current.Add(5 * time.Minute)
	value, _, err = GetOrCompute(context.Background(), store, "answer", 5*time.Minute, nil, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, calls)
}

func TestInvalidate_ByTag(t *testing.T) {
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return current })

	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	_, _, err := GetOrCompute(context.Background(), store, "stats", time.Hour, []Tag{TagStats, TagSubmissions}, compute)
	require.NoError(t, err)

	// Unrelated tags leave the entry alone.
	store.Invalidate(Tag("unrelated"))
	_, _, err = GetOrCompute(context.Background(), store, "stats", time.Hour, []Tag{TagStats, TagSubmissions}, compute)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	store.Invalidate(TagSubmissions)
	_, _, err = GetOrCompute(context.Background(), store, "stats", time.Hour, []Tag{TagStats, TagSubmissions}, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "invalidated entry must recompute before TTL expiry")
}

func TestGetOrCompute_ErrorKeepsPreviousEntryIntact(t *testing.T) {
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return current })

	_, _, err := GetOrCompute(context.Background(), store, "stats", time.Minute, nil, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	boom := errors.New("database unavailable")
	_, _, err = GetOrCompute(context.Background(), store, "stats", time.Minute, nil, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	// The failed compute must not have overwritten the stored value; once
	// compute succeeds again the entry is refreshed.
	value, _, err := GetOrCompute(context.Background(), store, "stats", time.Minute, nil, func(context.Context) (int, error) {
		return 9, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 9, value)
}

func TestGetOrCompute_HitReportsOriginalComputationTime(t *testing.T) {
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewWithClock(func() time.Time { return current })

	computedAt := current
	_, storedAt, err := GetOrCompute(context.Background(), store, "answer", 5*time.Minute, nil, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, computedAt, storedAt)

	current = current.Add(3 * time.Minute)
	_, storedAt, err = GetOrCompute(context.Background(), store, "answer", 5*time.Minute, nil, func(context.Context) (int, error) {
		t.Fatal("hit within TTL must not recompute")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, computedAt, storedAt, "a hit must report when the value was computed, not when it was read")
}
