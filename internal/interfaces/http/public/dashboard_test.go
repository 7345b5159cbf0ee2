package public

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
	"github.com/ncd-navigator/resource-mobilization/api/internal/interfaces/http/common"
	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
)

// fakeStatsEngine stands in for the aggregation engine behind the cached
// facade and records the activity-feed limit it was asked for.
type fakeStatsEngine struct {
	stats     *statsapp.DashboardStats
	lastLimit int
}

func (f *fakeStatsEngine) Dashboard(context.Context) (*statsapp.DashboardStats, error) {
	return f.stats, nil
}

func (f *fakeStatsEngine) RecentActivity(_ context.Context, limit int) ([]statsapp.ActivityItem, error) {
	f.lastLimit = limit
	return []statsapp.ActivityItem{{OrganisationName: "Ghana Health Service"}}, nil
}

func (f *fakeStatsEngine) QuickCounts(context.Context) (statsapp.QuickCounts, error) {
	return statsapp.QuickCounts{}, nil
}

func newDashboardTestHandler(engine *fakeStatsEngine, activityLimit int) *Handler {
	return NewHandler(Config{
		Logger:            log.New(io.Discard, "", 0),
		Stats:             statsapp.NewCachedService(engine, cache.New(), time.Minute, nil),
		ActivityFeedLimit: activityLimit,
	})
}

func authenticatedGet(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(common.ContextWithUser(req.Context(), common.AuthenticatedUser{ID: "user-1"}))
}

func TestDashboardHandler_GroupCountsKeyedByDimension(t *testing.T) {
	engine := &fakeStatsEngine{stats: &statsapp.DashboardStats{
		TotalSurveys: 1,
		TopRegions:   []statsapp.GroupCount{{Name: "Ashanti", Count: 1}},
		TopSectors:   []statsapp.GroupCount{{Name: "NGO", Count: 1}},
	}}
	handler := newDashboardTestHandler(engine, 0)

	rec := httptest.NewRecorder()
	handler.dashboardHandler()(rec, authenticatedGet("/dashboard"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Stats struct {
			TopRegions []map[string]any `json:"topRegions"`
			TopSectors []map[string]any `json:"topSectors"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Stats.TopRegions, 1)
	assert.Equal(t, "Ashanti", body.Stats.TopRegions[0]["region"])
	assert.Equal(t, float64(1), body.Stats.TopRegions[0]["count"])
	assert.NotContains(t, body.Stats.TopRegions[0], "name")

	require.Len(t, body.Stats.TopSectors, 1)
	assert.Equal(t, "NGO", body.Stats.TopSectors[0]["sector"])
}

func TestDashboardHandler_ActivityFeedUsesConfiguredLimit(t *testing.T) {
	engine := &fakeStatsEngine{stats: &statsapp.DashboardStats{}}
	handler := newDashboardTestHandler(engine, 3)

	rec := httptest.NewRecorder()
	handler.dashboardHandler()(rec, authenticatedGet("/dashboard?includeActivity=1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, engine.lastLimit)
}
