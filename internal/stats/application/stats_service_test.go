package application

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository returns canned aggregation results and lets individual
// queries be failed to exercise error propagation.
type fakeRepository struct {
	surveys       int64
	drafts        int64
	users         int64
	recent        int64
	organisations []string
	regions       []string
	ncdNames      []NCDNames
	byRegion      []GroupCount
	bySector      []GroupCount
	surveyMonths  map[MonthKey]int
	draftMonths   map[MonthKey]int
	recentItems   []ActivityItem
	err           error
}

func (f *fakeRepository) CountSurveys(context.Context) (int64, error) {
	return f.surveys, f.err
}

func (f *fakeRepository) CountSurveysSince(context.Context, time.Time) (int64, error) {
	return f.recent, f.err
}

func (f *fakeRepository) CountDrafts(context.Context) (int64, error) {
	return f.drafts, f.err
}

func (f *fakeRepository) CountUsers(context.Context) (int64, error) {
	return f.users, f.err
}

func (f *fakeRepository) DistinctOrganisations(context.Context) ([]string, error) {
	return f.organisations, f.err
}

func (f *fakeRepository) DistinctRegions(context.Context) ([]string, error) {
	return f.regions, f.err
}

func (f *fakeRepository) SurveyNCDNames(context.Context) ([]NCDNames, error) {
	return f.ncdNames, f.err
}

func (f *fakeRepository) CountByRegion(context.Context) ([]GroupCount, error) {
	return f.byRegion, f.err
}

func (f *fakeRepository) CountBySector(context.Context) ([]GroupCount, error) {
	return f.bySector, f.err
}

func (f *fakeRepository) MonthlySurveyCounts(context.Context, time.Time) (map[MonthKey]int, error) {
	return f.surveyMonths, f.err
}

func (f *fakeRepository) MonthlyDraftCounts(context.Context, time.Time) (map[MonthKey]int, error) {
	return f.draftMonths, f.err
}

func (f *fakeRepository) RecentSurveys(_ context.Context, limit int) ([]ActivityItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.recentItems) {
		return f.recentItems[:limit], nil
	}
	return f.recentItems, nil
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(0, 0))
	assert.Equal(t, 75, CompletionRate(3, 1))
	assert.Equal(t, 0, CompletionRate(0, 5))
	assert.Equal(t, 100, CompletionRate(4, 0))
	assert.Equal(t, 67, CompletionRate(2, 1))
}

func TestCountDistinctNCDs_TrimsAndDedupsAcrossSources(t *testing.T) {
	rows := []NCDNames{
		{
			Targeted:     []string{"Diabetes", " Diabetes "},
			ActivityKeys: []string{"Diabetes", "Hypertension"},
		},
	}
	assert.Equal(t, 2, CountDistinctNCDs(rows))
}

func TestCountDistinctNCDs_SkipsEmptyNames(t *testing.T) {
	rows := []NCDNames{
		{Targeted: []string{"", "  "}, ActivityKeys: []string{"Cancer"}},
		{Targeted: []string{"Cancer"}},
	}
	assert.Equal(t, 1, CountDistinctNCDs(rows))
}

func TestDashboard_MonthBucketsZeroFilledOldestFirst(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		surveyMonths: map[MonthKey]int{
			{Year: 2024, Month: time.June}:  3,
			{Year: 2024, Month: time.April}: 1,
		},
		draftMonths: map[MonthKey]int{
			{Year: 2024, Month: time.May}: 2,
		},
	}
	svc := NewServiceWithClock(repo, func() time.Time { return now })

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.MonthlyTrends, 6)
	labels := make([]string, 0, 6)
	for _, bucket := range stats.MonthlyTrends {
		labels = append(labels, bucket.Label)
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}, labels)

	assert.Equal(t, 0, stats.MonthlyTrends[0].Surveys)
	assert.Equal(t, 1, stats.MonthlyTrends[3].Surveys)
	assert.Equal(t, 2, stats.MonthlyTrends[4].Drafts)
	assert.Equal(t, 3, stats.MonthlyTrends[5].Surveys)
}

func TestDashboard_TopGroupsTruncatedToFive(t *testing.T) {
	repo := &fakeRepository{
		byRegion: []GroupCount{
			{Name: "Greater Accra", Count: 11},
			{Name: "Ashanti", Count: 9},
			{Name: "Northern", Count: 7},
			{Name: "Volta", Count: 5},
			{Name: "Central", Count: 4},
			{Name: "Eastern", Count: 2},
			{Name: "Bono", Count: 1},
		},
	}
	svc := NewServiceWithClock(repo, func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.TopRegions, 5)
	assert.Equal(t, "Greater Accra", stats.TopRegions[0].Name)
	assert.Equal(t, "Central", stats.TopRegions[4].Name)
}

func TestDashboard_EndToEnd(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		surveys:       4,
		drafts:        2,
		users:         10,
		recent:        3,
		organisations: []string{"GHS", "WHO", " GHS ", ""},
		regions:       []string{"Ashanti", "Greater Accra"},
		ncdNames: []NCDNames{
			{Targeted: []string{"Diabetes"}, ActivityKeys: []string{"Hypertension"}},
			{Targeted: []string{"Diabetes"}},
		},
		byRegion: []GroupCount{
			{Name: "Ashanti", Count: 3},
			{Name: "Greater Accra", Count: 1},
		},
		bySector: []GroupCount{{Name: "Government", Count: 4}},
	}
	svc := NewServiceWithClock(repo, func() time.Time { return now })

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalSurveys)
	assert.Equal(t, 2, stats.TotalDrafts)
	assert.Equal(t, 67, stats.CompletionRate)
	assert.Equal(t, 2, stats.ActivePartners, "organisation names are trimmed and deduped")
	assert.Equal(t, 2, stats.RegionsCovered)
	assert.Equal(t, 2, stats.NCDsCovered)
	require.NotEmpty(t, stats.TopRegions)
	assert.Equal(t, "Ashanti", stats.TopRegions[0].Name)
	assert.Equal(t, 3, stats.TopRegions[0].Count)
}

func TestDashboard_PropagatesQueryFailure(t *testing.T) {
	repo := &fakeRepository{err: errors.New("connection reset")}
	svc := NewService(repo)

	_, err := svc.Dashboard(context.Background())
	assert.Error(t, err)
}

func TestRecentActivity_DefaultsLimit(t *testing.T) {
	items := make([]ActivityItem, 15)
	for i := range items {
		items[i] = ActivityItem{OrganisationName: "Org"}
	}
	repo := &fakeRepository{recentItems: items}
	svc := NewService(repo)

	feed, err := svc.RecentActivity(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, feed, 10)
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "[test] ", 0)
}

func TestDashboard_MonthBucketsFollowClockTimezone(t *testing.T) {
	// Half past midnight on 1 July in UTC+9 is still 30 June in UTC; the
	// buckets must follow the clock's calendar, not the UTC one.
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2024, 7, 1, 0, 30, 0, 0, loc)
	repo := &fakeRepository{}
	svc := NewServiceWithClock(repo, func() time.Time { return now })

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.MonthlyTrends, 6)
	assert.Equal(t, "Feb", stats.MonthlyTrends[0].Label)
	assert.Equal(t, "Jul", stats.MonthlyTrends[5].Label)
	assert.Equal(t, 2024, stats.MonthlyTrends[5].Year)
}
