package application

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	topGroupLimit    = 5
	trendMonths      = 6
	recentWindow     = 30 * 24 * time.Hour
	activityWindow   = 24 * time.Hour
	defaultFeedLimit = 10
)

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs the aggregation engine on top of repo.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// NewServiceWithClock fixes the engine's notion of "now" for deterministic
// month bucketing in tests.
func NewServiceWithClock(repo Repository, now func() time.Time) Service {
	return &service{repo: repo, now: now}
}

// Dashboard fans the independent sub-queries out concurrently and joins them
// into one combined payload. Empty collections produce zero-valued results.
func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	// The clock's location decides which calendar month "now" falls in,
	// so month buckets follow the configured reporting timezone.
	now := s.now()
	trendStart := monthStart(now).AddDate(0, -(trendMonths - 1), 0)

	var (
		totalSurveys, totalDrafts, totalUsers int64
		recentSubmissions, recentActivity     int64
		organisations, regions                []string
		ncdNames                              []NCDNames
		byRegion, bySector                    []GroupCount
		surveyMonths, draftMonths             map[MonthKey]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalSurveys, err = s.repo.CountSurveys(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalDrafts, err = s.repo.CountDrafts(gctx)
		return err
	})
	g.Go(func() (err error) {
		totalUsers, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		recentSubmissions, err = s.repo.CountSurveysSince(gctx, now.Add(-recentWindow))
		return err
	})
	g.Go(func() (err error) {
		recentActivity, err = s.repo.CountSurveysSince(gctx, now.Add(-activityWindow))
		return err
	})
	g.Go(func() (err error) {
		organisations, err = s.repo.DistinctOrganisations(gctx)
		return err
	})
	g.Go(func() (err error) {
		regions, err = s.repo.DistinctRegions(gctx)
		return err
	})
	g.Go(func() (err error) {
		ncdNames, err = s.repo.SurveyNCDNames(gctx)
		return err
	})
	g.Go(func() (err error) {
		byRegion, err = s.repo.CountByRegion(gctx)
		return err
	})
	g.Go(func() (err error) {
		bySector, err = s.repo.CountBySector(gctx)
		return err
	})
	g.Go(func() (err error) {
		surveyMonths, err = s.repo.MonthlySurveyCounts(gctx, trendStart)
		return err
	})
	g.Go(func() (err error) {
		draftMonths, err = s.repo.MonthlyDraftCounts(gctx, trendStart)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalSurveys:      int(totalSurveys),
		TotalDrafts:       int(totalDrafts),
		TotalUsers:        int(totalUsers),
		RecentSubmissions: int(recentSubmissions),
		RecentActivity:    int(recentActivity),
		CompletionRate:    CompletionRate(int(totalSurveys), int(totalDrafts)),
		ActivePartners:    countDistinctNonEmpty(organisations),
		RegionsCovered:    countDistinctNonEmpty(regions),
		NCDsCovered:       CountDistinctNCDs(ncdNames),
		TopRegions:        topGroups(byRegion, topGroupLimit),
		TopSectors:        topGroups(bySector, topGroupLimit),
		MonthlyTrends:     buildMonthBuckets(now, trendMonths, surveyMonths, draftMonths),
	}, nil
}

func (s *service) RecentActivity(ctx context.Context, limit int) ([]ActivityItem, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	return s.repo.RecentSurveys(ctx, limit)
}

func (s *service) QuickCounts(ctx context.Context) (QuickCounts, error) {
	now := s.now()

	var surveys, drafts, users, recent int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		surveys, err = s.repo.CountSurveys(gctx)
		return err
	})
	g.Go(func() (err error) {
		drafts, err = s.repo.CountDrafts(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.repo.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.repo.CountSurveysSince(gctx, now.Add(-activityWindow))
		return err
	})
	if err := g.Wait(); err != nil {
		return QuickCounts{}, err
	}

	return QuickCounts{
		TotalSurveys:   int(surveys),
		TotalDrafts:    int(drafts),
		TotalUsers:     int(users),
		RecentActivity: int(recent),
		CompletionRate: CompletionRate(int(surveys), int(drafts)),
	}, nil
}

// CompletionRate is round(100 * submitted / (submitted + drafts)), defined
// as 0 when the denominator is 0.
func CompletionRate(submitted, drafts int) int {
	total := submitted + drafts
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(submitted) / float64(total)))
}

// CountDistinctNCDs counts distinct NCD names across both sources: names are
// trimmed, empties excluded, and a name appearing both as a targeted NCD and
// as an activity key counts once.
func CountDistinctNCDs(rows []NCDNames) int {
	seen := make(map[string]struct{})
	add := func(raw string) {
		name := strings.TrimSpace(raw)
		if name == "" {
			return
		}
		seen[name] = struct{}{}
	}
	for _, row := range rows {
		for _, name := range row.Targeted {
			add(name)
		}
		for _, name := range row.ActivityKeys {
			add(name)
		}
	}
	return len(seen)
}

func countDistinctNonEmpty(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		seen[trimmed] = struct{}{}
	}
	return len(seen)
}

// topGroups sorts by count descending and truncates to limit. Ties keep the
// repository's order.
func topGroups(groups []GroupCount, limit int) []GroupCount {
	result := append([]GroupCount(nil), groups...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// buildMonthBuckets produces exactly months buckets ordered oldest to
// newest, ending at the month containing now, zero-filling months with no
// matching records.
func buildMonthBuckets(now time.Time, months int, surveys, drafts map[MonthKey]int) []MonthBucket {
	buckets := make([]MonthBucket, 0, months)
	start := monthStart(now).AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		at := start.AddDate(0, i, 0)
		key := MonthKey{Year: at.Year(), Month: at.Month()}
		buckets = append(buckets, MonthBucket{
			Label:   at.Format("Jan"),
			Year:    key.Year,
			Month:   key.Month,
			Surveys: surveys[key],
			Drafts:  drafts[key],
		})
	}
	return buckets
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
