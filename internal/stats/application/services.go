package application

import (
	"context"
	"time"
)

// MonthKey identifies one calendar month bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

// GroupCount is one grouped-count line, e.g. {region, count}.
type GroupCount struct {
	Name  string
	Count int
}

// MonthBucket is one month of the submission trend, zero-filled when no
// record falls inside it.
type MonthBucket struct {
	Label   string
	Year    int
	Month   time.Month
	Surveys int
	Drafts  int
}

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	OrganisationName string
	ProjectName      string
	Region           string
	Status           string
	CreatedBy        string
	SubmissionDate   time.Time
}

// NCDNames carries, for one survey, the NCD names from both sources the
// distinct-NCD cardinality draws on.
type NCDNames struct {
	Targeted     []string
	ActivityKeys []string
}

// DashboardStats is the full derived statistics payload for the admin
// dashboard. Never persisted; recomputed from the submitted collections.
type DashboardStats struct {
	TotalSurveys      int
	TotalDrafts       int
	TotalUsers        int
	RecentSubmissions int
	RecentActivity    int
	CompletionRate    int
	ActivePartners    int
	RegionsCovered    int
	NCDsCovered       int
	TopRegions        []GroupCount
	TopSectors        []GroupCount
	MonthlyTrends     []MonthBucket
}

// QuickCounts is the lightweight unauthenticated counters payload.
type QuickCounts struct {
	TotalSurveys   int
	TotalDrafts    int
	TotalUsers     int
	RecentActivity int
	CompletionRate int
}

// Repository exposes the read-only aggregation queries over the submitted
// collections. Implementations run the database pipelines; the service owns
// the bucketing, deduplication and ratio arithmetic on top of them.
type Repository interface {
	CountSurveys(ctx context.Context) (int64, error)
	CountSurveysSince(ctx context.Context, since time.Time) (int64, error)
	CountDrafts(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	DistinctOrganisations(ctx context.Context) ([]string, error)
	DistinctRegions(ctx context.Context) ([]string, error)
	SurveyNCDNames(ctx context.Context) ([]NCDNames, error)
	CountByRegion(ctx context.Context) ([]GroupCount, error)
	CountBySector(ctx context.Context) ([]GroupCount, error)
	MonthlySurveyCounts(ctx context.Context, from time.Time) (map[MonthKey]int, error)
	MonthlyDraftCounts(ctx context.Context, from time.Time) (map[MonthKey]int, error)
	RecentSurveys(ctx context.Context, limit int) ([]ActivityItem, error)
}

// Service computes derived statistics with no side effects on source data.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	RecentActivity(ctx context.Context, limit int) ([]ActivityItem, error)
	QuickCounts(ctx context.Context) (QuickCounts, error)
}
