package public

import (
	"time"

	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	partnerdomain "github.com/ncd-navigator/resource-mobilization/api/internal/partner/domain"
	resourcedomain "github.com/ncd-navigator/resource-mobilization/api/internal/resource/domain"
	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
)

func mapDraftPayload(d *drafts.Draft) *draftPayload {
	if d == nil {
		return nil
	}
	return &draftPayload{
		ID:          d.ID,
		UserID:      d.UserID,
		FormData:    d.FormData,
		CurrentStep: d.CurrentStep,
		CreatedAt:   d.CreatedAt,
		LastUpdated: d.LastUpdated,
	}
}

func mapDashboardStats(stats *statsapp.DashboardStats) dashboardStatsPayload {
	return dashboardStatsPayload{
		TotalSurveys:      stats.TotalSurveys,
		TotalDrafts:       stats.TotalDrafts,
		TotalUsers:        stats.TotalUsers,
		RecentSubmissions: stats.RecentSubmissions,
		RecentActivity:    stats.RecentActivity,
		CompletionRate:    stats.CompletionRate,
		ActivePartners:    stats.ActivePartners,
		RegionsCovered:    stats.RegionsCovered,
		NCDsCovered:       stats.NCDsCovered,
		TopRegions:        mapRegionCounts(stats.TopRegions),
		TopSectors:        mapSectorCounts(stats.TopSectors),
		MonthlyTrends:     mapMonthBuckets(stats.MonthlyTrends),
	}
}

func mapRegionCounts(groups []statsapp.GroupCount) []regionCountResponse {
	out := make([]regionCountResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, regionCountResponse{Region: g.Name, Count: g.Count})
	}
	return out
}

func mapSectorCounts(groups []statsapp.GroupCount) []sectorCountResponse {
	out := make([]sectorCountResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, sectorCountResponse{Sector: g.Name, Count: g.Count})
	}
	return out
}

func mapMonthBuckets(buckets []statsapp.MonthBucket) []monthBucketResponse {
	out := make([]monthBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, monthBucketResponse{
			Month:   b.Label,
			Year:    b.Year,
			Surveys: b.Surveys,
			Drafts:  b.Drafts,
		})
	}
	return out
}

func mapActivityItems(items []statsapp.ActivityItem) []activityItemResponse {
	out := make([]activityItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, activityItemResponse{
			OrganisationName: item.OrganisationName,
			ProjectName:      item.ProjectName,
			Region:           item.Region,
			Status:           item.Status,
			CreatedBy:        item.CreatedBy,
			SubmissionDate:   item.SubmissionDate,
		})
	}
	return out
}

func mapMappingRecord(record partnerdomain.MappingRecord) mappingRecordResponse {
	entries := make([]mappingEntryResponse, 0, len(record.Entries))
	for _, e := range record.Entries {
		entries = append(entries, mappingEntryResponse{
			ID:           e.ID,
			Year:         e.Year.Int(),
			WorkNature:   e.WorkNature.String(),
			Organization: e.Organization,
			ProjectName:  e.ProjectName,
			Region:       e.Region.String(),
			District:     e.District,
			Disease:      e.Disease.String(),
			PartnerName:  e.PartnerName,
			PartnerRole:  e.PartnerRole.String(),
		})
	}
	return mappingRecordResponse{
		ID:        record.ID,
		Status:    record.Status,
		Entries:   entries,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func mapResource(resource resourcedomain.Resource) resourceResponse {
	return resourceResponse{
		ID:            resource.ID,
		Title:         resource.Title,
		Description:   resource.Description,
		Category:      resource.Category,
		FileName:      resource.FileName,
		ContentType:   resource.ContentType,
		SizeBytes:     resource.SizeBytes,
		DownloadCount: resource.DownloadCount,
		CreatedAt:     resource.CreatedAt,
		UpdatedAt:     resource.UpdatedAt,
	}
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
