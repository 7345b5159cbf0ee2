package admin

import (
	resourcedomain "github.com/ncd-navigator/resource-mobilization/api/internal/resource/domain"
	statsapp "github.com/ncd-navigator/resource-mobilization/api/internal/stats/application"
	surveydomain "github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
	userdomain "github.com/ncd-navigator/resource-mobilization/api/internal/user/domain"
)

func mapUserResponse(user userdomain.User) userResponse {
	return userResponse{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Organisation: user.Organisation,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func mapAdminResource(resource resourcedomain.Resource) adminResourceResponse {
	return adminResourceResponse{
		ID:            resource.ID,
		Title:         resource.Title,
		Description:   resource.Description,
		Category:      resource.Category,
		FileName:      resource.FileName,
		StoredPath:    resource.StoredPath,
		ContentType:   resource.ContentType,
		SizeBytes:     resource.SizeBytes,
		DownloadCount: resource.DownloadCount,
		UploadedBy:    resource.UploadedBy,
		CreatedAt:     resource.CreatedAt,
		UpdatedAt:     resource.UpdatedAt,
	}
}

func mapAdminStats(stats *statsapp.DashboardStats) adminStatsPayload {
	regions := make([]regionCount, 0, len(stats.TopRegions))
	for _, g := range stats.TopRegions {
		regions = append(regions, regionCount{Region: g.Name, Count: g.Count})
	}
	sectors := make([]sectorCount, 0, len(stats.TopSectors))
	for _, g := range stats.TopSectors {
		sectors = append(sectors, sectorCount{Sector: g.Name, Count: g.Count})
	}
	trends := make([]monthlyTrend, 0, len(stats.MonthlyTrends))
	for _, b := range stats.MonthlyTrends {
		trends = append(trends, monthlyTrend{Month: b.Label, Year: b.Year, Surveys: b.Surveys, Drafts: b.Drafts})
	}
	return adminStatsPayload{
		TotalSurveys:      stats.TotalSurveys,
		TotalDrafts:       stats.TotalDrafts,
		TotalUsers:        stats.TotalUsers,
		RecentSubmissions: stats.RecentSubmissions,
		RecentActivity:    stats.RecentActivity,
		CompletionRate:    stats.CompletionRate,
		ActivePartners:    stats.ActivePartners,
		RegionsCovered:    stats.RegionsCovered,
		NCDsCovered:       stats.NCDsCovered,
		TopRegions:        regions,
		TopSectors:        sectors,
		MonthlyTrends:     trends,
	}
}

func mapAdminSurvey(survey surveydomain.Survey) adminSurveyResponse {
	activities := make(map[string]activityDetail, len(survey.Activities))
	for name, detail := range survey.Activities {
		activities[name] = activityDetail{
			Description:      detail.Description,
			TargetPopulation: detail.TargetPopulation,
			Coverage:         detail.Coverage,
		}
	}
	return adminSurveyResponse{
		ID:               survey.ID,
		Status:           survey.Status,
		OrganisationName: survey.Organisation.Name,
		Region:           survey.Organisation.Region.String(),
		Sector:           survey.Organisation.Sector.String(),
		ContactPerson:    survey.Organisation.ContactPerson,
		ContactEmail:     survey.Organisation.ContactEmail.String(),
		ContactPhone:     survey.Organisation.ContactPhone,
		ProjectName:      survey.Project.Name,
		Description:      survey.Project.Description,
		StartDate:        survey.Project.StartDate,
		EndDate:          survey.Project.EndDate,
		TargetedNCDs:     survey.Project.TargetedNCDs.Strings(),
		FundingSource:    survey.Project.FundingSource.String(),
		NCDActivities:    activities,
		SubmissionDate:   survey.SubmissionDate,
		SubmittedBy:      survey.CreatedBy.DisplayName,
	}
}
