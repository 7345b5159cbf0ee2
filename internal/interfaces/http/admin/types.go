package admin

import "time"

type createUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	DisplayName  string `json:"displayName" validate:"required"`
	Organisation string `json:"organisation"`
	Role         string `json:"role" validate:"omitempty,oneof=admin contributor"`
	Password     string `json:"password" validate:"required,min=8"`
}

type updateUserRequest struct {
	DisplayName  *string `json:"displayName"`
	Organisation *string `json:"organisation"`
	Role         *string `json:"role" validate:"omitempty,oneof=admin contributor"`
	Password     *string `json:"password" validate:"omitempty,min=8"`
}

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	Organisation string    `json:"organisation,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type userListResponse struct {
	Items []userResponse `json:"items"`
}

type upsertResourceRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	FileName    string `json:"fileName" validate:"required"`
	StoredPath  string `json:"storedPath" validate:"required"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes" validate:"gte=0"`
}

type adminResourceResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	FileName      string    `json:"fileName"`
	StoredPath    string    `json:"storedPath"`
	ContentType   string    `json:"contentType,omitempty"`
	SizeBytes     int64     `json:"sizeBytes"`
	DownloadCount int       `json:"downloadCount"`
	UploadedBy    string    `json:"uploadedBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type adminSurveyResponse struct {
	ID               string                    `json:"id"`
	Status           string                    `json:"status"`
	OrganisationName string                    `json:"organisationName"`
	Region           string                    `json:"region"`
	Sector           string                    `json:"sector"`
	ContactPerson    string                    `json:"contactPerson,omitempty"`
	ContactEmail     string                    `json:"contactEmail,omitempty"`
	ContactPhone     string                    `json:"contactPhone,omitempty"`
	ProjectName      string                    `json:"projectName"`
	Description      string                    `json:"description,omitempty"`
	StartDate        *time.Time                `json:"startDate,omitempty"`
	EndDate          *time.Time                `json:"endDate,omitempty"`
	TargetedNCDs     []string                  `json:"targetedNCDs"`
	FundingSource    string                    `json:"fundingSource,omitempty"`
	NCDActivities    map[string]activityDetail `json:"ncdActivities,omitempty"`
	SubmissionDate   time.Time                 `json:"submissionDate"`
	SubmittedBy      string                    `json:"submittedBy,omitempty"`
}

type activityDetail struct {
	Description      string `json:"description,omitempty"`
	TargetPopulation string `json:"targetPopulation,omitempty"`
	Coverage         string `json:"coverage,omitempty"`
}

type adminSurveyListResponse struct {
	Items []adminSurveyResponse `json:"items"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

type adminStatsResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Stats     adminStatsPayload `json:"stats"`
	Timestamp time.Time         `json:"timestamp"`
}

type adminStatsPayload struct {
	TotalSurveys      int            `json:"totalSurveys"`
	TotalDrafts       int            `json:"totalDrafts"`
	TotalUsers        int            `json:"totalUsers"`
	RecentSubmissions int            `json:"recentSubmissions"`
	RecentActivity    int            `json:"recentActivity"`
	CompletionRate    int            `json:"completionRate"`
	ActivePartners    int            `json:"activePartners"`
	RegionsCovered    int            `json:"regionsCovered"`
	NCDsCovered       int            `json:"ncdsCovered"`
	TopRegions        []regionCount  `json:"topRegions"`
	TopSectors        []sectorCount  `json:"topSectors"`
	MonthlyTrends     []monthlyTrend `json:"monthlyTrends"`
}

type regionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

type sectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

type monthlyTrend struct {
	Month   string `json:"month"`
	Year    int    `json:"year"`
	Surveys int    `json:"surveys"`
	Drafts  int    `json:"drafts"`
}
