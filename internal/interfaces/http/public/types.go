package public

import "time"

type saveDraftRequest struct {
	FormData    map[string]any `json:"formData"`
	CurrentStep int            `json:"currentStep"`
}

type draftPayload struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	FormData    map[string]any `json:"formData"`
	CurrentStep int            `json:"currentStep"`
	CreatedAt   time.Time      `json:"createdAt"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

type draftResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Draft   *draftPayload `json:"draft,omitempty"`
}

type submitSurveyRequest struct {
	OrganisationInfo  organisationInfoPayload  `json:"organisationInfo" validate:"required"`
	ProjectInfo       projectInfoPayload       `json:"projectInfo" validate:"required"`
	ProjectActivities projectActivitiesPayload `json:"projectActivities"`
}

type organisationInfoPayload struct {
	OrganisationName string `json:"organisationName" validate:"required"`
	Region           string `json:"region" validate:"required"`
	Sector           string `json:"sector" validate:"required"`
	ContactPerson    string `json:"contactPerson"`
	ContactEmail     string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone     string `json:"contactPhone"`
}

type projectInfoPayload struct {
	ProjectName     string            `json:"projectName" validate:"required"`
	Description     string            `json:"description"`
	StartDate       string            `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string            `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	TargetedNCDs    []string          `json:"targetedNCDs" validate:"required,min=1"`
	FundingSource   string            `json:"fundingSource"`
	NCDSpecificInfo map[string]string `json:"ncdSpecificInfo"`
}

type projectActivitiesPayload struct {
	NCDActivities map[string]activityPayload `json:"ncdActivities"`
}

type activityPayload struct {
	Description      string `json:"description"`
	TargetPopulation string `json:"targetPopulation"`
	Coverage         string `json:"coverage"`
}

type submitSurveyResponse struct {
	Success  bool                `json:"success"`
	SurveyID string              `json:"surveyId,omitempty"`
	Message  string              `json:"message,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

type submitMappingRequest struct {
	PartnerMappings []mappingEntryPayload `json:"partnerMappings" validate:"required,min=1,dive"`
}

type mappingEntryPayload struct {
	Year         int    `json:"year" validate:"required"`
	WorkNature   string `json:"workNature" validate:"required"`
	Organization string `json:"organization" validate:"required"`
	ProjectName  string `json:"projectName"`
	Region       string `json:"region" validate:"required"`
	District     string `json:"district"`
	Disease      string `json:"disease" validate:"required"`
	PartnerName  string `json:"partnerName" validate:"required"`
	PartnerRole  string `json:"partnerRole" validate:"required"`
}

type submitMappingResponse struct {
	Success   bool                `json:"success"`
	MappingID string              `json:"mappingId,omitempty"`
	Message   string              `json:"message,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

type mappingRecordResponse struct {
	ID        string                 `json:"id"`
	Status    string                 `json:"status"`
	Entries   []mappingEntryResponse `json:"entries"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type mappingEntryResponse struct {
	ID           string `json:"id"`
	Year         int    `json:"year"`
	WorkNature   string `json:"workNature"`
	Organization string `json:"organization"`
	ProjectName  string `json:"projectName,omitempty"`
	Region       string `json:"region"`
	District     string `json:"district,omitempty"`
	Disease      string `json:"disease"`
	PartnerName  string `json:"partnerName"`
	PartnerRole  string `json:"partnerRole"`
}

type refreshRequest struct {
	Action string `json:"action"`
}

type dashboardResponse struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message,omitempty"`
	Stats          dashboardStatsPayload  `json:"stats"`
	RecentActivity []activityItemResponse `json:"recentActivity,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`
}

type dashboardStatsPayload struct {
	TotalSurveys      int                   `json:"totalSurveys"`
	TotalDrafts       int                   `json:"totalDrafts"`
	TotalUsers        int                   `json:"totalUsers"`
	RecentSubmissions int                   `json:"recentSubmissions"`
	RecentActivity    int                   `json:"recentActivity"`
	CompletionRate    int                   `json:"completionRate"`
	ActivePartners    int                   `json:"activePartners"`
	RegionsCovered    int                   `json:"regionsCovered"`
	NCDsCovered       int                   `json:"ncdsCovered"`
	TopRegions        []regionCountResponse `json:"topRegions"`
	TopSectors        []sectorCountResponse `json:"topSectors"`
	MonthlyTrends     []monthBucketResponse `json:"monthlyTrends"`
}

type regionCountResponse struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

type sectorCountResponse struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

type monthBucketResponse struct {
	Month   string `json:"month"`
	Year    int    `json:"year"`
	Surveys int    `json:"surveys"`
	Drafts  int    `json:"drafts"`
}

type activityItemResponse struct {
	OrganisationName string    `json:"organisationName"`
	ProjectName      string    `json:"projectName"`
	Region           string    `json:"region"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	SubmissionDate   time.Time `json:"submissionDate"`
}

type quickStatsResponse struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message,omitempty"`
	TotalSurveys   int       `json:"totalSurveys"`
	TotalDrafts    int       `json:"totalDrafts"`
	TotalUsers     int       `json:"totalUsers"`
	RecentActivity int       `json:"recentActivity"`
	CompletionRate int       `json:"completionRate"`
	Timestamp      time.Time `json:"timestamp"`
}

type resourceResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	FileName      string    `json:"fileName"`
	ContentType   string    `json:"contentType,omitempty"`
	SizeBytes     int64     `json:"sizeBytes"`
	DownloadCount int       `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type resourceListResponse struct {
	Success   bool               `json:"success"`
	Resources []resourceResponse `json:"resources"`
}

type resourceDownloadResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl"`
}
