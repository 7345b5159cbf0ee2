package domain

import "time"

// StatusSubmitted marks a finalized, immutable survey record.
const StatusSubmitted = "submitted"

// Survey represents one completed organisational survey. Records are
// immutable once created; SubmissionDate is the canonical time axis for
// every trend aggregation.
type Survey struct {
	ID             string
	Status         string
	Organisation   OrganisationInfo
	Project        ProjectInfo
	Activities     map[string]ActivityDetail
	SubmissionDate time.Time
	CreatedBy      Submitter
}

// OrganisationInfo captures the submitting organisation.
type OrganisationInfo struct {
	Name          string
	Region        Region
	Sector        Sector
	ContactPerson string
	ContactEmail  Email
	ContactPhone  string
}

// ProjectInfo captures the NCD project reported by the survey.
type ProjectInfo struct {
	Name            string
	Description     string
	StartDate       *time.Time
	EndDate         *time.Time
	TargetedNCDs    DiseaseList
	FundingSource   FundingSource
	NCDSpecificInfo map[string]string
}

// ActivityDetail describes the project activities for a single NCD.
type ActivityDetail struct {
	Description      string
	TargetPopulation string
	Coverage         string
}

// Submitter references the authenticated user who finalized the survey.
type Submitter struct {
	UserID      string
	DisplayName string
}
