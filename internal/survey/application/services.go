package application

import (
	"context"
	"time"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	"github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
)

// ErrAuthenticationRequired mirrors the drafts sentinel so submission
// callers branch on a single error value across the form workflow.
var ErrAuthenticationRequired = drafts.ErrAuthenticationRequired

// SurveyRepository persists finalized survey records.
type SurveyRepository interface {
	Insert(ctx context.Context, survey *domain.Survey) error
}

// Invalidator lets write paths flush caches derived from submitted records
// without knowing individual cache keys.
type Invalidator interface {
	Invalidate(tags ...cache.Tag)
}

// SurveyCommandService turns a completed form payload into an immutable record.
type SurveyCommandService interface {
	Submit(ctx context.Context, cmd SubmitSurveyCommand) (string, error)
	// Finalize composes Submit with the compensating draft discard. The two
	// steps are not atomic; a failure after the insert leaves the draft in
	// place and is reported through the returned error.
	Finalize(ctx context.Context, cmd SubmitSurveyCommand) (string, error)
}

// SubmitSurveyCommand carries the raw, client-assembled survey payload.
type SubmitSurveyCommand struct {
	UserID          string
	UserDisplayName string
	Organisation    OrganisationInput
	Project         ProjectInput
	Activities      map[string]ActivityInput
}

// OrganisationInput mirrors the organisation-info form step.
type OrganisationInput struct {
	Name          string
	Region        string
	Sector        string
	ContactPerson string
	ContactEmail  string
	ContactPhone  string
}

// ProjectInput mirrors the project-info form step.
type ProjectInput struct {
	Name            string
	Description     string
	StartDate       *time.Time
	EndDate         *time.Time
	TargetedNCDs    []string
	FundingSource   string
	NCDSpecificInfo map[string]string
}

// ActivityInput mirrors one NCD's project-activities form step.
type ActivityInput struct {
	Description      string
	TargetPopulation string
	Coverage         string
}
