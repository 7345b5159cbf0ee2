package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	"github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
)

type fakeSurveyRepo struct {
	inserted []*domain.Survey
	err      error
}

func (f *fakeSurveyRepo) Insert(_ context.Context, survey *domain.Survey) error {
	if f.err != nil {
		return f.err
	}
	survey.ID = "survey-1"
	f.inserted = append(f.inserted, survey)
	return nil
}

type fakeDraftRepo struct {
	deleted   int
	deleteErr error
}

func (f *fakeDraftRepo) FindLatestByUser(context.Context, string) (*drafts.Draft, error) {
	return nil, drafts.ErrNotFound
}

func (f *fakeDraftRepo) Upsert(context.Context, string, map[string]any, int, time.Time) (*drafts.Draft, error) {
	return nil, errors.New("not used")
}

func (f *fakeDraftRepo) DeleteAllForUser(context.Context, string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deleted++
	return 1, nil
}

type fakeInvalidator struct {
	tags []cache.Tag
}

func (f *fakeInvalidator) Invalidate(tags ...cache.Tag) {
	f.tags = append(f.tags, tags...)
}

func validCommand() SubmitSurveyCommand {
	return SubmitSurveyCommand{
		UserID:          "user-1",
		UserDisplayName: "Programme Officer",
		Organisation: OrganisationInput{
			Name:         "Ghana Health Service",
			Region:       "ashanti",
			Sector:       "Government",
			ContactEmail: "officer@ghs.gov.gh",
		},
		Project: ProjectInput{
			Name:         "Hypertension screening",
			TargetedNCDs: []string{"Hypertension", " hypertension ", "Diabetes"},
		},
		Activities: map[string]ActivityInput{
			"Hypertension": {Description: "Community screening"},
		},
	}
}

func TestSubmit_PersistsNormalizedRecordAndInvalidatesCache(t *testing.T) {
	repo := &fakeSurveyRepo{}
	invalidator := &fakeInvalidator{}
	svc := NewSurveyCommandService(repo, &fakeDraftRepo{}, invalidator)

	id, err := svc.Submit(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, "survey-1", id)

	require.Len(t, repo.inserted, 1)
	record := repo.inserted[0]
	assert.Equal(t, domain.StatusSubmitted, record.Status)
	assert.Equal(t, "Ashanti", record.Organisation.Region.String())
	assert.Equal(t, []string{"Hypertension", "Diabetes"}, record.Project.TargetedNCDs.Strings())
	assert.False(t, record.SubmissionDate.IsZero())

	assert.Contains(t, invalidator.tags, cache.TagSubmissions)
	assert.Contains(t, invalidator.tags, cache.TagStats)
}

func TestSubmit_RequiresAuthenticatedUser(t *testing.T) {
	svc := NewSurveyCommandService(&fakeSurveyRepo{}, &fakeDraftRepo{}, nil)

	cmd := validCommand()
	cmd.UserID = "  "
	_, err := svc.Submit(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestSubmit_RejectsInvalidPayloadBeforePersisting(t *testing.T) {
	repo := &fakeSurveyRepo{}
	svc := NewSurveyCommandService(repo, &fakeDraftRepo{}, nil)

	cmd := validCommand()
	cmd.Project.TargetedNCDs = nil
	_, err := svc.Submit(context.Background(), cmd)
	assert.Error(t, err)
	assert.Empty(t, repo.inserted, "validation failures must not touch the store")
}

func TestSubmit_RejectsEndDateBeforeStartDate(t *testing.T) {
	svc := NewSurveyCommandService(&fakeSurveyRepo{}, &fakeDraftRepo{}, nil)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, -1, 0)
	cmd := validCommand()
	cmd.Project.StartDate = &start
	cmd.Project.EndDate = &end
	_, err := svc.Submit(context.Background(), cmd)
	assert.Error(t, err)
}

func TestFinalize_DiscardsDraftAfterSubmit(t *testing.T) {
	draftRepo := &fakeDraftRepo{}
	svc := NewSurveyCommandService(&fakeSurveyRepo{}, draftRepo, nil)

	id, err := svc.Finalize(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, "survey-1", id)
	assert.Equal(t, 1, draftRepo.deleted)
}

func TestFinalize_ReportsOrphanedDraftButKeepsSubmission(t *testing.T) {
	draftRepo := &fakeDraftRepo{deleteErr: errors.New("connection reset")}
	repo := &fakeSurveyRepo{}
	svc := NewSurveyCommandService(repo, draftRepo, nil)

	id, err := svc.Finalize(context.Background(), validCommand())
	assert.Error(t, err)
	assert.Equal(t, "survey-1", id, "the submitted id is returned even when the discard fails")
	assert.Len(t, repo.inserted, 1)
}
