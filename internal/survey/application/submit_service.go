package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	"github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
)

type surveyCommandService struct {
	repo        SurveyRepository
	drafts      drafts.Repository
	invalidator Invalidator
}

// NewSurveyCommandService constructs the survey submission use-cases.
func NewSurveyCommandService(repo SurveyRepository, draftRepo drafts.Repository, invalidator Invalidator) SurveyCommandService {
	return &surveyCommandService{repo: repo, drafts: draftRepo, invalidator: invalidator}
}

// Submit validates the payload through the domain constructors, persists one
// immutable record and returns its identifier. The caller remains
// responsible for draft discard; see Finalize for the composed workflow.
func (s *surveyCommandService) Submit(ctx context.Context, cmd SubmitSurveyCommand) (string, error) {
	if strings.TrimSpace(cmd.UserID) == "" {
		return "", ErrAuthenticationRequired
	}

	survey, err := buildSurveyFromCommand(cmd)
	if err != nil {
		return "", err
	}

	if err := s.repo.Insert(ctx, survey); err != nil {
		return "", err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(cache.TagSubmissions, cache.TagStats)
	}
	return survey.ID, nil
}

// Finalize submits and then discards the user's draft. The discard is a
// compensating action, not a transaction: when it fails the submission
// stands and the error reports the orphaned draft.
func (s *surveyCommandService) Finalize(ctx context.Context, cmd SubmitSurveyCommand) (string, error) {
	id, err := s.Submit(ctx, cmd)
	if err != nil {
		return "", err
	}
	if _, err := s.drafts.DeleteAllForUser(ctx, cmd.UserID); err != nil {
		return id, fmt.Errorf("survey %s submitted but draft discard failed: %w", id, err)
	}
	return id, nil
}

func buildSurveyFromCommand(cmd SubmitSurveyCommand) (*domain.Survey, error) {
	region, err := domain.NewRegion(cmd.Organisation.Region)
	if err != nil {
		return nil, err
	}
	sector, err := domain.NewSector(cmd.Organisation.Sector)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(cmd.Organisation.ContactEmail)
	if err != nil {
		return nil, err
	}
	targeted, err := domain.NewDiseaseList(cmd.Project.TargetedNCDs)
	if err != nil {
		return nil, err
	}
	var funding domain.FundingSource
	if strings.TrimSpace(cmd.Project.FundingSource) != "" {
		funding, err = domain.NewFundingSource(cmd.Project.FundingSource)
		if err != nil {
			return nil, err
		}
	}

	orgName := strings.TrimSpace(cmd.Organisation.Name)
	if orgName == "" {
		return nil, errors.New("organisation name is required")
	}
	projectName := strings.TrimSpace(cmd.Project.Name)
	if projectName == "" {
		return nil, errors.New("project name is required")
	}
	if cmd.Project.StartDate != nil && cmd.Project.EndDate != nil && cmd.Project.EndDate.Before(*cmd.Project.StartDate) {
		return nil, errors.New("project end date precedes start date")
	}

	activities := make(map[string]domain.ActivityDetail, len(cmd.Activities))
	for name, input := range cmd.Activities {
		disease, err := domain.NewDisease(name)
		if err != nil {
			return nil, err
		}
		activities[disease.String()] = domain.ActivityDetail{
			Description:      strings.TrimSpace(input.Description),
			TargetPopulation: strings.TrimSpace(input.TargetPopulation),
			Coverage:         strings.TrimSpace(input.Coverage),
		}
	}

	return &domain.Survey{
		Status: domain.StatusSubmitted,
		Organisation: domain.OrganisationInfo{
			Name:          orgName,
			Region:        region,
			Sector:        sector,
			ContactPerson: strings.TrimSpace(cmd.Organisation.ContactPerson),
			ContactEmail:  email,
			ContactPhone:  strings.TrimSpace(cmd.Organisation.ContactPhone),
		},
		Project: domain.ProjectInfo{
			Name:            projectName,
			Description:     strings.TrimSpace(cmd.Project.Description),
			StartDate:       cmd.Project.StartDate,
			EndDate:         cmd.Project.EndDate,
			TargetedNCDs:    targeted,
			FundingSource:   funding,
			NCDSpecificInfo: cmd.Project.NCDSpecificInfo,
		},
		Activities:     activities,
		SubmissionDate: time.Now().UTC(),
		CreatedBy: domain.Submitter{
			UserID:      strings.TrimSpace(cmd.UserID),
			DisplayName: strings.TrimSpace(cmd.UserDisplayName),
		},
	}, nil
}
