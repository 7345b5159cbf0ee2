package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	"github.com/ncd-navigator/resource-mobilization/api/internal/partner/domain"
	surveydomain "github.com/ncd-navigator/resource-mobilization/api/internal/survey/domain"
)

type mappingCommandService struct {
	repo        MappingRepository
	drafts      drafts.Repository
	invalidator Invalidator
}

// NewMappingCommandService constructs the partner-mapping submission use-cases.
func NewMappingCommandService(repo MappingRepository, draftRepo drafts.Repository, invalidator Invalidator) MappingCommandService {
	return &mappingCommandService{repo: repo, drafts: draftRepo, invalidator: invalidator}
}

// Submit validates every entry through the domain constructors and persists
// one immutable record carrying all of them.
func (s *mappingCommandService) Submit(ctx context.Context, cmd SubmitMappingCommand) (string, error) {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return "", ErrAuthenticationRequired
	}
	if len(cmd.Entries) == 0 {
		return "", errors.New("at least one partner-mapping entry is required")
	}

	entries := make([]domain.Entry, 0, len(cmd.Entries))
	for i, input := range cmd.Entries {
		entry, err := buildEntryFromInput(input)
		if err != nil {
			return "", fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	now := time.Now().UTC()
	record := &domain.MappingRecord{
		UserID:    userID,
		Entries:   entries,
		Status:    domain.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return "", err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(cache.TagSubmissions, cache.TagStats)
	}
	return record.ID, nil
}

// Finalize submits and then discards the user's draft as a compensating
// action. A discard failure leaves the submission in place.
func (s *mappingCommandService) Finalize(ctx context.Context, cmd SubmitMappingCommand) (string, error) {
	id, err := s.Submit(ctx, cmd)
	if err != nil {
		return "", err
	}
	if _, err := s.drafts.DeleteAllForUser(ctx, cmd.UserID); err != nil {
		return id, fmt.Errorf("partner mapping %s submitted but draft discard failed: %w", id, err)
	}
	return id, nil
}

func (s *mappingCommandService) ListForUser(ctx context.Context, userID string) ([]domain.MappingRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}
	return s.repo.FindByUser(ctx, userID)
}

func buildEntryFromInput(input EntryInput) (domain.Entry, error) {
	year, err := domain.NewYear(input.Year)
	if err != nil {
		return domain.Entry{}, err
	}
	workNature, err := domain.NewWorkNature(input.WorkNature)
	if err != nil {
		return domain.Entry{}, err
	}
	region, err := surveydomain.NewRegion(input.Region)
	if err != nil {
		return domain.Entry{}, err
	}
	disease, err := surveydomain.NewDisease(input.Disease)
	if err != nil {
		return domain.Entry{}, err
	}
	role, err := domain.NewPartnerRole(input.PartnerRole)
	if err != nil {
		return domain.Entry{}, err
	}

	organization := strings.TrimSpace(input.Organization)
	if organization == "" {
		return domain.Entry{}, errors.New("organization is required")
	}
	partnerName := strings.TrimSpace(input.PartnerName)
	if partnerName == "" {
		return domain.Entry{}, errors.New("partner name is required")
	}

	return domain.Entry{
		ID:           uuid.NewString(),
		Year:         year,
		WorkNature:   workNature,
		Organization: organization,
		ProjectName:  strings.TrimSpace(input.ProjectName),
		Region:       region,
		District:     strings.TrimSpace(input.District),
		Disease:      disease,
		PartnerName:  partnerName,
		PartnerRole:  role,
	}, nil
}
