// Package drafts implements the server-persisted draft workflow shared by
// the survey and partner-mapping form families: at most one in-progress
// form per user per family, surviving reloads and devices.
package drafts

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrAuthenticationRequired is returned before any persistence attempt
	// when the user identity cannot be resolved.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrNotFound marks the absence of a draft for the user. It is a normal
	// outcome for lookups, not a server error.
	ErrNotFound = errors.New("no draft found")
)

// Draft is the mutable per-user scratch copy of in-progress form state.
// FormData deliberately stays untyped until final submission.
type Draft struct {
	ID          string
	UserID      string
	FormData    map[string]any
	CurrentStep int
	CreatedAt   time.Time
	LastUpdated time.Time
}

// Repository persists draft documents for one form family.
type Repository interface {
	FindLatestByUser(ctx context.Context, userID string) (*Draft, error)
	Upsert(ctx context.Context, userID string, formData map[string]any, currentStep int, now time.Time) (*Draft, error)
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
}

// Service describes the draft save/load/discard use-cases.
type Service interface {
	Save(ctx context.Context, userID string, formData map[string]any, currentStep int) (*Draft, error)
	Load(ctx context.Context, userID string) (*Draft, error)
	Discard(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

// NewService constructs draft use-cases on top of repo.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Save upserts the user's draft. Repeated calls are last-write-wins on the
// single document keyed by userId.
func (s *service) Save(ctx context.Context, userID string, formData map[string]any, currentStep int) (*Draft, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}
	if formData == nil {
		formData = map[string]any{}
	}
	if currentStep < 0 {
		currentStep = 0
	}
	return s.repo.Upsert(ctx, userID, formData, currentStep, time.Now().UTC())
}

func (s *service) Load(ctx context.Context, userID string) (*Draft, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrAuthenticationRequired
	}
	return s.repo.FindLatestByUser(ctx, userID)
}

// Discard removes every draft document for the user. Delete-many rather than
// delete-one so any accidental duplicate state self-heals.
func (s *service) Discard(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrAuthenticationRequired
	}
	_, err := s.repo.DeleteAllForUser(ctx, userID)
	return err
}
