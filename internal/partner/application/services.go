package application

import (
	"context"

	"github.com/ncd-navigator/resource-mobilization/api/internal/cache"
	"github.com/ncd-navigator/resource-mobilization/api/internal/drafts"
	"github.com/ncd-navigator/resource-mobilization/api/internal/partner/domain"
)

// ErrAuthenticationRequired mirrors the drafts sentinel; the partner-mapping
// workflow uses the same value as the survey workflow.
var ErrAuthenticationRequired = drafts.ErrAuthenticationRequired

// MappingRepository persists finalized partner-mapping records.
type MappingRepository interface {
	Insert(ctx context.Context, record *domain.MappingRecord) error
	FindByUser(ctx context.Context, userID string) ([]domain.MappingRecord, error)
}

// Invalidator lets write paths flush caches derived from submitted records.
type Invalidator interface {
	Invalidate(tags ...cache.Tag)
}

// MappingCommandService handles partner-mapping submission use-cases.
type MappingCommandService interface {
	Submit(ctx context.Context, cmd SubmitMappingCommand) (string, error)
	// Finalize composes Submit with the compensating draft discard; the two
	// steps are not atomic.
	Finalize(ctx context.Context, cmd SubmitMappingCommand) (string, error)
	ListForUser(ctx context.Context, userID string) ([]domain.MappingRecord, error)
}

// SubmitMappingCommand carries one reporting cycle's raw entries.
type SubmitMappingCommand struct {
	UserID  string
	Entries []EntryInput
}

// EntryInput mirrors a single partner-mapping form row.
type EntryInput struct {
	Year         int
	WorkNature   string
	Organization string
	ProjectName  string
	Region       string
	District     string
	Disease      string
	PartnerName  string
	PartnerRole  string
}
