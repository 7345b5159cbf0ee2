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
	"github.com/ncd-navigator/resource-mobilization/api/internal/partner/domain"
)

type fakeMappingRepo struct {
	inserted []*domain.MappingRecord
}

func (f *fakeMappingRepo) Insert(_ context.Context, record *domain.MappingRecord) error {
	record.ID = "mapping-1"
	f.inserted = append(f.inserted, record)
	return nil
}

func (f *fakeMappingRepo) FindByUser(context.Context, string) ([]domain.MappingRecord, error) {
	records := make([]domain.MappingRecord, 0, len(f.inserted))
	for _, r := range f.inserted {
		records = append(records, *r)
	}
	return records, nil
}

type fakeDraftRepo struct {
	deleted int
}

func (f *fakeDraftRepo) FindLatestByUser(context.Context, string) (*drafts.Draft, error) {
	return nil, drafts.ErrNotFound
}

func (f *fakeDraftRepo) Upsert(context.Context, string, map[string]any, int, time.Time) (*drafts.Draft, error) {
	return nil, errors.New("not used")
}

func (f *fakeDraftRepo) DeleteAllForUser(context.Context, string) (int64, error) {
	f.deleted++
	return 1, nil
}

type fakeInvalidator struct {
	tags []cache.Tag
}

func (f *fakeInvalidator) Invalidate(tags ...cache.Tag) {
	f.tags = append(f.tags, tags...)
}

func validEntry() EntryInput {
	return EntryInput{
		Year:         2023,
		WorkNature:   "Service Delivery",
		Organization: "Regional Health Directorate",
		Region:       "Ashanti",
		Disease:      "Diabetes",
		PartnerName:  "Local NGO",
		PartnerRole:  "Implementer",
	}
}

func TestSubmitMapping_PersistsEntriesWithGeneratedIDs(t *testing.T) {
	repo := &fakeMappingRepo{}
	invalidator := &fakeInvalidator{}
	svc := NewMappingCommandService(repo, &fakeDraftRepo{}, invalidator)

	id, err := svc.Submit(context.Background(), SubmitMappingCommand{
		UserID:  "user-1",
		Entries: []EntryInput{validEntry(), validEntry()},
	})
	require.NoError(t, err)
	assert.Equal(t, "mapping-1", id)

	require.Len(t, repo.inserted, 1)
	record := repo.inserted[0]
	assert.Equal(t, domain.StatusSubmitted, record.Status)
	require.Len(t, record.Entries, 2)
	assert.NotEmpty(t, record.Entries[0].ID)
	assert.NotEqual(t, record.Entries[0].ID, record.Entries[1].ID)

	assert.Contains(t, invalidator.tags, cache.TagSubmissions)
}

func TestSubmitMapping_RejectsZeroEntriesWithoutPersisting(t *testing.T) {
	repo := &fakeMappingRepo{}
	svc := NewMappingCommandService(repo, &fakeDraftRepo{}, nil)

	_, err := svc.Submit(context.Background(), SubmitMappingCommand{UserID: "user-1"})
	assert.Error(t, err)
	assert.Empty(t, repo.inserted)
}

func TestSubmitMapping_ReportsFailingEntryIndex(t *testing.T) {
	svc := NewMappingCommandService(&fakeMappingRepo{}, &fakeDraftRepo{}, nil)

	bad := validEntry()
	bad.Year = 1999
	_, err := svc.Submit(context.Background(), SubmitMappingCommand{
		UserID:  "user-1",
		Entries: []EntryInput{validEntry(), bad},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 2")
}

func TestFinalizeMapping_DiscardsDraft(t *testing.T) {
	draftRepo := &fakeDraftRepo{}
	svc := NewMappingCommandService(&fakeMappingRepo{}, draftRepo, nil)

	_, err := svc.Finalize(context.Background(), SubmitMappingCommand{
		UserID:  "user-1",
		Entries: []EntryInput{validEntry()},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, draftRepo.deleted)
}

func TestListForUser_RequiresUserID(t *testing.T) {
	svc := NewMappingCommandService(&fakeMappingRepo{}, &fakeDraftRepo{}, nil)

	_, err := svc.ListForUser(context.Background(), " ")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}
