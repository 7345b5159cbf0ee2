package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps at most one draft per user, mirroring the upsert
// semantics of the Mongo implementation.
type fakeRepository struct {
	byUser  map[string]*Draft
	deletes int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byUser: make(map[string]*Draft)}
}

func (f *fakeRepository) FindLatestByUser(_ context.Context, userID string) (*Draft, error) {
	draft, ok := f.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return draft, nil
}

func (f *fakeRepository) Upsert(_ context.Context, userID string, formData map[string]any, currentStep int, now time.Time) (*Draft, error) {
	draft, ok := f.byUser[userID]
	if !ok {
		draft = &Draft{ID: "draft-" + userID, UserID: userID, CreatedAt: now}
		f.byUser[userID] = draft
	}
	draft.FormData = formData
	draft.CurrentStep = currentStep
	draft.LastUpdated = now
	return draft, nil
}

func (f *fakeRepository) DeleteAllForUser(_ context.Context, userID string) (int64, error) {
	f.deletes++
	if _, ok := f.byUser[userID]; !ok {
		return 0, nil
	}
	delete(f.byUser, userID)
	return 1, nil
}

func TestSave_RepeatedSavesKeepSingleDraft(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Save(context.Background(), "user-1", map[string]any{"step": "one"}, 1)
	require.NoError(t, err)
	draft, err := svc.Save(context.Background(), "user-1", map[string]any{"step": "two"}, 2)
	require.NoError(t, err)

	assert.Len(t, repo.byUser, 1)
	assert.Equal(t, "two", draft.FormData["step"])
	assert.Equal(t, 2, draft.CurrentStep)
}

func TestSave_RequiresUserID(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Save(context.Background(), "   ", map[string]any{}, 0)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestSave_NormalizesNilFormDataAndNegativeStep(t *testing.T) {
	svc := NewService(newFakeRepository())

	draft, err := svc.Save(context.Background(), "user-1", nil, -3)
	require.NoError(t, err)
	assert.NotNil(t, draft.FormData)
	assert.Equal(t, 0, draft.CurrentStep)
}

func TestLoad_MissingDraftReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Load(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiscard_MissingDraftSucceeds(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	err := svc.Discard(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.deletes)
}
