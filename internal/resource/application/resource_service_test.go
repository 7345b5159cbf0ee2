package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncd-navigator/resource-mobilization/api/internal/resource/domain"
)

type fakeResourceRepo struct {
	byID       map[string]*domain.Resource
	increments map[string]int
	incErr     error
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{
		byID:       make(map[string]*domain.Resource),
		increments: make(map[string]int),
	}
}

func (f *fakeResourceRepo) List(_ context.Context, category string) ([]domain.Resource, error) {
	resources := make([]domain.Resource, 0, len(f.byID))
	for _, r := range f.byID {
		if category == "" || r.Category == category {
			resources = append(resources, *r)
		}
	}
	return resources, nil
}

func (f *fakeResourceRepo) FindByID(_ context.Context, id string) (*domain.Resource, error) {
	resource, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *resource
	return &clone, nil
}

func (f *fakeResourceRepo) Insert(_ context.Context, resource *domain.Resource) error {
	stored := *resource
	f.byID[resource.ID] = &stored
	return nil
}

func (f *fakeResourceRepo) Update(_ context.Context, resource *domain.Resource) error {
	if _, ok := f.byID[resource.ID]; !ok {
		return ErrNotFound
	}
	stored := *resource
	f.byID[resource.ID] = &stored
	return nil
}

func (f *fakeResourceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeResourceRepo) IncrementDownloads(_ context.Context, id string) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.increments[id]++
	return nil
}

func TestCreateResource_AssignsIDAndTrimsFields(t *testing.T) {
	svc := NewService(newFakeResourceRepo(), "https://media.example.org")

	resource, err := svc.Create(context.Background(), UpsertResourceCommand{
		Title:      "  National NCD Policy  ",
		StoredPath: "resources/policy.pdf",
		FileName:   "policy.pdf",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resource.ID)
	assert.Equal(t, "National NCD Policy", resource.Title)
}

func TestCreateResource_RequiresTitleAndStoredPath(t *testing.T) {
	svc := NewService(newFakeResourceRepo(), "https://media.example.org")

	_, err := svc.Create(context.Background(), UpsertResourceCommand{StoredPath: "resources/a.pdf"})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), UpsertResourceCommand{Title: "Guide"})
	assert.Error(t, err)
}

func TestDownloadURL_JoinsBaseAndRecordsDownload(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := NewService(repo, "https://media.example.org/")

	resource, err := svc.Create(context.Background(), UpsertResourceCommand{
		Title:      "Survey Guide",
		StoredPath: "/resources/guide.pdf",
	})
	require.NoError(t, err)

	url, err := svc.DownloadURL(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.org/resources/guide.pdf", url)
	assert.Equal(t, 1, repo.increments[resource.ID])
}

func TestDownloadURL_IncrementFailureDoesNotBlockDownload(t *testing.T) {
	repo := newFakeResourceRepo()
	svc := NewService(repo, "https://media.example.org")

	resource, err := svc.Create(context.Background(), UpsertResourceCommand{
		Title:      "Survey Guide",
		StoredPath: "resources/guide.pdf",
	})
	require.NoError(t, err)

	repo.incErr = assert.AnError
	url, err := svc.DownloadURL(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestDownloadURL_MissingResourceIsNotFound(t *testing.T) {
	svc := NewService(newFakeResourceRepo(), "https://media.example.org")

	_, err := svc.DownloadURL(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
