package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ncd-navigator/resource-mobilization/api/internal/resource/domain"
)

// ErrNotFound marks a missing resource; the HTTP layer maps it to a genuine
// 404, unlike draft lookups.
var ErrNotFound = errors.New("resource not found")

// Repository persists resource metadata.
type Repository interface {
	List(ctx context.Context, category string) ([]domain.Resource, error)
	FindByID(ctx context.Context, id string) (*domain.Resource, error)
	Insert(ctx context.Context, resource *domain.Resource) error
	Update(ctx context.Context, resource *domain.Resource) error
	Delete(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
}

// UpsertResourceCommand carries admin input for resource metadata.
type UpsertResourceCommand struct {
	Title       string
	Description string
	Category    string
	FileName    string
	StoredPath  string
	ContentType string
	SizeBytes   int64
	UploadedBy  string
}

// Service describes the resource-file use-cases.
type Service interface {
	List(ctx context.Context, category string) ([]domain.Resource, error)
	Detail(ctx context.Context, id string) (*domain.Resource, error)
	// DownloadURL resolves the public URL for a resource and records the
	// download. The count bump is best-effort; a failed increment does not
	// block the download.
	DownloadURL(ctx context.Context, id string) (string, error)
	Create(ctx context.Context, cmd UpsertResourceCommand) (*domain.Resource, error)
	Update(ctx context.Context, id string, cmd UpsertResourceCommand) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	mediaBaseURL string
}

// NewService constructs the resource use-cases. mediaBaseURL is the public
// prefix of the object-storage bucket the stored paths live under.
func NewService(repo Repository, mediaBaseURL string) Service {
	return &service{repo: repo, mediaBaseURL: strings.TrimRight(strings.TrimSpace(mediaBaseURL), "/")}
}

func (s *service) List(ctx context.Context, category string) ([]domain.Resource, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *service) Detail(ctx context.Context, id string) (*domain.Resource, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) DownloadURL(ctx context.Context, id string) (string, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	_ = s.repo.IncrementDownloads(ctx, resource.ID)
	return s.mediaBaseURL + "/" + strings.TrimLeft(resource.StoredPath, "/"), nil
}

func (s *service) Create(ctx context.Context, cmd UpsertResourceCommand) (*domain.Resource, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	storedPath := strings.TrimSpace(cmd.StoredPath)
	if storedPath == "" {
		return nil, errors.New("stored path is required")
	}

	now := time.Now().UTC()
	resource := &domain.Resource{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Category:    strings.TrimSpace(cmd.Category),
		FileName:    strings.TrimSpace(cmd.FileName),
		StoredPath:  storedPath,
		ContentType: strings.TrimSpace(cmd.ContentType),
		SizeBytes:   cmd.SizeBytes,
		UploadedBy:  strings.TrimSpace(cmd.UploadedBy),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *service) Update(ctx context.Context, id string, cmd UpsertResourceCommand) (*domain.Resource, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(cmd.Title); title != "" {
		resource.Title = title
	}
	if cmd.Description != "" {
		resource.Description = strings.TrimSpace(cmd.Description)
	}
	if cmd.Category != "" {
		resource.Category = strings.TrimSpace(cmd.Category)
	}
	if path := strings.TrimSpace(cmd.StoredPath); path != "" {
		resource.StoredPath = path
		resource.FileName = strings.TrimSpace(cmd.FileName)
		resource.ContentType = strings.TrimSpace(cmd.ContentType)
		resource.SizeBytes = cmd.SizeBytes
	}

	resource.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
