package application

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ncd-navigator/resource-mobilization/api/internal/user/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound marks a missing user record.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken rejects duplicate account emails.
	ErrEmailTaken = errors.New("email already registered")
)

// Repository persists user accounts.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// CreateUserCommand carries admin input for a new account.
type CreateUserCommand struct {
	Email        string
	DisplayName  string
	Organisation string
	Role         string
	Password     string
}

// UpdateUserCommand carries admin edits to an existing account.
type UpdateUserCommand struct {
	DisplayName  *string
	Organisation *string
	Role         *string
	Password     *string
}

// Service describes the admin user-management use-cases.
type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Detail(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, cmd CreateUserCommand) (*domain.User, error)
	Update(ctx context.Context, id string, cmd UpdateUserCommand) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService constructs the user-management use-cases.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *service) Detail(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	role, err := domain.NewRole(cmd.Role)
	if err != nil {
		return nil, err
	}
	if len(cmd.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(cmd.DisplayName),
		Organisation: strings.TrimSpace(cmd.Organisation),
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Update(ctx context.Context, id string, cmd UpdateUserCommand) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*cmd.DisplayName)
	}
	if cmd.Organisation != nil {
		user.Organisation = strings.TrimSpace(*cmd.Organisation)
	}
	if cmd.Role != nil {
		role, err := domain.NewRole(*cmd.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if cmd.Password != nil {
		if len(*cmd.Password) < 8 {
			return nil, errors.New("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*cmd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// VerifyPassword checks a candidate password against the stored hash.
func VerifyPassword(user *domain.User, password string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
