package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncd-navigator/resource-mobilization/api/internal/user/domain"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, user *domain.User) error {
	f.nextID++
	user.ID = "user-" + string(rune('0'+f.nextID))
	stored := *user
	f.byID[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return ErrNotFound
	}
	stored := *user
	f.byID[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	user, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(f.byEmail, user.Email)
	delete(f.byID, id)
	return nil
}

func TestCreateUser_HashesPasswordAndNormalisesEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	user, err := svc.Create(context.Background(), CreateUserCommand{
		Email:       " Officer@GHS.gov.GH ",
		DisplayName: "Programme Officer",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "officer@ghs.gov.gh", user.Email)
	assert.Equal(t, domain.RoleContributor, user.Role, "role defaults to contributor")
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.True(t, VerifyPassword(user, "s3cret-pass"))
	assert.False(t, VerifyPassword(user, "wrong-pass"))
}

func TestCreateUser_RejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), CreateUserCommand{
		Email:    "officer@ghs.gov.gh",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateUserCommand{
		Email:    "OFFICER@ghs.gov.gh",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUser_RejectsShortPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), CreateUserCommand{
		Email:    "officer@ghs.gov.gh",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestUpdateUser_AppliesOnlyProvidedFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateUserCommand{
		Email:       "officer@ghs.gov.gh",
		DisplayName: "Programme Officer",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	role := domain.RoleAdmin
	updated, err := svc.Update(context.Background(), created.ID, UpdateUserCommand{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.Equal(t, "Programme Officer", updated.DisplayName)
	assert.True(t, VerifyPassword(updated, "s3cret-pass"), "password unchanged when not provided")
}

func TestUpdateUser_UnknownIDReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	name := "Someone"
	_, err := svc.Update(context.Background(), "missing", UpdateUserCommand{DisplayName: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}
