package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"Proofchain-Backend/domain"
	"Proofchain-Backend/entities"
)

type mockUserRepo struct {
	users map[string]*entities.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*entities.User{}}
}

func (r *mockUserRepo) CreateUser(_ context.Context, user *entities.User) error {
	r.users[user.ID.String()] = user
	return nil
}

func (r *mockUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) GetUserByIdentityRef(_ context.Context, identityRef string) (*entities.User, error) {
	for _, u := range r.users {
		if u.IdentityProviderRef == identityRef {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) UpdateUser(_ context.Context, user *entities.User) error {
	r.users[user.ID.String()] = user
	return nil
}

func (r *mockUserRepo) GetUsersWithEmail(_ context.Context) ([]*entities.User, error) {
	var out []*entities.User
	for _, u := range r.users {
		if u.Email != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestFindOrCreateByIdentityCreatesNewUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewUserService(repo)

	u, err := service.FindOrCreateByIdentity(context.Background(), "sub-123", "New@Example.com", "New User")
	require.NoError(t, err)

	assert.Equal(t, "sub-123", u.IdentityProviderRef)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "New User", u.FullName)
	assert.Equal(t, domain.ReminderPreferenceEmail, u.ReminderPreference)
	assert.Len(t, repo.users, 1)
}

func TestFindOrCreateByIdentityReturnsExisting(t *testing.T) {
	repo := newMockUserRepo()
	service := NewUserService(repo)

	existing := &entities.User{ID: uuid.New(), IdentityProviderRef: "sub-123", Email: "a@example.com"}
	repo.users[existing.ID.String()] = existing

	u, err := service.FindOrCreateByIdentity(context.Background(), "sub-123", "a@example.com", "A")
	require.NoError(t, err)

	assert.Equal(t, existing.ID, u.ID)
	assert.Len(t, repo.users, 1)
}

func TestFindOrCreateByIdentityLinksByEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewUserService(repo)

	// Account created before the identity provider link existed.
	existing := &entities.User{ID: uuid.New(), Email: "old@example.com", FullName: "Old User"}
	repo.users[existing.ID.String()] = existing

	u, err := service.FindOrCreateByIdentity(context.Background(), "sub-999", "old@example.com", "Old User")
	require.NoError(t, err)

	assert.Equal(t, existing.ID, u.ID)
	assert.Equal(t, "sub-999", u.IdentityProviderRef)
	assert.Len(t, repo.users, 1)
}

func TestFindOrCreateByIdentityRequiresEmail(t *testing.T) {
	service := NewUserService(newMockUserRepo())

	_, err := service.FindOrCreateByIdentity(context.Background(), "sub-123", "", "No Email")
	assert.ErrorIs(t, err, domain.ErrEmailMissing)
}

func TestMeNotFound(t *testing.T) {
	service := NewUserService(newMockUserRepo())

	_, err := service.Me(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateUserPatchesOnlyProvidedFields(t *testing.T) {
	repo := newMockUserRepo()
	service := NewUserService(repo)

	existing := &entities.User{
		ID:                 uuid.New(),
		Email:              "a@example.com",
		FullName:           "Before",
		PhoneNumber:        "123",
		ReminderPreference: domain.ReminderPreferenceEmail,
	}
	repo.users[existing.ID.String()] = existing

	err := service.UpdateUser(context.Background(), existing.ID.String(), domain.UpdateUserRequest{
		FullName: "After",
	})
	require.NoError(t, err)

	updated := repo.users[existing.ID.String()]
	assert.Equal(t, "After", updated.FullName)
	assert.Equal(t, "123", updated.PhoneNumber)
	assert.Equal(t, domain.ReminderPreferenceEmail, updated.ReminderPreference)
}
