package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events-hub/portal-api/internal/models"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

type stubAdminUserRepo struct {
	users   []models.AdminUser
	byEmail map[string]*models.AdminUser
	byID    map[string]*models.AdminUser

	created *models.AdminUser
	deleted []string
	revoked []string
	theme   string
}

func newStubAdminUserRepo() *stubAdminUserRepo {
	return &stubAdminUserRepo{
		byEmail: map[string]*models.AdminUser{},
		byID:    map[string]*models.AdminUser{},
	}
}

func (s *stubAdminUserRepo) List(ctx context.Context) ([]models.AdminUser, error) {
	return s.users, nil
}

func (s *stubAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdminUserRepo) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdminUserRepo) Create(ctx context.Context, user *models.AdminUser) error {
	user.ID = "new-admin"
	s.created = user
	return nil
}

func (s *stubAdminUserRepo) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAdminUserRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	s.revoked = append(s.revoked, userID)
	return nil
}

func (s *stubAdminUserRepo) UpdateTheme(ctx context.Context, id, theme string, updatedAt time.Time) error {
	s.theme = theme
	return nil
}

func TestCreateAdmin(t *testing.T) {
	repo := newStubAdminUserRepo()
	svc := NewAdminUserService(repo, nil, nil)

	info, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:     "New.Admin@Campus.edu",
		Password:  "secret123",
		AdminType: "permanent",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.admin@campus.edu", info.Email)
	assert.Equal(t, models.AdminPermanent, info.AppMetadata.AdminType)
	assert.Nil(t, info.AppMetadata.AdminExpiresAt)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "secret123", repo.created.PasswordHash, "passwords are stored hashed")
}

func TestCreateTemporaryAdminRequiresExpiry(t *testing.T) {
	svc := NewAdminUserService(newStubAdminUserRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:     "temp@campus.edu",
		Password:  "secret123",
		AdminType: "temporary",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	past := time.Now().UTC().Add(-time.Hour)
	_, err = svc.Create(context.Background(), CreateAdminRequest{
		Email:          "temp@campus.edu",
		Password:       "secret123",
		AdminType:      "temporary",
		AdminExpiresAt: &past,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateTemporaryAdmin(t *testing.T) {
	repo := newStubAdminUserRepo()
	svc := NewAdminUserService(repo, nil, nil)

	future := time.Now().UTC().Add(48 * time.Hour)
	info, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:          "temp@campus.edu",
		Password:       "secret123",
		AdminType:      "temporary",
		AdminExpiresAt: &future,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AdminTemporary, info.AppMetadata.AdminType)
	require.NotNil(t, info.AppMetadata.AdminExpiresAt)
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	repo := newStubAdminUserRepo()
	repo.byEmail["taken@campus.edu"] = &models.AdminUser{ID: "a1", Email: "taken@campus.edu"}
	svc := NewAdminUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateAdminRequest{
		Email:     "taken@campus.edu",
		Password:  "secret123",
		AdminType: "permanent",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestDeleteAdmin(t *testing.T) {
	repo := newStubAdminUserRepo()
	repo.byID["a1"] = &models.AdminUser{ID: "a1"}
	svc := NewAdminUserService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "a1"))
	assert.Equal(t, []string{"a1"}, repo.deleted)
	assert.Equal(t, []string{"a1"}, repo.revoked, "sessions end with the account")

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTheme(t *testing.T) {
	repo := newStubAdminUserRepo()
	repo.byID["a1"] = &models.AdminUser{ID: "a1", Theme: ""}
	svc := NewAdminUserService(repo, nil, nil)

	theme, err := svc.Theme(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "light", theme, "missing preference defaults to light")

	require.NoError(t, svc.SetTheme(context.Background(), "a1", "dark"))
	assert.Equal(t, "dark", repo.theme)

	err = svc.SetTheme(context.Background(), "a1", "solarized")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
