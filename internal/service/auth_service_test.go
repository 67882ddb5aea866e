package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-events-hub/portal-api/internal/models"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

type stubAdminRepo struct {
	byEmail map[string]*models.AdminUser
	byID    map[string]*models.AdminUser
	tokens  map[string]*models.RefreshToken

	created        []*models.RefreshToken
	revokedUserIDs []string
	passwordSet    string
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{
		byEmail: map[string]*models.AdminUser{},
		byID:    map[string]*models.AdminUser{},
		tokens:  map[string]*models.RefreshToken{},
	}
}

func (s *stubAdminRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdminRepo) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	s.passwordSet = passwordHash
	return nil
}

func (s *stubAdminRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	s.created = append(s.created, token)
	s.tokens[token.Token] = token
	return nil
}

func (s *stubAdminRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if stored, ok := s.tokens[token]; ok {
		return stored, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdminRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	s.revokedUserIDs = append(s.revokedUserIDs, userID)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "portal-api-test",
	}
}

func seedAdmin(repo *stubAdminRepo, user *models.AdminUser) {
	repo.byEmail[user.Email] = user
	repo.byID[user.ID] = user
}

func TestLogin(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmin(repo, &models.AdminUser{
		ID:           "admin-1",
		Email:        "admin@campus.edu",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         "admin",
		AdminType:    models.AdminPermanent,
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@campus.edu", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "admin-1", resp.User.ID)
	require.Len(t, repo.created, 1)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, models.AdminPermanent, claims.AdminType)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmin(repo, &models.AdminUser{
		ID:           "admin-1",
		Email:        "admin@campus.edu",
		PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@campus.edu", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "ghost@campus.edu", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginExpiredTemporaryAdmin(t *testing.T) {
	expired := time.Now().UTC().Add(-time.Hour)
	repo := newStubAdminRepo()
	seedAdmin(repo, &models.AdminUser{
		ID:             "temp-1",
		Email:          "temp@campus.edu",
		PasswordHash:   hashPassword(t, "secret123"),
		AdminType:      models.AdminTemporary,
		AdminExpiresAt: &expired,
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "temp@campus.edu", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrAdminExpired)
}

func TestValidateTokenExpiredTemporaryAdmin(t *testing.T) {
	// The token stays cryptographically valid while the admin window lapses.
	soon := time.Now().UTC().Add(50 * time.Millisecond)
	repo := newStubAdminRepo()
	seedAdmin(repo, &models.AdminUser{
		ID:             "temp-1",
		Email:          "temp@campus.edu",
		PasswordHash:   hashPassword(t, "secret123"),
		AdminType:      models.AdminTemporary,
		AdminExpiresAt: &soon,
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "temp@campus.edu", Password: "secret123"})
	require.NoError(t, err)

	svc.now = func() time.Time { return soon.Add(time.Minute) }
	_, err = svc.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrAdminExpired)
}

func TestRefreshRotatesToken(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmin(repo, &models.AdminUser{
		ID:           "admin-1",
		Email:        "admin@campus.edu",
		PasswordHash: hashPassword(t, "secret123"),
	})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@campus.edu", Password: "secret123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)
	assert.Contains(t, repo.revokedUserIDs, "admin-1")
}

func TestRefreshRejectsRevoked(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmin(repo, &models.AdminUser{ID: "admin-1", Email: "admin@campus.edu"})
	repo.tokens["stale"] = &models.RefreshToken{
		ID:        "t1",
		UserID:    "admin-1",
		Token:     "stale",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		Revoked:   true,
	}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "stale"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestChangePassword(t *testing.T) {
	repo := newStubAdminRepo()
	seedAdmin(repo, &models.AdminUser{ID: "admin-1", Email: "admin@campus.edu"})
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	err := svc.ChangePassword(context.Background(), "admin-1", models.ChangePasswordRequest{NewPassword: "short"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.ChangePassword(context.Background(), "admin-1", models.ChangePasswordRequest{NewPassword: "longenough"})
	require.NoError(t, err)
	assert.NotEmpty(t, repo.passwordSet)
	assert.Contains(t, repo.revokedUserIDs, "admin-1")
}
