package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events-hub/portal-api/internal/models"
)

func adminRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "role", "admin_type", "admin_expires_at", "theme", "created_at", "updated_at",
	})
}

func TestAdminUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminUserRepository(db)

	now := time.Now().UTC()
	expires := now.Add(72 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM admin_users WHERE email = $1 LIMIT 1`)).
		WithArgs("temp@campus.edu").
		WillReturnRows(adminRows().
			AddRow("temp-1", "temp@campus.edu", "hash", "admin", "temporary", expires, "dark", now, now))

	user, err := repo.FindByEmail(context.Background(), "temp@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, models.AdminTemporary, user.AdminType)
	require.NotNil(t, user.AdminExpiresAt)
	assert.Equal(t, "dark", user.Theme)
}

func TestAdminUserRepositoryFindByEmailMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM admin_users WHERE email = $1 LIMIT 1`)).
		WithArgs("ghost@campus.edu").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@campus.edu")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestAdminUserRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO admin_users`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.AdminUser{Email: "new@campus.edu", AdminType: models.AdminPermanent}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestAdminUserRepositoryFindRefreshTokenSkipsRevoked(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM refresh_tokens WHERE token = $1 AND revoked = FALSE LIMIT 1`)).
		WithArgs("revoked-token").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindRefreshToken(context.Background(), "revoked-token")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestAdminUserRepositoryRevokeUserRefreshTokens(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE user_id = $1 AND revoked = FALSE`)).
		WithArgs("admin-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.RevokeUserRefreshTokens(context.Background(), "admin-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
