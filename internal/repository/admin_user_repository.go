package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campus-events-hub/portal-api/internal/models"
)

const adminColumns = `id, email, password_hash, role, admin_type, admin_expires_at, theme, created_at, updated_at`

// AdminUserRepository provides persistence for admin console accounts and
// their refresh tokens.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates the repository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// List returns every admin account, newest first.
func (r *AdminUserRepository) List(ctx context.Context) ([]models.AdminUser, error) {
	query := fmt.Sprintf(`SELECT %s FROM admin_users ORDER BY created_at DESC`, adminColumns)
	users := []models.AdminUser{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	return users, nil
}

// FindByEmail returns an admin account by email address.
func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := fmt.Sprintf(`SELECT %s FROM admin_users WHERE email = $1 LIMIT 1`, adminColumns)
	var user models.AdminUser
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &user, nil
}

// FindByID returns an admin account by identifier.
func (r *AdminUserRepository) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	query := fmt.Sprintf(`SELECT %s FROM admin_users WHERE id = $1 LIMIT 1`, adminColumns)
	var user models.AdminUser
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new admin account.
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	const query = `INSERT INTO admin_users (id, email, password_hash, role, admin_type, admin_expires_at, theme, created_at, updated_at)
VALUES (:id, :email, :password_hash, :role, :admin_type, :admin_expires_at, :theme, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

// Delete removes an admin account; its refresh tokens cascade.
func (r *AdminUserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM admin_users WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete admin user: %w", err)
	}
	return nil
}

// UpdatePassword updates the stored password hash.
func (r *AdminUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	const query = `UPDATE admin_users SET password_hash = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, updatedAt); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateTheme persists the console theme preference.
func (r *AdminUserRepository) UpdateTheme(ctx context.Context, id, theme string, updatedAt time.Time) error {
	const query = `UPDATE admin_users SET theme = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, theme, updatedAt); err != nil {
		return fmt.Errorf("update theme: %w", err)
	}
	return nil
}

// CreateRefreshToken persists a session token.
func (r *AdminUserRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	const query = `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked)
VALUES (:id, :user_id, :token, :expires_at, :created_at, :revoked)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// FindRefreshToken looks up a live session token.
func (r *AdminUserRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	const query = `SELECT id, user_id, token, expires_at, created_at, revoked, revoked_at
FROM refresh_tokens WHERE token = $1 AND revoked = FALSE LIMIT 1`
	var rt models.RefreshToken
	if err := r.db.GetContext(ctx, &rt, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &rt, nil
}

// RevokeUserRefreshTokens signs the admin out of every session.
func (r *AdminUserRepository) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE user_id = $1 AND revoked = FALSE`
	if _, err := r.db.ExecContext(ctx, query, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
