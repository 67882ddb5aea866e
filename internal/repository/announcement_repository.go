package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campus-events-hub/portal-api/internal/models"
)

// AnnouncementRepository provides persistence for announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository creates the repository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// List returns announcements newest first.
func (r *AnnouncementRepository) List(ctx context.Context, search string) ([]models.Announcement, error) {
	query := `SELECT id, title, content, created_at, updated_at FROM announcements`
	args := []interface{}{}
	if term := strings.TrimSpace(search); term != "" {
		query += ` WHERE LOWER(title) LIKE $1 OR LOWER(content) LIKE $1`
		args = append(args, "%"+strings.ToLower(term)+"%")
	}
	query += ` ORDER BY created_at DESC`

	announcements := []models.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, query, args...); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

// GetByID returns an announcement by identifier.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	const query = `SELECT id, title, content, created_at, updated_at FROM announcements WHERE id = $1`
	var announcement models.Announcement
	if err := r.db.GetContext(ctx, &announcement, query, id); err != nil {
		return nil, err
	}
	return &announcement, nil
}

// Create inserts a new announcement and fills in its generated id.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	now := time.Now().UTC()
	announcement.CreatedAt = now
	announcement.UpdatedAt = now
	const query = `INSERT INTO announcements (title, content, created_at, updated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		announcement.Title, announcement.Content, announcement.CreatedAt, announcement.UpdatedAt,
	).Scan(&announcement.ID); err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

// Update modifies an existing announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	announcement.UpdatedAt = time.Now().UTC()
	const query = `UPDATE announcements SET title = :title, content = :content, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, announcement); err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return nil
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM announcements WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}
