package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campus-events-hub/portal-api/internal/models"
)

const eventColumns = `id, title, description, event_date, location, fee, image_url, image_path, registration_link, audience_type, target_department, delete_at, created_at, updated_at`

// EventRepository provides persistence for events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events ordered by date ascending, optionally narrowed by a
// case-insensitive substring search over the displayed fields.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events`, eventColumns)
	args := []interface{}{}
	if term := strings.TrimSpace(filter.Search); term != "" {
		query += ` WHERE LOWER(title) LIKE $1 OR LOWER(description) LIKE $1 OR LOWER(location) LIKE $1 OR LOWER(COALESCE(target_department, '')) LIKE $1`
		args = append(args, "%"+strings.ToLower(term)+"%")
	}
	query += ` ORDER BY event_date ASC NULLS LAST, id ASC`

	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListLite returns the id/title projection used for lookup tables and
// winner form dropdowns.
func (r *EventRepository) ListLite(ctx context.Context) ([]models.EventLite, error) {
	const query = `SELECT id, title FROM events ORDER BY event_date ASC NULLS LAST, id ASC`
	events := []models.EventLite{}
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list events lite: %w", err)
	}
	return events, nil
}

// GetByID returns an event by identifier.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event and fills in its generated id.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	const query = `INSERT INTO events (title, description, event_date, location, fee, image_url, image_path, registration_link, audience_type, target_department, delete_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		event.Title, event.Description, event.EventDate, event.Location, event.Fee,
		event.ImageURL, event.ImagePath, event.RegistrationLink,
		event.AudienceType, event.TargetDepartment, event.DeleteAt,
		event.CreatedAt, event.UpdatedAt,
	).Scan(&event.ID); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// Update modifies an existing event.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET title = :title, description = :description, event_date = :event_date, location = :location,
fee = :fee, image_url = :image_url, image_path = :image_path, registration_link = :registration_link,
audience_type = :audience_type, target_department = :target_department, delete_at = :delete_at, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
