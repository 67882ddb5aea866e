package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campus-events-hub/portal-api/internal/models"
)

// Postgres SQLSTATE codes the registration flow distinguishes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgUndefinedTable      = "42P01"
)

// IsUniqueViolation reports whether the error is a duplicate-key rejection.
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, pgUniqueViolation)
}

// IsForeignKeyViolation reports whether the error is a referential rejection.
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, pgForeignKeyViolation)
}

func hasSQLState(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

// RegistrationRepository provides persistence for event registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a registration. Constraint violations come back with their
// SQLSTATE intact so callers can map them to user-facing outcomes.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	reg.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO registrations (event_id, student_name, student_email, student_class, student_dept, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		reg.EventID, reg.StudentName, reg.StudentEmail, reg.StudentClass, reg.StudentDept, reg.CreatedAt,
	).Scan(&reg.ID); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// ListByEvent returns registrations for one event, newest first.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error) {
	const query = `SELECT id, event_id, student_name, student_email, student_class, student_dept, created_at
FROM registrations WHERE event_id = $1 ORDER BY created_at DESC`
	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, query, eventID); err != nil {
		return nil, fmt.Errorf("list registrations for event %d: %w", eventID, err)
	}
	return regs, nil
}

// ListAll returns every registration across events, newest first.
func (r *RegistrationRepository) ListAll(ctx context.Context) ([]models.Registration, error) {
	const query = `SELECT id, event_id, student_name, student_email, student_class, student_dept, created_at
FROM registrations ORDER BY created_at DESC`
	regs := []models.Registration{}
	if err := r.db.SelectContext(ctx, &regs, query); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// Counts reads the event_reg_counts aggregate view. Deployments without the
// view get the manual per-event count instead.
func (r *RegistrationRepository) Counts(ctx context.Context) ([]models.EventRegCount, error) {
	const viewQuery = `SELECT event_id, title, reg_count FROM event_reg_counts`
	counts := []models.EventRegCount{}
	err := r.db.SelectContext(ctx, &counts, viewQuery)
	if err == nil {
		return counts, nil
	}
	if !hasSQLState(err, pgUndefinedTable) {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	const fallbackQuery = `SELECT e.id AS event_id, e.title AS title, COUNT(r.id) AS reg_count
FROM events e LEFT JOIN registrations r ON r.event_id = e.id
GROUP BY e.id, e.title
ORDER BY e.id`
	counts = []models.EventRegCount{}
	if err := r.db.SelectContext(ctx, &counts, fallbackQuery); err != nil {
		return nil, fmt.Errorf("count registrations fallback: %w", err)
	}
	return counts, nil
}
