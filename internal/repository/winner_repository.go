package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campus-events-hub/portal-api/internal/models"
)

const winnerColumns = `w.id, w.event_id, w.winner_name, w.winner_class, w.winner_dept, w.position, w.image_url, w.image_path, w.delete_at, w.created_at, COALESCE(e.title, '') AS event_title`

// WinnerRepository provides persistence for award winners.
type WinnerRepository struct {
	db *sqlx.DB
}

// NewWinnerRepository creates the repository.
func NewWinnerRepository(db *sqlx.DB) *WinnerRepository {
	return &WinnerRepository{db: db}
}

// List returns winners newest first with their event title joined in.
func (r *WinnerRepository) List(ctx context.Context, search string) ([]models.Winner, error) {
	query := fmt.Sprintf(`SELECT %s FROM winners w LEFT JOIN events e ON e.id = w.event_id`, winnerColumns)
	args := []interface{}{}
	if term := strings.TrimSpace(search); term != "" {
		query += ` WHERE LOWER(w.winner_name) LIKE $1 OR LOWER(w.position) LIKE $1 OR LOWER(w.winner_class) LIKE $1 OR LOWER(w.winner_dept) LIKE $1 OR LOWER(COALESCE(e.title, '')) LIKE $1`
		args = append(args, "%"+strings.ToLower(term)+"%")
	}
	query += ` ORDER BY w.id DESC`

	winners := []models.Winner{}
	if err := r.db.SelectContext(ctx, &winners, query, args...); err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	return winners, nil
}

// ListByEvent returns winners for one event.
func (r *WinnerRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Winner, error) {
	query := fmt.Sprintf(`SELECT %s FROM winners w LEFT JOIN events e ON e.id = w.event_id WHERE w.event_id = $1 ORDER BY w.id DESC`, winnerColumns)
	winners := []models.Winner{}
	if err := r.db.SelectContext(ctx, &winners, query, eventID); err != nil {
		return nil, fmt.Errorf("list winners for event %d: %w", eventID, err)
	}
	return winners, nil
}

// GetByID returns a winner by identifier.
func (r *WinnerRepository) GetByID(ctx context.Context, id int64) (*models.Winner, error) {
	query := fmt.Sprintf(`SELECT %s FROM winners w LEFT JOIN events e ON e.id = w.event_id WHERE w.id = $1`, winnerColumns)
	var winner models.Winner
	if err := r.db.GetContext(ctx, &winner, query, id); err != nil {
		return nil, err
	}
	return &winner, nil
}

// Create inserts a new winner and fills in its generated id. The store
// rejects unknown event ids with a foreign-key violation.
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	winner.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO winners (event_id, winner_name, winner_class, winner_dept, position, image_url, image_path, delete_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		winner.EventID, winner.WinnerName, winner.WinnerClass, winner.WinnerDept,
		winner.Position, winner.ImageURL, winner.ImagePath, winner.DeleteAt, winner.CreatedAt,
	).Scan(&winner.ID); err != nil {
		return fmt.Errorf("create winner: %w", err)
	}
	return nil
}

// Update modifies an existing winner.
func (r *WinnerRepository) Update(ctx context.Context, winner *models.Winner) error {
	const query = `UPDATE winners SET event_id = :event_id, winner_name = :winner_name, winner_class = :winner_class,
winner_dept = :winner_dept, position = :position, image_url = :image_url, image_path = :image_path, delete_at = :delete_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, winner); err != nil {
		return fmt.Errorf("update winner: %w", err)
	}
	return nil
}

// Delete removes a winner.
func (r *WinnerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM winners WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete winner: %w", err)
	}
	return nil
}
