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

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "event_date", "location", "fee",
		"image_url", "image_path", "registration_link",
		"audience_type", "target_department", "delete_at", "created_at", "updated_at",
	})
}

func TestEventRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	now := time.Now().UTC()
	date := now.Add(48 * time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY event_date ASC NULLS LAST, id ASC`)).
		WillReturnRows(eventRows().
			AddRow(1, "Hackathon", "24h build", date, "Lab 2", 0.0, nil, nil, nil, "college", nil, nil, now, now))

	events, err := repo.List(context.Background(), models.EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Hackathon", events[0].Title)
	assert.Equal(t, models.AudienceCollege, events[0].AudienceType)
}

func TestEventRepositoryListSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(title) LIKE $1 OR LOWER(description) LIKE $1 OR LOWER(location) LIKE $1 OR LOWER(COALESCE(target_department, '')) LIKE $1`)).
		WithArgs("%robotics%").
		WillReturnRows(eventRows())

	events, err := repo.List(context.Background(), models.EventFilter{Search: " Robotics "})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, sql.ErrNoRows), "missing rows pass through unwrapped")
}

func TestEventRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO events`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	event := &models.Event{Title: "Hackathon", AudienceType: models.AudienceCollege}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.Equal(t, int64(11), event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestEventRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}
