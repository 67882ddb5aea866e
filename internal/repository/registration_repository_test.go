package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events-hub/portal-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func TestRegistrationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO registrations (event_id, student_name, student_email, student_class, student_dept, created_at)`)).
		WithArgs(int64(7), "Asha Verma", "asha@example.edu", "III CSE A", "CSE", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	reg := &models.Registration{
		EventID:      7,
		StudentName:  "Asha Verma",
		StudentEmail: "asha@example.edu",
		StudentClass: "III CSE A",
		StudentDept:  "CSE",
	}
	require.NoError(t, repo.Create(context.Background(), reg))
	assert.Equal(t, int64(3), reg.ID)
	assert.False(t, reg.CreatedAt.IsZero())
}

func TestRegistrationRepositoryCreateKeepsSQLState(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO registrations`)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Registration{EventID: 7})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "the SQLSTATE survives wrapping")
	assert.False(t, IsForeignKeyViolation(err))
}

func TestRegistrationRepositoryCountsFromView(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT event_id, title, reg_count FROM event_reg_counts`)).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "title", "reg_count"}).
			AddRow(1, "Hackathon", 12).
			AddRow(2, "Tech Talk", 4))

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 12, counts[0].RegCount)
}

func TestRegistrationRepositoryCountsFallback(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	// The aggregate view is optional; a missing relation triggers the
	// manual count.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT event_id, title, reg_count FROM event_reg_counts`)).
		WillReturnError(&pq.Error{Code: "42P01"})
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT e.id AS event_id, e.title AS title, COUNT(r.id) AS reg_count`)).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "title", "reg_count"}).
			AddRow(1, "Hackathon", 12))

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, "Hackathon", counts[0].Title)
}

func TestRegistrationRepositoryCountsOtherError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT event_id, title, reg_count FROM event_reg_counts`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Counts(context.Background())
	assert.Error(t, err)
}

func TestRegistrationRepositoryListByEvent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	created := time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM registrations WHERE event_id = $1 ORDER BY created_at DESC`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "student_name", "student_email", "student_class", "student_dept", "created_at"}).
			AddRow(1, 7, "Asha Verma", "asha@example.edu", "III CSE A", "CSE", created))

	regs, err := repo.ListByEvent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "asha@example.edu", regs[0].StudentEmail)
}
