package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events-hub/portal-api/internal/models"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

type stubRegistrationRepo struct {
	createErr error
	created   *models.Registration
	byEvent   []models.Registration
	all       []models.Registration
	counts    []models.EventRegCount
	countsErr error
}

func (s *stubRegistrationRepo) Create(ctx context.Context, reg *models.Registration) error {
	if s.createErr != nil {
		return s.createErr
	}
	reg.ID = 42
	s.created = reg
	return nil
}

func (s *stubRegistrationRepo) ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error) {
	return s.byEvent, nil
}

func (s *stubRegistrationRepo) ListAll(ctx context.Context) ([]models.Registration, error) {
	return s.all, nil
}

func (s *stubRegistrationRepo) Counts(ctx context.Context) ([]models.EventRegCount, error) {
	if s.countsErr != nil {
		return nil, s.countsErr
	}
	return s.counts, nil
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Name:       "Asha Verma",
		Email:      "  Asha@Example.edu ",
		Class:      "III CSE A",
		Department: "CSE",
	}
}

func TestRegister(t *testing.T) {
	repo := &stubRegistrationRepo{}
	svc := NewRegistrationService(repo, nil, nil, nil)

	reg, err := svc.Register(context.Background(), 7, validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), reg.ID)
	assert.Equal(t, int64(7), reg.EventID)
	assert.Equal(t, "asha@example.edu", reg.StudentEmail, "emails are stored lowercased")
	assert.Equal(t, "Asha Verma", reg.StudentName)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewRegistrationService(&stubRegistrationRepo{}, nil, nil, nil)

	req := validRegisterRequest()
	req.Email = "not-an-email"
	_, err := svc.Register(context.Background(), 7, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validRegisterRequest()
	req.Name = "   "
	_, err = svc.Register(context.Background(), 7, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRegisterDuplicate(t *testing.T) {
	repo := &stubRegistrationRepo{createErr: &pq.Error{Code: "23505"}}
	svc := NewRegistrationService(repo, nil, nil, nil)

	_, err := svc.Register(context.Background(), 7, validRegisterRequest())
	assert.ErrorIs(t, err, appErrors.ErrAlreadyRegistered)
}

func TestRegisterEventGone(t *testing.T) {
	repo := &stubRegistrationRepo{createErr: &pq.Error{Code: "23503"}}
	svc := NewRegistrationService(repo, nil, nil, nil)

	_, err := svc.Register(context.Background(), 7, validRegisterRequest())
	assert.ErrorIs(t, err, appErrors.ErrEventGone)
}

func TestRegisterStoreFailure(t *testing.T) {
	repo := &stubRegistrationRepo{createErr: errors.New("connection reset")}
	svc := NewRegistrationService(repo, nil, nil, nil)

	_, err := svc.Register(context.Background(), 7, validRegisterRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestCounts(t *testing.T) {
	repo := &stubRegistrationRepo{counts: []models.EventRegCount{
		{EventID: 1, Title: "Hackathon", RegCount: 12},
	}}
	svc := NewRegistrationService(repo, nil, nil, nil)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 12, counts[0].RegCount)
}
