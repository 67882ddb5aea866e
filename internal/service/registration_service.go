package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-events-hub/portal-api/internal/models"
	"github.com/campus-events-hub/portal-api/internal/repository"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

type registrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error)
	ListAll(ctx context.Context) ([]models.Registration, error)
	Counts(ctx context.Context) ([]models.EventRegCount, error)
}

// RegistrationService handles student sign-ups and admin registration views.
type RegistrationService struct {
	repo      registrationRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs the service.
func NewRegistrationService(repo registrationRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// RegisterRequest is the public sign-up payload.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Class      string `json:"class" validate:"required"`
	Department string `json:"department" validate:"required"`
}

// Register records a sign-up for the event. Constraint violations surface as
// user-facing outcomes rather than raw store errors: a duplicate sign-up is
// reported as already registered, a dangling event reference as event gone.
func (s *RegistrationService) Register(ctx context.Context, eventID int64, req RegisterRequest) (*models.Registration, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Class = strings.TrimSpace(req.Class)
	req.Department = strings.TrimSpace(req.Department)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "all fields are required")
	}

	reg := &models.Registration{
		EventID:      eventID,
		StudentName:  req.Name,
		StudentEmail: strings.ToLower(req.Email),
		StudentClass: req.Class,
		StudentDept:  req.Department,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			return nil, appErrors.ErrAlreadyRegistered
		case repository.IsForeignKeyViolation(err):
			return nil, appErrors.ErrEventGone
		default:
			s.logger.Error("create registration", zap.Int64("event_id", eventID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "registration failed")
		}
	}
	if s.metrics != nil {
		s.metrics.RecordRegistration()
	}
	s.logger.Info("registration recorded", zap.Int64("event_id", eventID), zap.Int64("registration_id", reg.ID))
	return reg, nil
}

// ListByEvent returns registrations for one event, newest first.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error) {
	regs, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("list registrations", zap.Int64("event_id", eventID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return regs, nil
}

// ListAll returns every registration, newest first.
func (s *RegistrationService) ListAll(ctx context.Context) ([]models.Registration, error) {
	regs, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("list all registrations", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return regs, nil
}

// Counts returns per-event registration totals.
func (s *RegistrationService) Counts(ctx context.Context) ([]models.EventRegCount, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		s.logger.Error("load registration counts", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration counts")
	}
	return counts, nil
}
