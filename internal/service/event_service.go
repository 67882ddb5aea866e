package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-events-hub/portal-api/internal/models"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	ListLite(ctx context.Context) ([]models.EventLite, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// feedInvalidator drops derived feed caches after content mutations.
type feedInvalidator interface {
	Invalidate(ctx context.Context)
}

// EventService handles the admin event lifecycle.
type EventService struct {
	repo      eventRepository
	feed      feedInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(repo eventRepository, feed feedInvalidator, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, feed: feed, validator: validate, logger: logger}
}

// EventRequest is the create/update payload for events.
type EventRequest struct {
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description"`
	EventDate        *time.Time `json:"event_date"`
	Location         string     `json:"location"`
	Fee              float64    `json:"fee" validate:"gte=0"`
	ImageURL         *string    `json:"image_url"`
	ImagePath        *string    `json:"image_path"`
	RegistrationLink *string    `json:"registration_link"`
	AudienceType     string     `json:"audience_type" validate:"required,oneof=college department"`
	TargetDepartment *string    `json:"target_department"`
	DeleteAt         *time.Time `json:"delete_at"`
}

func (s *EventService) validateRequest(req *EventRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if models.AudienceType(req.AudienceType) == models.AudienceDepartment {
		if req.TargetDepartment == nil || strings.TrimSpace(*req.TargetDepartment) == "" {
			return appErrors.Clone(appErrors.ErrValidation, "target department is required for department events")
		}
	} else {
		req.TargetDepartment = nil
	}
	return nil
}

func (req EventRequest) apply(event *models.Event) {
	event.Title = req.Title
	event.Description = req.Description
	event.EventDate = req.EventDate
	event.Location = req.Location
	event.Fee = req.Fee
	event.ImageURL = req.ImageURL
	event.ImagePath = req.ImagePath
	event.RegistrationLink = req.RegistrationLink
	event.AudienceType = models.AudienceType(req.AudienceType)
	event.TargetDepartment = req.TargetDepartment
	event.DeleteAt = req.DeleteAt
}

// List returns events for the admin console, optionally filtered by search.
func (s *EventService) List(ctx context.Context, search string) ([]models.Event, error) {
	events, err := s.repo.List(ctx, models.EventFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		s.logger.Error("list events", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// ListLite returns the id/title projection for selects and exports.
func (s *EventService) ListLite(ctx context.Context) ([]models.EventLite, error) {
	events, err := s.repo.ListLite(ctx)
	if err != nil {
		s.logger.Error("list event titles", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return events, nil
}

// Get returns one event by id.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		s.logger.Error("load event", zap.Int64("event_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}

// Create validates and stores a new event.
func (s *EventService) Create(ctx context.Context, req EventRequest) (*models.Event, error) {
	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	event := &models.Event{CreatedAt: now, UpdatedAt: now}
	req.apply(event)
	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error("create event", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.invalidate(ctx)
	s.logger.Info("event created", zap.Int64("event_id", event.ID), zap.String("title", event.Title))
	return event, nil
}

// Update validates and stores changes to an existing event.
func (s *EventService) Update(ctx context.Context, id int64, req EventRequest) (*models.Event, error) {
	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(event)
	event.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, event); err != nil {
		s.logger.Error("update event", zap.Int64("event_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	s.invalidate(ctx)
	return event, nil
}

// Delete removes an event permanently.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete event", zap.Int64("event_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.invalidate(ctx)
	s.logger.Info("event deleted", zap.Int64("event_id", id))
	return nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if s.feed != nil {
		s.feed.Invalidate(ctx)
	}
}
