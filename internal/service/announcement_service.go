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

type announcementRepository interface {
	List(ctx context.Context, search string) ([]models.Announcement, error)
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id int64) error
}

// AnnouncementService handles the admin announcement lifecycle.
type AnnouncementService struct {
	repo      announcementRepository
	feed      feedInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementRepository, feed feedInvalidator, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, feed: feed, validator: validate, logger: logger}
}

// AnnouncementRequest is the create/update payload.
type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// List returns announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context, search string) ([]models.Announcement, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		s.logger.Error("list announcements", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	return items, nil
}

// Get returns one announcement by id.
func (s *AnnouncementService) Get(ctx context.Context, id int64) (*models.Announcement, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		s.logger.Error("load announcement", zap.Int64("announcement_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcement")
	}
	return item, nil
}

// Create validates and stores a new announcement.
func (s *AnnouncementService) Create(ctx context.Context, req AnnouncementRequest) (*models.Announcement, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title is required")
	}
	now := time.Now().UTC()
	item := &models.Announcement{Title: req.Title, Content: req.Content, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("create announcement", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
	}
	s.invalidate(ctx)
	return item, nil
}

// Update validates and stores changes.
func (s *AnnouncementService) Update(ctx context.Context, id int64, req AnnouncementRequest) (*models.Announcement, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title is required")
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Title = req.Title
	item.Content = req.Content
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.Error("update announcement", zap.Int64("announcement_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update announcement")
	}
	s.invalidate(ctx)
	return item, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete announcement", zap.Int64("announcement_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete announcement")
	}
	s.invalidate(ctx)
	return nil
}

func (s *AnnouncementService) invalidate(ctx context.Context) {
	if s.feed != nil {
		s.feed.Invalidate(ctx)
	}
}
