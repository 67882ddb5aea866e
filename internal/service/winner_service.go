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
	"github.com/campus-events-hub/portal-api/internal/repository"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

type winnerRepository interface {
	List(ctx context.Context, search string) ([]models.Winner, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.Winner, error)
	GetByID(ctx context.Context, id int64) (*models.Winner, error)
	Create(ctx context.Context, winner *models.Winner) error
	Update(ctx context.Context, winner *models.Winner) error
	Delete(ctx context.Context, id int64) error
}

// WinnerService handles the admin winner lifecycle.
type WinnerService struct {
	repo            winnerRepository
	feed            feedInvalidator
	defaultImageURL string
	validator       *validator.Validate
	logger          *zap.Logger
}

// NewWinnerService constructs the service. defaultImageURL is applied when a
// winner is saved without a photo.
func NewWinnerService(repo winnerRepository, feed feedInvalidator, defaultImageURL string, validate *validator.Validate, logger *zap.Logger) *WinnerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WinnerService{repo: repo, feed: feed, defaultImageURL: defaultImageURL, validator: validate, logger: logger}
}

// WinnerRequest is the create/update payload.
type WinnerRequest struct {
	EventID     int64      `json:"event_id" validate:"required,gt=0"`
	WinnerName  string     `json:"winner_name" validate:"required"`
	WinnerClass string     `json:"winner_class"`
	WinnerDept  string     `json:"winner_dept"`
	Position    string     `json:"position" validate:"required"`
	ImageURL    *string    `json:"image_url"`
	ImagePath   *string    `json:"image_path"`
	DeleteAt    *time.Time `json:"delete_at"`
}

// List returns winners with their event titles joined in.
func (s *WinnerService) List(ctx context.Context, search string) ([]models.Winner, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		s.logger.Error("list winners", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list winners")
	}
	return items, nil
}

// Get returns one winner by id.
func (s *WinnerService) Get(ctx context.Context, id int64) (*models.Winner, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		s.logger.Error("load winner", zap.Int64("winner_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load winner")
	}
	return item, nil
}

// Create validates and stores a new winner.
func (s *WinnerService) Create(ctx context.Context, req WinnerRequest) (*models.Winner, error) {
	req.WinnerName = strings.TrimSpace(req.WinnerName)
	req.Position = strings.TrimSpace(req.Position)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid winner payload")
	}
	item := &models.Winner{CreatedAt: time.Now().UTC()}
	req.apply(item, s.defaultImageURL)
	if err := s.repo.Create(ctx, item); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.ErrEventGone
		}
		s.logger.Error("create winner", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create winner")
	}
	s.invalidate(ctx)
	return item, nil
}

// Update validates and stores changes.
func (s *WinnerService) Update(ctx context.Context, id int64, req WinnerRequest) (*models.Winner, error) {
	req.WinnerName = strings.TrimSpace(req.WinnerName)
	req.Position = strings.TrimSpace(req.Position)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid winner payload")
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(item, s.defaultImageURL)
	if err := s.repo.Update(ctx, item); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.ErrEventGone
		}
		s.logger.Error("update winner", zap.Int64("winner_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update winner")
	}
	s.invalidate(ctx)
	return item, nil
}

// Delete removes a winner.
func (s *WinnerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete winner", zap.Int64("winner_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete winner")
	}
	s.invalidate(ctx)
	return nil
}

func (req WinnerRequest) apply(item *models.Winner, defaultImageURL string) {
	item.EventID = req.EventID
	item.WinnerName = req.WinnerName
	item.WinnerClass = strings.TrimSpace(req.WinnerClass)
	item.WinnerDept = strings.TrimSpace(req.WinnerDept)
	item.Position = req.Position
	item.ImageURL = req.ImageURL
	item.ImagePath = req.ImagePath
	item.DeleteAt = req.DeleteAt
	if (item.ImageURL == nil || *item.ImageURL == "") && defaultImageURL != "" {
		url := defaultImageURL
		item.ImageURL = &url
		item.ImagePath = nil
	}
}

func (s *WinnerService) invalidate(ctx context.Context) {
	if s.feed != nil {
		s.feed.Invalidate(ctx)
	}
}
