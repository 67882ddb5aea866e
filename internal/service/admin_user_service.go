package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-events-hub/portal-api/internal/models"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
)

type adminUserRepository interface {
	List(ctx context.Context) ([]models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	Delete(ctx context.Context, id string) error
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
	UpdateTheme(ctx context.Context, id, theme string, updatedAt time.Time) error
}

// AdminUserService manages console accounts.
type AdminUserService struct {
	repo      adminUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdminUserService constructs the service.
func NewAdminUserService(repo adminUserRepository, validate *validator.Validate, logger *zap.Logger) *AdminUserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminUserService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// CreateAdminRequest is the payload for provisioning an admin account.
type CreateAdminRequest struct {
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=6"`
	AdminType      string     `json:"admin_type" validate:"required,oneof=permanent temporary"`
	AdminExpiresAt *time.Time `json:"admin_expires_at"`
}

// List returns every console account.
func (s *AdminUserService) List(ctx context.Context) ([]models.AdminUserInfo, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list admin users", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list admins")
	}
	infos := make([]models.AdminUserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, user.Info())
	}
	return infos, nil
}

// Create provisions a new admin account. Temporary admins must carry a
// future expiry; the check runs before anything is stored.
func (s *AdminUserService) Create(ctx context.Context, req CreateAdminRequest) (*models.AdminUserInfo, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin payload")
	}
	adminType := models.AdminType(req.AdminType)
	if adminType == models.AdminTemporary {
		if req.AdminExpiresAt == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "expiry is required for temporary admins")
		}
		if !req.AdminExpiresAt.After(s.now().UTC()) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "expiry must be in the future")
		}
	} else {
		req.AdminExpiresAt = nil
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an admin with this email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := s.now().UTC()
	user := &models.AdminUser{
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           "admin",
		AdminType:      adminType,
		AdminExpiresAt: req.AdminExpiresAt,
		Theme:          "light",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("create admin user", zap.String("email", req.Email), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
	}
	s.logger.Info("admin created", zap.String("user_id", user.ID), zap.String("admin_type", string(adminType)))
	info := user.Info()
	return &info, nil
}

// Delete removes a console account and ends its sessions.
func (s *AdminUserService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}
	if err := s.repo.RevokeUserRefreshTokens(ctx, id); err != nil {
		s.logger.Warn("failed to revoke sessions before delete", zap.String("user_id", id), zap.Error(err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete admin user", zap.String("user_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete admin")
	}
	s.logger.Info("admin deleted", zap.String("user_id", id))
	return nil
}

// Theme returns the stored console theme for the admin.
func (s *AdminUserService) Theme(ctx context.Context, id string) (string, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "admin not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}
	if user.Theme == "" {
		return "light", nil
	}
	return user.Theme, nil
}

// SetTheme stores the console theme preference.
func (s *AdminUserService) SetTheme(ctx context.Context, id, theme string) error {
	switch theme {
	case "light", "dark":
	default:
		return appErrors.Clone(appErrors.ErrValidation, "theme must be light or dark")
	}
	if err := s.repo.UpdateTheme(ctx, id, theme, s.now().UTC()); err != nil {
		s.logger.Error("update theme", zap.String("user_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update theme")
	}
	return nil
}
