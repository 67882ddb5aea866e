package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-events-hub/portal-api/internal/middleware"
	"github.com/campus-events-hub/portal-api/internal/service"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/response"
)

// AdminUserHandler handles console account management and preferences.
type AdminUserHandler struct {
	service *service.AdminUserService
}

// NewAdminUserHandler constructs an admin-user handler.
func NewAdminUserHandler(svc *service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{service: svc}
}

// List godoc
// @Summary List console accounts
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, nil)
}

// Create godoc
// @Summary Provision a console account
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateAdminRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Router /admin/users [post]
func (h *AdminUserHandler) Create(c *gin.Context) {
	var req service.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Delete godoc
// @Summary Remove a console account
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 204
// @Router /admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id"))
		return
	}
	if claims, ok := middleware.CurrentClaims(c); ok && claims.UserID == id {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "cannot delete your own account"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetTheme godoc
// @Summary Get the caller's console theme
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/preferences/theme [get]
func (h *AdminUserHandler) GetTheme(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	theme, err := h.service.Theme(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"theme": theme}, nil)
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// SetTheme godoc
// @Summary Set the caller's console theme
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body themeRequest true "Theme payload"
// @Success 204
// @Router /admin/preferences/theme [put]
func (h *AdminUserHandler) SetTheme(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.SetTheme(c.Request.Context(), claims.UserID, req.Theme); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
