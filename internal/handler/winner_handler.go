package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-events-hub/portal-api/internal/service"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/response"
)

// WinnerHandler handles the admin winner endpoints.
type WinnerHandler struct {
	service *service.WinnerService
}

// NewWinnerHandler constructs a winner handler.
func NewWinnerHandler(svc *service.WinnerService) *WinnerHandler {
	return &WinnerHandler{service: svc}
}

// List godoc
// @Summary List winners
// @Tags Winners
// @Produce json
// @Param search query string false "Search keyword"
// @Success 200 {object} response.Envelope
// @Router /admin/winners [get]
func (h *WinnerHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Create winner
// @Tags Winners
// @Accept json
// @Produce json
// @Param payload body service.WinnerRequest true "Winner payload"
// @Success 201 {object} response.Envelope
// @Router /admin/winners [post]
func (h *WinnerHandler) Create(c *gin.Context) {
	var req service.WinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update winner
// @Tags Winners
// @Accept json
// @Produce json
// @Param id path int true "Winner ID"
// @Param payload body service.WinnerRequest true "Winner payload"
// @Success 200 {object} response.Envelope
// @Router /admin/winners/{id} [put]
func (h *WinnerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.WinnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete winner
// @Tags Winners
// @Produce json
// @Param id path int true "Winner ID"
// @Success 204
// @Router /admin/winners/{id} [delete]
func (h *WinnerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
