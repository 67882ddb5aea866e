package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-events-hub/portal-api/internal/service"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/response"
)

// FeedHandler serves the public portal endpoints.
type FeedHandler struct {
	feed          *service.FeedService
	registrations *service.RegistrationService
}

// NewFeedHandler constructs a feed handler.
func NewFeedHandler(feed *service.FeedService, registrations *service.RegistrationService) *FeedHandler {
	return &FeedHandler{feed: feed, registrations: registrations}
}

// Feed godoc
// @Summary Load the public portal feed
// @Tags Feed
// @Produce json
// @Param search query string false "Free-text search over events, announcements and winners"
// @Param department query string false "Department code filter"
// @Param chip query string false "Quick filter: all, free, today or week"
// @Success 200 {object} response.Envelope
// @Router /feed [get]
func (h *FeedHandler) Feed(c *gin.Context) {
	filters := service.FeedFilters{
		Search:     strings.TrimSpace(c.Query("search")),
		Department: strings.TrimSpace(c.Query("department")),
		Chip:       strings.TrimSpace(c.Query("chip")),
	}
	view, err := h.feed.Load(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Ticker godoc
// @Summary Advance the winner ticker
// @Tags Feed
// @Produce json
// @Param after query int false "Index of the currently shown winner"
// @Success 200 {object} response.Envelope
// @Router /feed/ticker [get]
func (h *FeedHandler) Ticker(c *gin.Context) {
	after := -1
	if raw := c.Query("after"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "after must be an integer"))
			return
		}
		after = parsed
	}
	frame, err := h.feed.Ticker(c.Request.Context(), after)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, frame, nil)
}

// Detail godoc
// @Summary Get one event with its winners
// @Tags Feed
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [get]
func (h *FeedHandler) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.feed.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Register godoc
// @Summary Register for an event
// @Tags Feed
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param payload body service.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /events/{id}/register [post]
func (h *FeedHandler) Register(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reg, err := h.registrations.Register(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reg)
}
