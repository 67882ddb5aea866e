package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-events-hub/portal-api/internal/service"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/response"
)

// RegistrationHandler handles the admin registration views and exports.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	events        *service.EventService
	exports       *service.ExportService
}

// NewRegistrationHandler constructs a registration handler.
func NewRegistrationHandler(registrations *service.RegistrationService, events *service.EventService, exports *service.ExportService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, events: events, exports: exports}
}

// List godoc
// @Summary List registrations
// @Tags Registrations
// @Produce json
// @Param event_id query int false "Restrict to one event"
// @Success 200 {object} response.Envelope
// @Router /admin/registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	if raw := c.Query("event_id"); raw != "" {
		eventID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || eventID <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid event_id"))
			return
		}
		regs, err := h.registrations.ListByEvent(c.Request.Context(), eventID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, regs, nil)
		return
	}
	regs, err := h.registrations.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, regs, nil)
}

// Counts godoc
// @Summary Per-event registration totals
// @Tags Registrations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/registrations/counts [get]
func (h *RegistrationHandler) Counts(c *gin.Context) {
	counts, err := h.registrations.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts, nil)
}

// Export godoc
// @Summary Download registrations as a spreadsheet
// @Tags Registrations
// @Produce application/octet-stream
// @Param event_id query int false "Restrict to one event"
// @Param format query string false "xlsx (default), csv or pdf"
// @Success 200 {file} binary
// @Router /admin/registrations/export [get]
func (h *RegistrationHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var file *service.ExportFile
	if raw := c.Query("event_id"); raw != "" {
		eventID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || eventID <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid event_id"))
			return
		}
		event, getErr := h.events.Get(c.Request.Context(), eventID)
		if getErr != nil {
			response.Error(c, getErr)
			return
		}
		file, err = h.exports.ExportEvent(c.Request.Context(), eventID, event.Title, format)
	} else {
		file, err = h.exports.ExportAll(c.Request.Context(), format)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
