package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events-hub/portal-api/internal/models"
	"github.com/campus-events-hub/portal-api/internal/service"
	"github.com/campus-events-hub/portal-api/pkg/export"
)

func newRegistrationRouter(events *fakeEventSource, regRepo *fakeRegistrationRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	regSvc := service.NewRegistrationService(regRepo, nil, nil, nil)
	eventSvc := service.NewEventService(events, nil, nil, nil)
	exportSvc := service.NewExportService(
		regRepo,
		events,
		export.NewXLSXExporter("Registrations"),
		export.NewCSVExporter(),
		export.NewPDFExporter(),
		nil,
	)
	h := NewRegistrationHandler(regSvc, eventSvc, exportSvc)

	router := gin.New()
	router.GET("/admin/registrations", h.List)
	router.GET("/admin/registrations/counts", h.Counts)
	router.GET("/admin/registrations/export", h.Export)
	return router
}

func TestRegistrationCounts(t *testing.T) {
	regRepo := &fakeRegistrationRepo{counts: []models.EventRegCount{
		{EventID: 3, Title: "Hackathon", RegCount: 12},
	}}
	router := newRegistrationRouter(&fakeEventSource{}, regRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations/counts", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.EventRegCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Hackathon", body.Data[0].Title)
	assert.Equal(t, 12, body.Data[0].RegCount)
}

func TestRegistrationListByEvent(t *testing.T) {
	regRepo := &fakeRegistrationRepo{regs: []models.Registration{
		{ID: 1, EventID: 3, StudentName: "Asha", StudentEmail: "asha@campus.edu"},
		{ID: 2, EventID: 9, StudentName: "Ravi", StudentEmail: "ravi@campus.edu"},
	}}
	router := newRegistrationRouter(&fakeEventSource{}, regRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations?event_id=3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.Registration `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Asha", body.Data[0].StudentName)
}

func TestRegistrationExportCSV(t *testing.T) {
	registered := time.Date(2025, time.March, 10, 15, 4, 0, 0, time.UTC)
	events := &fakeEventSource{events: []models.Event{{ID: 3, Title: "Hackathon"}}}
	regRepo := &fakeRegistrationRepo{regs: []models.Registration{
		{ID: 1, EventID: 3, StudentName: "Asha", StudentEmail: "asha@campus.edu", StudentClass: "TE-A", StudentDept: "CSE", CreatedAt: registered},
	}}
	router := newRegistrationRouter(events, regRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations/export?event_id=3&format=csv", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="registrations-event-3.csv"`, w.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Event,Name,Email,Class,Department,RegisteredAt", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Hackathon")
	assert.Contains(t, lines[1], "asha@campus.edu")
	assert.Contains(t, lines[1], "Mar 10, 2025")
}

func TestRegistrationExportDefaultsToXLSX(t *testing.T) {
	events := &fakeEventSource{events: []models.Event{{ID: 3, Title: "Hackathon"}}}
	router := newRegistrationRouter(events, &fakeRegistrationRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="registrations-all.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestRegistrationExportRejectsUnknownFormat(t *testing.T) {
	router := newRegistrationRouter(&fakeEventSource{}, &fakeRegistrationRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/registrations/export?format=docx", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
