package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events-hub/portal-api/internal/models"
	"github.com/campus-events-hub/portal-api/pkg/export"
)

type stubExportRegSource struct {
	byEvent []models.Registration
	all     []models.Registration
}

func (s *stubExportRegSource) ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error) {
	return s.byEvent, nil
}

func (s *stubExportRegSource) ListAll(ctx context.Context) ([]models.Registration, error) {
	return s.all, nil
}

type stubExportEventSource struct {
	lite []models.EventLite
}

func (s *stubExportEventSource) ListLite(ctx context.Context) ([]models.EventLite, error) {
	return s.lite, nil
}

type capturingRenderer struct {
	dataset export.Dataset
	out     []byte
}

func (r *capturingRenderer) Render(data export.Dataset) ([]byte, error) {
	r.dataset = data
	return r.out, nil
}

type capturingTitledRenderer struct {
	dataset export.Dataset
	title   string
}

func (r *capturingTitledRenderer) Render(data export.Dataset, title string) ([]byte, error) {
	r.dataset = data
	r.title = title
	return []byte("pdf"), nil
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format, "xlsx is the default")

	format, err = ParseExportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseExportFormat("docx")
	assert.Error(t, err)
}

func TestExportEventDatasetShape(t *testing.T) {
	created := time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC)
	regs := &stubExportRegSource{byEvent: []models.Registration{{
		ID:           3,
		EventID:      7,
		StudentName:  "Asha Verma",
		StudentEmail: "asha@example.edu",
		StudentClass: "III CSE A",
		StudentDept:  "CSE",
		CreatedAt:    created,
	}}}
	xlsx := &capturingRenderer{out: []byte("xlsx")}
	svc := NewExportService(regs, &stubExportEventSource{}, xlsx, &capturingRenderer{}, &capturingTitledRenderer{}, nil)

	file, err := svc.ExportEvent(context.Background(), 7, "Hackathon", FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "registrations-event-7.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)

	assert.Equal(t, []string{"ID", "Event", "Name", "Email", "Class", "Department", "RegisteredAt"}, xlsx.dataset.Headers)
	require.Len(t, xlsx.dataset.Rows, 1)
	row := xlsx.dataset.Rows[0]
	assert.Equal(t, "3", row["ID"])
	assert.Equal(t, "Hackathon", row["Event"])
	assert.Equal(t, "Mar 10, 2025 3:04 PM", row["RegisteredAt"])
}

func TestExportAllResolvesTitles(t *testing.T) {
	regs := &stubExportRegSource{all: []models.Registration{
		{ID: 1, EventID: 7},
		{ID: 2, EventID: 9},
	}}
	events := &stubExportEventSource{lite: []models.EventLite{{ID: 7, Title: "Hackathon"}}}
	csv := &capturingRenderer{out: []byte("csv")}
	svc := NewExportService(regs, events, &capturingRenderer{}, csv, &capturingTitledRenderer{}, nil)

	file, err := svc.ExportAll(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "registrations-all.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	require.Len(t, csv.dataset.Rows, 2)
	assert.Equal(t, "Hackathon", csv.dataset.Rows[0]["Event"])
	assert.Equal(t, "9", csv.dataset.Rows[1]["Event"], "unknown events fall back to the id")
}

func TestExportPDFWithTitle(t *testing.T) {
	pdf := &capturingTitledRenderer{}
	svc := NewExportService(&stubExportRegSource{}, &stubExportEventSource{}, &capturingRenderer{}, &capturingRenderer{}, pdf, nil)

	file, err := svc.ExportAll(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "registrations-all.pdf", file.Filename)
	assert.Equal(t, "All Registrations", pdf.title)
}
