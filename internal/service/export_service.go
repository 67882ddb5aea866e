package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campus-events-hub/portal-api/internal/models"
	"github.com/campus-events-hub/portal-api/pkg/dates"
	appErrors "github.com/campus-events-hub/portal-api/pkg/errors"
	"github.com/campus-events-hub/portal-api/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat maps a query value to a format, defaulting to xlsx.
func ParseExportFormat(value string) (ExportFormat, error) {
	switch value {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "format must be xlsx, csv or pdf")
	}
}

// ContentType returns the MIME type for the rendered file.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Extension returns the file extension without a dot.
func (f ExportFormat) Extension() string {
	return string(f)
}

type exportRegistrationSource interface {
	ListByEvent(ctx context.Context, eventID int64) ([]models.Registration, error)
	ListAll(ctx context.Context) ([]models.Registration, error)
}

type exportEventSource interface {
	ListLite(ctx context.Context) ([]models.EventLite, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type titledRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered registration sheet ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders registration sheets for download.
type ExportService struct {
	registrations exportRegistrationSource
	events        exportEventSource
	xlsx          datasetRenderer
	csv           datasetRenderer
	pdf           titledRenderer
	logger        *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(registrations exportRegistrationSource, events exportEventSource, xlsx, csv datasetRenderer, pdf titledRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		registrations: registrations,
		events:        events,
		xlsx:          xlsx,
		csv:           csv,
		pdf:           pdf,
		logger:        logger,
	}
}

// Registration sheet column order. Consumers rely on this layout.
var registrationHeaders = []string{"ID", "Event", "Name", "Email", "Class", "Department", "RegisteredAt"}

// ExportEvent renders the registrations of one event.
func (s *ExportService) ExportEvent(ctx context.Context, eventID int64, eventTitle string, format ExportFormat) (*ExportFile, error) {
	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("load registrations for export", zap.Int64("event_id", eventID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registrations")
	}
	titles := map[int64]string{eventID: eventTitle}
	dataset := buildRegistrationDataset(regs, titles)
	return s.render(dataset, fmt.Sprintf("registrations-event-%d", eventID), "Event Registrations", format)
}

// ExportAll renders every registration across events. Event titles are
// resolved through a single lookup pass.
func (s *ExportService) ExportAll(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	regs, err := s.registrations.ListAll(ctx)
	if err != nil {
		s.logger.Error("load registrations for export", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registrations")
	}
	events, err := s.events.ListLite(ctx)
	if err != nil {
		s.logger.Error("load event titles for export", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load events")
	}
	titles := make(map[int64]string, len(events))
	for _, event := range events {
		titles[event.ID] = event.Title
	}
	dataset := buildRegistrationDataset(regs, titles)
	return s.render(dataset, "registrations-all", "All Registrations", format)
}

func (s *ExportService) render(dataset export.Dataset, basename, title string, format ExportFormat) (*ExportFile, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = s.csv.Render(dataset)
	case FormatPDF:
		data, err = s.pdf.Render(dataset, title)
	default:
		data, err = s.xlsx.Render(dataset)
	}
	if err != nil {
		s.logger.Error("render export", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s.%s", basename, format.Extension()),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func buildRegistrationDataset(regs []models.Registration, eventTitles map[int64]string) export.Dataset {
	rows := make([]map[string]string, 0, len(regs))
	for _, reg := range regs {
		title := eventTitles[reg.EventID]
		if title == "" {
			title = strconv.FormatInt(reg.EventID, 10)
		}
		rows = append(rows, map[string]string{
			"ID":           strconv.FormatInt(reg.ID, 10),
			"Event":        title,
			"Name":         reg.StudentName,
			"Email":        reg.StudentEmail,
			"Class":        reg.StudentClass,
			"Department":   reg.StudentDept,
			"RegisteredAt": dates.Display(reg.CreatedAt),
		})
	}
	return export.Dataset{Headers: registrationHeaders, Rows: rows}
}
