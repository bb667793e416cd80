package service

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/models"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/export"
)

const icsProductID = "-//wazai-maps//event map//EN"

// uidNamespace keeps calendar UIDs stable across exports of the same event.
var uidNamespace = uuid.MustParse("6f1c7a0e-4b7d-4c8e-9a51-0d2f3c4b5a69")

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type icsRenderer interface {
	Render(name string, entries []export.CalendarEntry) ([]byte, error)
}

var exportContentTypes = map[string]string{
	dto.ExportFormatCSV: "text/csv; charset=utf-8",
	dto.ExportFormatPDF: "application/pdf",
	dto.ExportFormatICS: "text/calendar; charset=utf-8",
}

func contentTypeFor(name string) string {
	if ct, ok := exportContentTypes[strings.TrimPrefix(path.Ext(name), ".")]; ok {
		return ct
	}
	return "application/octet-stream"
}

var exportHeaders = []string{"Title", "Start", "End", "Type", "Source", "Country", "Location", "URL"}

// ExportService renders the current list as CSV, PDF or iCalendar.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	ics    icsRenderer
	detail *DetailService
	now    func() time.Time
}

// NewExportService constructs an ExportService; nil renderers use the defaults.
func NewExportService(csv csvRenderer, pdf pdfRenderer, ics icsRenderer) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter(true)
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if ics == nil {
		ics = export.NewICSExporter(icsProductID)
	}
	return &ExportService{csv: csv, pdf: pdf, ics: ics, detail: NewDetailService(), now: time.Now}
}

// Render exports events, already in display order, in the requested format.
func (s *ExportService) Render(format string, events []models.Event, params models.SearchParams, clock *EventClock) (dto.ExportFile, error) {
	base := s.filename(params)
	switch strings.ToLower(format) {
	case dto.ExportFormatCSV:
		body, err := s.csv.Render(s.dataset(events, params, clock))
		if err != nil {
			return dto.ExportFile{}, err
		}
		return dto.ExportFile{Filename: base + ".csv", ContentType: exportContentTypes[dto.ExportFormatCSV], Body: body}, nil
	case dto.ExportFormatPDF:
		body, err := s.pdf.Render(s.dataset(events, params, clock))
		if err != nil {
			return dto.ExportFile{}, err
		}
		return dto.ExportFile{Filename: base + ".pdf", ContentType: exportContentTypes[dto.ExportFormatPDF], Body: body}, nil
	case dto.ExportFormatICS:
		body, err := s.ics.Render(title(params), s.entries(events, clock))
		if err != nil {
			return dto.ExportFile{}, err
		}
		return dto.ExportFile{Filename: base + ".ics", ContentType: exportContentTypes[dto.ExportFormatICS], Body: body}, nil
	default:
		return dto.ExportFile{}, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *ExportService) dataset(events []models.Event, params models.SearchParams, clock *EventClock) export.Dataset {
	rows := make([]map[string]string, 0, len(events))
	for _, event := range events {
		location := strings.TrimSpace(event.Address)
		if location == "" {
			location = fmt.Sprintf("%.4f, %.4f", event.Coordinates.Latitude, event.Coordinates.Longitude)
		}
		rows = append(rows, map[string]string{
			"Title":    event.Title,
			"Start":    s.detail.FormatTime(event.StartTime, event.Country, clock),
			"End":      s.detail.FormatTime(event.EndTime, event.Country, clock),
			"Type":     models.Label(event.EventType),
			"Source":   models.Label(event.Source),
			"Country":  string(event.Country),
			"Location": location,
			"URL":      event.URL,
		})
	}
	return export.Dataset{
		Title:   title(params),
		Headers: exportHeaders,
		Widths:  []float64{4, 2.2, 2.2, 1.6, 1.8, 1.2, 3, 3.5},
		Rows:    rows,
	}
}

func (s *ExportService) entries(events []models.Event, clock *EventClock) []export.CalendarEntry {
	out := make([]export.CalendarEntry, 0, len(events))
	for _, event := range events {
		start, ok := clock.StartOf(event)
		if !ok {
			continue
		}
		end, _ := clock.Resolve(event.EndTime, event.Country)
		out = append(out, export.CalendarEntry{
			UID:         uuid.NewSHA1(uidNamespace, []byte(event.ID)).String() + "@wazai-maps",
			Summary:     event.Title,
			Description: event.Description,
			Location:    event.Address,
			URL:         event.URL,
			Start:       start,
			End:         end,
			Latitude:    event.Coordinates.Latitude,
			Longitude:   event.Coordinates.Longitude,
			HasGeo:      true,
		})
	}
	return out
}

func (s *ExportService) filename(params models.SearchParams) string {
	parts := []string{"wazai-events"}
	if params.Country != "" && params.Country != models.FilterAll {
		parts = append(parts, strings.ToLower(params.Country))
	}
	if params.Provider != "" && params.Provider != models.FilterAll {
		parts = append(parts, slug(params.Provider))
	}
	parts = append(parts, s.now().UTC().Format("20060102-150405"))
	return strings.Join(parts, "_")
}

func slug(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, s)
}

func title(params models.SearchParams) string {
	if params.Keyword == "" {
		return "Wazai events"
	}
	return fmt.Sprintf("Wazai events: %s", params.Keyword)
}
