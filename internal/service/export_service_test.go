package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/models"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
	"github.com/noah-isme/wazai-maps/pkg/export"
)

type pdfRendererStub struct {
	got export.Dataset
	err error
}

func (p *pdfRendererStub) Render(data export.Dataset) ([]byte, error) {
	p.got = data
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-stub"), nil
}

func exportEvents() []models.Event {
	return []models.Event{
		{
			ID: "evt-1", Title: "PyCon TW", StartTime: "2025-09-06T09:00:00", EndTime: "2025-09-06T18:00:00",
			Country: models.CountryTaiwan, Source: models.SourceTaiwanTechCommunity, EventType: models.EventTypeConference,
			Address: "Academia Sinica", URL: "https://tw.pycon.org",
			Coordinates: models.Coordinates{Latitude: 25.0419, Longitude: 121.6147},
		},
		{
			ID: "evt-2", Title: "Undated meetup", Country: models.CountryJapan, Source: models.SourceConnpass,
			Coordinates: models.Coordinates{Latitude: 35.6812, Longitude: 139.7671},
		},
	}
}

func newExportServiceForTest(pdf pdfRenderer) *ExportService {
	svc := NewExportService(nil, pdf, nil)
	svc.now = func() time.Time { return time.Date(2025, 8, 1, 12, 30, 0, 0, time.UTC) }
	return svc
}

func TestExportServiceCSV(t *testing.T) {
	svc := newExportServiceForTest(nil)
	params := models.SearchParams{Keyword: "py", Country: "TW", Provider: "TAIWAN_TECH_COMMUNITY"}

	file, err := svc.Render("csv", exportEvents(), params, mustClock(t, "Asia/Taipei"))
	require.NoError(t, err)
	assert.Equal(t, "wazai-events_tw_taiwan-tech-community_20250801-123000.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(file.Body, []byte("\xEF\xBB\xBF")))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "PyCon TW", rows[1][0])
	assert.Equal(t, "2025/09/06 09:00 (Taipei)", rows[1][1])
	assert.Equal(t, "Academia Sinica", rows[1][6])
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "35.6812, 139.7671", rows[2][6])
}

func TestExportServicePDFUsesRenderer(t *testing.T) {
	pdf := &pdfRendererStub{}
	svc := newExportServiceForTest(pdf)

	file, err := svc.Render("PDF", exportEvents(), models.DefaultSearchParams(), mustClock(t, "UTC"))
	require.NoError(t, err)
	assert.Equal(t, "wazai-events_20250801-123000.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "Wazai events", pdf.got.Title)
	assert.Len(t, pdf.got.Rows, 2)

	pdf.err = errors.New("font missing")
	_, err = svc.Render("pdf", exportEvents(), models.DefaultSearchParams(), mustClock(t, "UTC"))
	assert.Error(t, err)
}

func TestExportServiceICSSkipsUndated(t *testing.T) {
	svc := newExportServiceForTest(nil)

	file, err := svc.Render("ics", exportEvents(), models.DefaultSearchParams(), mustClock(t, "UTC"))
	require.NoError(t, err)
	body := string(file.Body)
	assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "DTSTART:20250906T010000Z")
	assert.Contains(t, body, "SUMMARY:PyCon TW")

	again, err := svc.Render("ics", exportEvents(), models.DefaultSearchParams(), mustClock(t, "UTC"))
	require.NoError(t, err)
	uid := func(b string) string {
		start := strings.Index(b, "UID:")
		return b[start : start+strings.Index(b[start:], "\r\n")]
	}
	assert.Equal(t, uid(body), uid(string(again.Body)))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(nil)
	_, err := svc.Render("xlsx", nil, models.DefaultSearchParams(), mustClock(t, "UTC"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "text/calendar; charset=utf-8", contentTypeFor("a.ics"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("a.bin"))
	assert.Equal(t, exportContentTypes[dto.ExportFormatPDF], contentTypeFor("events.pdf"))
}
