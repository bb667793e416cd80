package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/models"
)

func TestDetailServiceRender(t *testing.T) {
	svc := NewDetailService()
	clock := mustClock(t, "Asia/Taipei")
	event := models.Event{
		ID:          "evt-1",
		Title:       "COSCUP 2025",
		Description: "Open source conference",
		URL:         "https://coscup.org",
		Coordinates: models.Coordinates{Latitude: 25.0173456, Longitude: 121.5397891},
		Address:     "  NTUST  ",
		StartTime:   "2025-08-09T09:00:00",
		EndTime:     "2025-08-10T17:30:00",
		EventType:   models.EventTypeTechConference,
		Source:      models.SourceTaiwanTechCommunity,
		Country:     models.CountryTaiwan,
	}

	view := svc.Render(event, clock)

	assert.Equal(t, "#3B9838", view.Color)
	assert.Equal(t, "2025/08/09 09:00 (Taipei)", view.Start)
	assert.Equal(t, "2025/08/10 17:30 (Taipei)", view.End)
	assert.Equal(t, "NTUST", view.Location.Address)
	assert.Equal(t, "25.0173, 121.5398", view.Location.Coordinates)
	assert.Equal(t, []dto.DetailBadge{
		{Kind: "eventType", Label: "TECH CONFERENCE"},
		{Kind: "source", Label: "TAIWAN TECH COMMUNITY"},
		{Kind: "country", Label: "TAIWAN"},
	}, view.Badges)
}

func TestDetailServiceOmitsMissingFields(t *testing.T) {
	svc := NewDetailService()
	view := svc.Render(models.Event{ID: "x", Title: "Bare", StartTime: "soon"}, mustClock(t, "UTC"))

	assert.Equal(t, "", view.Start)
	assert.Equal(t, "", view.End)
	assert.Empty(t, view.Badges)
	assert.Equal(t, "#EF4444", view.Color)
	assert.Equal(t, "0.0000, 0.0000", view.Location.Coordinates)
}

func TestDetailServiceFormatTimeUsesEventZone(t *testing.T) {
	svc := NewDetailService()
	clock := mustClock(t, "Asia/Taipei")
	assert.Equal(t, "2025/08/10 00:30 (Tokyo)", svc.FormatTime("2025-08-10T00:30:00", models.CountryJapan, clock))
	assert.Equal(t, "2025/08/10 01:30 (Tokyo)", svc.FormatTime("2025-08-09T16:30:00Z", models.CountryJapan, clock))
}
