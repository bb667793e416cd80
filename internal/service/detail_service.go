package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/mapview"
	"github.com/noah-isme/wazai-maps/internal/models"
)

const detailTimeLayout = "2006/01/02 15:04"

// DetailService renders the detail panel for a selected event.
type DetailService struct{}

// NewDetailService constructs a DetailService.
func NewDetailService() *DetailService {
	return &DetailService{}
}

// Render builds the panel. Missing optional fields are left out rather than failing.
func (s *DetailService) Render(event models.Event, clock *EventClock) dto.DetailView {
	view := dto.DetailView{
		ID:          event.ID,
		Title:       event.Title,
		Color:       mapview.EventColor(event),
		Badges:      badges(event),
		Start:       s.FormatTime(event.StartTime, event.Country, clock),
		End:         s.FormatTime(event.EndTime, event.Country, clock),
		Description: event.Description,
		URL:         event.URL,
		Location: dto.DetailLocation{
			Address:   strings.TrimSpace(event.Address),
			Latitude:  event.Coordinates.Latitude,
			Longitude: event.Coordinates.Longitude,
			Coordinates: fmt.Sprintf("%.4f, %.4f",
				event.Coordinates.Latitude, event.Coordinates.Longitude),
		},
	}
	return view
}

// FormatTime renders a timestamp as "YYYY/MM/DD HH:mm (City)" in the event's
// zone. Unparseable input yields an empty string.
func (s *DetailService) FormatTime(raw string, country models.Country, clock *EventClock) string {
	t, ok := clock.Resolve(raw, country)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s (%s)", clock.InEventZone(t, country).Format(detailTimeLayout), clock.ZoneLabel(country))
}

func badges(event models.Event) []dto.DetailBadge {
	out := make([]dto.DetailBadge, 0, 3)
	if event.EventType != "" {
		out = append(out, dto.DetailBadge{Kind: "eventType", Label: models.Label(event.EventType)})
	}
	if event.Source != "" {
		out = append(out, dto.DetailBadge{Kind: "source", Label: models.Label(event.Source)})
	}
	if event.Country != "" {
		out = append(out, dto.DetailBadge{Kind: "country", Label: string(event.Country)})
	}
	return out
}
