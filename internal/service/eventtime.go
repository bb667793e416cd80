package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/wazai-maps/internal/models"
)

// DefaultDisplayTimezone is used when a session does not name one.
const DefaultDisplayTimezone = "Asia/Taipei"

var (
	taiwanZone = time.FixedZone("Asia/Taipei", 8*60*60)
	japanZone  = time.FixedZone("Asia/Tokyo", 9*60*60)
)

// naiveLayouts are tried in order for timestamps without an offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// EventClock resolves naive event timestamps into instants and formats them.
// TAIWAN and JAPAN events are read at +08:00 and +09:00; anything else is read
// in the display timezone.
type EventClock struct {
	display *time.Location
	name    string
}

// NewEventClock loads the display timezone by IANA name.
func NewEventClock(tzName string) (*EventClock, error) {
	tzName = strings.TrimSpace(tzName)
	if tzName == "" {
		tzName = DefaultDisplayTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tzName, err)
	}
	return &EventClock{display: loc, name: tzName}, nil
}

// Display returns the display timezone.
func (c *EventClock) Display() *time.Location { return c.display }

// Name returns the display timezone's IANA name.
func (c *EventClock) Name() string { return c.name }

// LocationFor returns the zone an event's timestamps are read in.
func (c *EventClock) LocationFor(country models.Country) *time.Location {
	switch country {
	case models.CountryTaiwan:
		return taiwanZone
	case models.CountryJapan:
		return japanZone
	default:
		return c.display
	}
}

// ZoneLabel is the short city name shown next to formatted times.
func (c *EventClock) ZoneLabel(country models.Country) string {
	name := c.LocationFor(country).String()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Resolve parses raw for an event from country. Empty or malformed input
// reports false.
func (c *EventClock) Resolve(raw string, country models.Country) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	loc := c.LocationFor(country)
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StartOf resolves an event's start.
func (c *EventClock) StartOf(event models.Event) (time.Time, bool) {
	return c.Resolve(event.StartTime, event.Country)
}

// InEventZone converts t into the event's own zone for display.
func (c *EventClock) InEventZone(t time.Time, country models.Country) time.Time {
	return t.In(c.LocationFor(country))
}

// DayKey buckets t by calendar day in the display timezone.
func (c *EventClock) DayKey(t time.Time) string {
	return t.In(c.display).Format(dayLayout)
}

const dayLayout = "2006-01-02"
