package models

import "strings"

// EventType categorises an event.
type EventType string

const (
	EventTypeTechMeetup         EventType = "TECH_MEETUP"
	EventTypeConference         EventType = "CONFERENCE"
	EventTypeTechConference     EventType = "TECH_CONFERENCE"
	EventTypeWorkshop           EventType = "WORKSHOP"
	EventTypeCommunityGathering EventType = "COMMUNITY_GATHERING"
	EventTypeStudyGroup         EventType = "STUDY_GROUP"
	EventTypeHackathon          EventType = "HACKATHON"
)

// DataSource identifies the provider an event was collected from.
type DataSource string

const (
	SourceConnpass            DataSource = "CONNPASS"
	SourceTaiwanTechCommunity DataSource = "TAIWAN_TECH_COMMUNITY"
	SourceAWSEvents           DataSource = "AWS_EVENTS"
	SourceGoogleCommunity     DataSource = "GOOGLE_COMMUNITY"
	SourceMeetup              DataSource = "MEETUP"
	SourceTechPlay            DataSource = "TECHPLAY"
	SourceDoorkeeper          DataSource = "DOORKEEPER"
	SourceUnknown             DataSource = "UNKNOWN"
)

// Country drives the timezone an event's naive timestamps are read in.
type Country string

const (
	CountryTaiwan  Country = "TAIWAN"
	CountryJapan   Country = "JAPAN"
	CountryDefault Country = "DEFAULT"
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Event is a single map item as returned by the search API. Timestamps are
// kept verbatim; they carry no zone and are resolved through Country.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Coordinates Coordinates `json:"coordinates"`
	Address     string      `json:"address,omitempty"`
	StartTime   string      `json:"startTime,omitempty"`
	EndTime     string      `json:"endTime,omitempty"`
	EventType   EventType   `json:"eventType,omitempty"`
	Source      DataSource  `json:"source"`
	Country     Country     `json:"country"`
}

// HasStart reports whether the event carries a start timestamp at all.
func (e Event) HasStart() bool {
	return strings.TrimSpace(e.StartTime) != ""
}

// Label turns an enum value such as TAIWAN_TECH_COMMUNITY into "TAIWAN TECH COMMUNITY".
func Label[T ~string](value T) string {
	return strings.ReplaceAll(string(value), "_", " ")
}

// FindEvent returns the event with the given id from the set.
func FindEvent(events []Event, id string) (Event, bool) {
	for _, event := range events {
		if event.ID == id {
			return event, true
		}
	}
	return Event{}, false
}
