package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/wazai-maps/internal/models"
)

func TestColorFor(t *testing.T) {
	cases := []struct {
		name   string
		title  string
		id     string
		source models.DataSource
		want   string
	}{
		{name: "brand in title", title: "GDG Taipei DevFest", id: "x-1", source: models.SourceConnpass, want: "#4285F4"},
		{name: "brand in id", title: "Cloud day", id: "aws-summit-2025", source: models.SourceMeetup, want: "#FF9900"},
		{name: "brand priority", title: "PyCon after GDG", id: "1", source: models.SourceUnknown, want: "#4285F4"},
		{name: "case insensitive", title: "HITCON CMT", id: "2", want: "#00B140"},
		{name: "g0v", title: "g0v hackath0n", id: "3", want: "#1F1F1F"},
		{name: "connpass", title: "Go meetup", id: "4", source: models.SourceConnpass, want: "#B8312F"},
		{name: "meetup", title: "Rust night", id: "5", source: models.SourceMeetup, want: "#F64060"},
		{name: "techplay", title: "LT", id: "6", source: models.SourceTechPlay, want: "#00A0E9"},
		{name: "taiwan community", title: "Tea time", id: "7", source: models.SourceTaiwanTechCommunity, want: "#7C3AED"},
		{name: "default", title: "Unknown", id: "8", source: models.SourceDoorkeeper, want: DefaultColor},
		{name: "empty", want: DefaultColor},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ColorFor(tc.title, tc.id, tc.source))
		})
	}
}

func TestColorForIsTotal(t *testing.T) {
	palette := Palette()
	assert.Len(t, palette, 12)

	titles := []string{"", "gdg", "Weird ✨ title", "AWS", "jsdc", "coscup 2025", "random"}
	sources := []models.DataSource{
		models.SourceConnpass, models.SourceTaiwanTechCommunity, models.SourceAWSEvents,
		models.SourceGoogleCommunity, models.SourceMeetup, models.SourceTechPlay,
		models.SourceDoorkeeper, models.SourceUnknown, models.DataSource("SOMETHING_NEW"),
	}
	for _, title := range titles {
		for _, source := range sources {
			color := ColorFor(title, "id", source)
			assert.Contains(t, palette, color)
			assert.Equal(t, color, ColorFor(title, "id", source))
		}
	}
}
