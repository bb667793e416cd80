package mapview

import (
	"strings"

	"github.com/noah-isme/wazai-maps/internal/models"
)

// DefaultColor is used when neither a brand nor a provider matches.
const DefaultColor = "#EF4444"

type brandColor struct {
	keyword string
	color   string
}

// brandColors are checked in order; the first keyword found wins.
var brandColors = []brandColor{
	{keyword: "gdg", color: "#4285F4"},
	{keyword: "aws", color: "#FF9900"},
	{keyword: "coscup", color: "#3B9838"},
	{keyword: "pycon", color: "#3776AB"},
	{keyword: "hitcon", color: "#00B140"},
	{keyword: "g0v", color: "#1F1F1F"},
	{keyword: "jsdc", color: "#F7DF1E"},
}

var sourceColors = map[models.DataSource]string{
	models.SourceConnpass:            "#B8312F",
	models.SourceMeetup:              "#F64060",
	models.SourceTechPlay:            "#00A0E9",
	models.SourceTaiwanTechCommunity: "#7C3AED",
}

// ColorFor derives the marker color for an event. Brand keywords in the id or
// title take precedence over the provider tag.
func ColorFor(title, id string, source models.DataSource) string {
	haystackID := strings.ToLower(id)
	haystackTitle := strings.ToLower(title)
	for _, brand := range brandColors {
		if strings.Contains(haystackID, brand.keyword) || strings.Contains(haystackTitle, brand.keyword) {
			return brand.color
		}
	}
	if color, ok := sourceColors[source]; ok {
		return color
	}
	return DefaultColor
}

// EventColor is ColorFor applied to an event.
func EventColor(event models.Event) string {
	return ColorFor(event.Title, event.ID, event.Source)
}

// Palette lists every color ColorFor can return.
func Palette() []string {
	out := make([]string, 0, len(brandColors)+len(sourceColors)+1)
	for _, brand := range brandColors {
		out = append(out, brand.color)
	}
	for _, source := range []models.DataSource{
		models.SourceConnpass, models.SourceMeetup, models.SourceTechPlay, models.SourceTaiwanTechCommunity,
	} {
		out = append(out, sourceColors[source])
	}
	return append(out, DefaultColor)
}
