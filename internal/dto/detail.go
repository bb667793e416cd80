package dto

// DetailBadge is a small label shown under the title.
type DetailBadge struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

// DetailLocation describes where the event happens.
type DetailLocation struct {
	Address     string  `json:"address,omitempty"`
	Coordinates string  `json:"coordinates"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// DetailView is the detail panel for the selected event.
type DetailView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Color       string         `json:"color"`
	Badges      []DetailBadge  `json:"badges"`
	Start       string         `json:"start,omitempty"`
	End         string         `json:"end,omitempty"`
	Location    DetailLocation `json:"location"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
}
