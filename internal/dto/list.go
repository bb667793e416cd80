package dto

// EventListQuery controls ordering and local filtering of the result list.
type EventListQuery struct {
	Order string `form:"order" validate:"omitempty,oneof=asc desc ASC DESC"`
	Query string `form:"q" validate:"max=200"`
}

// EventListItem is one row of the list.
type EventListItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	DisplayDate string `json:"displayDate"`
	StartTime   string `json:"startTime,omitempty"`
	SourceLabel string `json:"sourceLabel"`
	Country     string `json:"country"`
	Color       string `json:"color"`
	Selected    bool   `json:"selected"`
}

// EventList is the list surface.
type EventList struct {
	Items     []EventListItem `json:"items"`
	Total     int             `json:"total"`
	Order     string          `json:"order"`
	Loading   bool            `json:"loading"`
	LastError string          `json:"lastError,omitempty"`
}
