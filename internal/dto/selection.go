package dto

// SelectRequest selects an event from the current result set.
type SelectRequest struct {
	EventID string `json:"eventId" validate:"required,max=256"`
}
