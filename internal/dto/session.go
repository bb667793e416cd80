package dto

// CreateSessionRequest opens a new map session. Every field is optional; the
// first search runs with Search or the default parameters.
type CreateSessionRequest struct {
	Timezone string         `json:"timezone" validate:"omitempty,max=64,iana_tz"`
	Width    int            `json:"width" validate:"omitempty,min=1,max=10000"`
	Height   int            `json:"height" validate:"omitempty,min=1,max=10000"`
	Search   *SearchRequest `json:"search"`
}
