package models

import "time"

// Selection is at most one event. A nil pointer means nothing is selected.
type Selection struct {
	Event *Event `json:"event,omitempty"`
}

// ID returns the selected event id or an empty string.
func (s Selection) ID() string {
	if s.Event == nil {
		return ""
	}
	return s.Event.ID
}

// SessionSnapshot is a read-only view of one session's state container.
type SessionSnapshot struct {
	ID          string       `json:"id"`
	Params      SearchParams `json:"params"`
	Generation  uint64       `json:"generation"`
	Loading     bool         `json:"loading"`
	LastError   string       `json:"lastError,omitempty"`
	ResultCount int          `json:"resultCount"`
	SelectedID  string       `json:"selectedId,omitempty"`
	Timezone    string       `json:"timezone"`
	CreatedAt   time.Time    `json:"createdAt"`
	LastSeenAt  time.Time    `json:"lastSeenAt"`
}
