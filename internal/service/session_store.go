package service

import "github.com/noah-isme/wazai-maps/internal/models"

// ChangeKind says which part of the store changed.
type ChangeKind int

const (
	ChangeSelection ChangeKind = iota + 1
	ChangeResults
)

// Change is delivered to store listeners after every state transition.
type Change struct {
	Kind       ChangeKind
	Selected   *models.Event
	Generation uint64
}

// Listener observes store changes.
type Listener func(Change)

// SessionStore is the state container of one session: the current search
// parameters, the result set of the latest search and at most one selected
// event. It is not safe for concurrent use; Session serialises access, and
// listeners run synchronously inside that critical section.
type SessionStore struct {
	params     models.SearchParams
	events     []models.Event
	selection  models.Selection
	generation uint64
	loading    bool
	lastErr    string
	listeners  []Listener
}

// NewSessionStore returns a store with default parameters and no results.
func NewSessionStore() *SessionStore {
	return &SessionStore{params: models.DefaultSearchParams(), events: []models.Event{}}
}

// Subscribe registers l for every future change.
func (s *SessionStore) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *SessionStore) Params() models.SearchParams { return s.params }
func (s *SessionStore) Generation() uint64          { return s.generation }
func (s *SessionStore) Loading() bool               { return s.loading }
func (s *SessionStore) LastError() string           { return s.lastErr }

// Events returns a copy of the current result set.
func (s *SessionStore) Events() []models.Event {
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Selected returns the selected event, if any.
func (s *SessionStore) Selected() (models.Event, bool) {
	if s.selection.Event == nil {
		return models.Event{}, false
	}
	return *s.selection.Event, true
}

// SelectedID returns the selected event id or an empty string.
func (s *SessionStore) SelectedID() string { return s.selection.ID() }

// Select replaces the selection with event.
func (s *SessionStore) Select(event models.Event) {
	selected := event
	s.selection = models.Selection{Event: &selected}
	s.notify(Change{Kind: ChangeSelection, Selected: &selected, Generation: s.generation})
}

// Clear drops the selection. Listeners only hear about it when something was selected.
func (s *SessionStore) Clear() {
	if s.selection.Event == nil {
		return
	}
	s.selection = models.Selection{}
	s.notify(Change{Kind: ChangeSelection, Generation: s.generation})
}

// BeginSearch replaces the parameters, clears the selection and returns the
// generation tag the eventual response must carry.
func (s *SessionStore) BeginSearch(params models.SearchParams) uint64 {
	s.params = params.Normalize()
	s.generation++
	s.loading = true
	s.Clear()
	return s.generation
}

// CompleteSearch applies the outcome of the search tagged gen. Responses for
// any generation but the latest are discarded and false is returned. A failed
// search keeps the previous result set and records the error.
func (s *SessionStore) CompleteSearch(gen uint64, events []models.Event, err error) bool {
	if gen != s.generation {
		return false
	}
	s.loading = false
	if err != nil {
		s.lastErr = err.Error()
		s.notify(Change{Kind: ChangeResults, Generation: gen})
		return true
	}
	if events == nil {
		events = []models.Event{}
	}
	s.events = events
	s.lastErr = ""
	if id := s.selection.ID(); id != "" {
		if _, ok := models.FindEvent(events, id); !ok {
			s.selection = models.Selection{}
		}
	}
	s.notify(Change{Kind: ChangeResults, Selected: s.selection.Event, Generation: gen})
	return true
}

func (s *SessionStore) notify(change Change) {
	for _, l := range s.listeners {
		l(change)
	}
}
