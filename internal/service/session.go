package service

import (
	"context"
	"sync"
	"time"

	"github.com/noah-isme/wazai-maps/internal/mapview"
	"github.com/noah-isme/wazai-maps/internal/models"
	appErrors "github.com/noah-isme/wazai-maps/pkg/errors"
)

// Session is one client's map application: state container, map surface and
// display timezone. The mutex serialises every interaction, so handlers,
// search completions and redraws run one at a time.
type Session struct {
	mu        sync.Mutex
	id        string
	store     *SessionStore
	view      *MapService
	clock     *EventClock
	createdAt time.Time
	lastSeen  time.Time
	now       func() time.Time

	inflight uint64
	cancel   context.CancelFunc
	closed   bool
}

func newSession(id string, clock *EventClock, opts mapview.Options, focusZoom float64, now func() time.Time) *Session {
	store := NewSessionStore()
	created := now()
	return &Session{
		id:        id,
		store:     store,
		view:      NewMapService(store, opts, focusZoom),
		clock:     clock,
		createdAt: created,
		lastSeen:  created,
		now:       now,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// do runs fn inside the session's critical section.
func (s *Session) do(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return appErrors.ErrSessionNotFound
	}
	s.lastSeen = s.now()
	return fn()
}

// Snapshot returns the current state summary.
func (s *Session) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() models.SessionSnapshot {
	return models.SessionSnapshot{
		ID:          s.id,
		Params:      s.store.Params(),
		Generation:  s.store.Generation(),
		Loading:     s.store.Loading(),
		LastError:   s.store.LastError(),
		ResultCount: len(s.store.events),
		SelectedID:  s.store.SelectedID(),
		Timezone:    s.clock.Name(),
		CreatedAt:   s.createdAt,
		LastSeenAt:  s.lastSeen,
	}
}

// beginSearch starts a new generation and cancels the fetch of the previous one.
func (s *Session) beginSearch(params models.SearchParams) (uint64, error) {
	var gen uint64
	err := s.do(func() error {
		s.cancelInflightLocked()
		gen = s.store.BeginSearch(params)
		return nil
	})
	return gen, err
}

// startFetch hands out the context for fetching gen. It reports false when gen
// has already been superseded or the session is gone.
func (s *Session) startFetch(parent context.Context, gen uint64) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.store.Generation() {
		return nil, false
	}
	s.cancelInflightLocked()
	ctx, cancel := context.WithCancel(parent)
	s.inflight = gen
	s.cancel = cancel
	return ctx, true
}

// finishFetch releases the fetch context of gen if it is still registered.
func (s *Session) finishFetch(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == gen {
		s.cancelInflightLocked()
	}
}

// completion says what happened to a search response.
type completion int

const (
	completionApplied completion = iota
	completionStale
	completionClosed
)

// completeSearch applies a response if gen is still the latest search.
func (s *Session) completeSearch(gen uint64, events []models.Event, err error) completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == gen {
		s.cancelInflightLocked()
	}
	if s.closed {
		return completionClosed
	}
	if !s.store.CompleteSearch(gen, events, err) {
		return completionStale
	}
	return completionApplied
}

// current reports whether gen is still the search the session is waiting for.
func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && gen == s.store.Generation()
}

func (s *Session) cancelInflightLocked() {
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = nil
	s.inflight = 0
}

// close cancels any fetch and tears the map down. Later calls fail with
// ErrSessionNotFound.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelInflightLocked()
	s.view.Teardown()
	s.closed = true
}
