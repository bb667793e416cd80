package repository

import (
	"container/list"
	"sync"
	"time"
)

// SessionRepository keeps live sessions in memory, bounded by count and idle
// time. The least recently used entry is evicted first.
type SessionRepository[T any] struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	ll    *list.List // most recently used at front
	items map[string]*list.Element
	now   func() time.Time
}

type sessionEntry[T any] struct {
	id    string
	value T
	exp   time.Time
}

// NewSessionRepository constructs a registry holding at most maxEntries values
// that expire after ttl without access.
func NewSessionRepository[T any](maxEntries int, ttl time.Duration) *SessionRepository[T] {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionRepository[T]{
		cap:   maxEntries,
		ttl:   ttl,
		ll:    list.New(),
		items: make(map[string]*list.Element),
		now:   time.Now,
	}
}

// Put stores value under id and returns whatever had to be evicted to make room.
func (r *SessionRepository[T]) Put(id string, value T) []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp := r.now().Add(r.ttl)
	if el, ok := r.items[id]; ok {
		el.Value = sessionEntry[T]{id: id, value: value, exp: exp}
		r.ll.MoveToFront(el)
		return nil
	}
	r.items[id] = r.ll.PushFront(sessionEntry[T]{id: id, value: value, exp: exp})

	var evicted []T
	for r.ll.Len() > r.cap {
		evicted = append(evicted, r.removeElement(r.ll.Back()))
	}
	return evicted
}

// Get returns the live value for id and extends its lifetime.
func (r *SessionRepository[T]) Get(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	el, ok := r.items[id]
	if !ok {
		return zero, false
	}
	en := el.Value.(sessionEntry[T])
	now := r.now()
	if !now.Before(en.exp) {
		return zero, false
	}
	en.exp = now.Add(r.ttl)
	el.Value = en
	r.ll.MoveToFront(el)
	return en.value, true
}

// Delete removes id and returns the value it held.
func (r *SessionRepository[T]) Delete(id string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return r.removeElement(el), true
}

// Sweep drops every expired entry and returns them.
func (r *SessionRepository[T]) Sweep() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var expired []T
	for el := r.ll.Back(); el != nil; {
		prev := el.Prev()
		if now.Before(el.Value.(sessionEntry[T]).exp) {
			break
		}
		expired = append(expired, r.removeElement(el))
		el = prev
	}
	return expired
}

// Len returns the number of stored entries, expired or not.
func (r *SessionRepository[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ll.Len()
}

func (r *SessionRepository[T]) removeElement(el *list.Element) T {
	en := el.Value.(sessionEntry[T])
	r.ll.Remove(el)
	delete(r.items, en.id)
	return en.value
}
