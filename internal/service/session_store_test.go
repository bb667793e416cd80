package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/models"
)

func storeEvents() []models.Event {
	return []models.Event{
		{ID: "a", Title: "A", Coordinates: models.Coordinates{Latitude: 25.03, Longitude: 121.56}},
		{ID: "b", Title: "B", Coordinates: models.Coordinates{Latitude: 35.68, Longitude: 139.76}},
	}
}

func TestSessionStoreSelectionReplacesAndClears(t *testing.T) {
	store := NewSessionStore()
	var changes []Change
	store.Subscribe(func(c Change) { changes = append(changes, c) })

	events := storeEvents()
	store.Select(events[0])
	store.Select(events[1])

	selected, ok := store.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", selected.ID)

	store.Clear()
	_, ok = store.Selected()
	assert.False(t, ok)
	assert.Equal(t, "", store.SelectedID())

	// clearing an empty selection is silent
	store.Clear()
	require.Len(t, changes, 3)
	assert.Equal(t, "a", changes[0].Selected.ID)
	assert.Equal(t, "b", changes[1].Selected.ID)
	assert.Nil(t, changes[2].Selected)
}

func TestSessionStoreBeginSearchClearsSelection(t *testing.T) {
	store := NewSessionStore()
	store.Select(storeEvents()[0])

	gen := store.BeginSearch(models.SearchParams{Keyword: "  rust ", Country: "jp"})
	assert.Equal(t, uint64(1), gen)
	assert.True(t, store.Loading())
	assert.Equal(t, "", store.SelectedID())
	assert.Equal(t, models.SearchParams{Keyword: "rust", Country: "JP", Provider: models.FilterAll}, store.Params())
}

func TestSessionStoreDiscardsStaleCompletion(t *testing.T) {
	store := NewSessionStore()
	first := store.BeginSearch(models.DefaultSearchParams())
	second := store.BeginSearch(models.SearchParams{Country: "TW"})

	fresh := []models.Event{{ID: "fresh"}}
	assert.True(t, store.CompleteSearch(second, fresh, nil))
	assert.False(t, store.CompleteSearch(first, []models.Event{{ID: "stale"}}, nil))

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "fresh", events[0].ID)
	assert.False(t, store.Loading())
}

func TestSessionStoreFailureKeepsResults(t *testing.T) {
	store := NewSessionStore()
	gen := store.BeginSearch(models.DefaultSearchParams())
	require.True(t, store.CompleteSearch(gen, storeEvents(), nil))

	gen = store.BeginSearch(models.DefaultSearchParams())
	require.True(t, store.CompleteSearch(gen, nil, errors.New("upstream down")))

	assert.Len(t, store.Events(), 2)
	assert.Equal(t, "upstream down", store.LastError())
	assert.False(t, store.Loading())

	gen = store.BeginSearch(models.DefaultSearchParams())
	require.True(t, store.CompleteSearch(gen, nil, nil))
	assert.Empty(t, store.Events())
	assert.Equal(t, "", store.LastError())
}

func TestSessionStoreDropsSelectionMissingFromNewResults(t *testing.T) {
	store := NewSessionStore()
	gen := store.BeginSearch(models.DefaultSearchParams())
	store.CompleteSearch(gen, storeEvents(), nil)
	store.Select(storeEvents()[1])

	// a completion for the current generation after a selection was made
	require.True(t, store.CompleteSearch(gen, storeEvents()[:1], nil))
	assert.Equal(t, "", store.SelectedID())
}

func TestSessionStoreEventsReturnsCopy(t *testing.T) {
	store := NewSessionStore()
	gen := store.BeginSearch(models.DefaultSearchParams())
	store.CompleteSearch(gen, storeEvents(), nil)

	events := store.Events()
	events[0].ID = "mutated"
	assert.Equal(t, "a", store.Events()[0].ID)
}
