package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/models"
)

func sampleEvent(id string, lat, lng float64) models.Event {
	return models.Event{
		ID:          id,
		Title:       "Event " + id,
		Coordinates: models.Coordinates{Latitude: lat, Longitude: lng},
		Source:      models.SourceConnpass,
		Country:     models.CountryTaiwan,
	}
}

func TestMarkerSetSyncReusesOverlays(t *testing.T) {
	m := newTestMap()
	set := NewMarkerSet(m, nil)

	set.Sync([]models.Event{sampleEvent("a", 25.03, 121.56), sampleEvent("b", 25.04, 121.57)}, "")
	require.Equal(t, 2, set.Len())
	first, ok := set.Overlay("a")
	require.True(t, ok)
	container := first.Container()

	set.Sync([]models.Event{sampleEvent("a", 25.03, 121.56), sampleEvent("c", 25.05, 121.58)}, "a")

	again, ok := set.Overlay("a")
	require.True(t, ok)
	assert.Same(t, first, again)
	assert.Same(t, container, again.Container())
	_, ok = set.Overlay("b")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Overlays())
	assert.Equal(t, 2, m.Panes().OverlayMouseTarget.Len())
}

func TestMarkerSetSkipsDuplicatesAndInvalidPositions(t *testing.T) {
	m := newTestMap()
	set := NewMarkerSet(m, nil)

	set.Sync([]models.Event{
		sampleEvent("a", 25.03, 121.56),
		sampleEvent("a", 26, 122),
		sampleEvent("bad", 120, 121),
		sampleEvent("", 25, 121),
	}, "")

	markers := set.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, "a", markers[0].EventID)
	assert.Equal(t, LatLng{Lat: 25.03, Lng: 121.56}, markers[0].Position)
}

func TestMarkerSetSelectedVisual(t *testing.T) {
	m := newTestMap()
	set := NewMarkerSet(m, nil)
	set.Sync([]models.Event{sampleEvent("a", 25.03, 121.56), sampleEvent("b", 25.04, 121.57)}, "b")

	markers := set.Markers()
	require.Len(t, markers, 2)

	assert.False(t, markers[0].Selected)
	assert.Equal(t, DefaultScale, markers[0].Scale)
	assert.Equal(t, HoverScale, markers[0].HoverScale)
	assert.Equal(t, DefaultZIndex, markers[0].Style.ZIndex)
	assert.True(t, markers[0].Halo)

	assert.True(t, markers[1].Selected)
	assert.Equal(t, SelectedScale, markers[1].Scale)
	assert.Equal(t, SelectedZIndex, markers[1].Style.ZIndex)
	assert.True(t, markers[1].Halo)

	set.Sync([]models.Event{sampleEvent("a", 25.03, 121.56), sampleEvent("b", 25.04, 121.57)}, "")
	for _, marker := range set.Markers() {
		assert.False(t, marker.Selected)
		assert.Equal(t, DefaultZIndex, marker.Style.ZIndex)
	}
}

func TestMarkerClickSelectsWithoutReachingMap(t *testing.T) {
	m := newTestMap()
	var selected []models.Event
	set := NewMarkerSet(m, func(e models.Event) { selected = append(selected, e) })
	var mapClicks int
	m.OnClick(func(ClickEvent) { mapClicks++ })

	event := sampleEvent("a", taipei101.Lat, taipei101.Lng)
	event.Description = "full payload"
	set.Sync([]models.Event{event}, "")

	res := m.Click(Point{X: 400, Y: 300})

	assert.False(t, res.Propagated)
	assert.Zero(t, mapClicks)
	require.Len(t, selected, 1)
	assert.Equal(t, event, selected[0])
}

func TestMarkerSetClear(t *testing.T) {
	m := newTestMap()
	set := NewMarkerSet(m, nil)
	set.Sync([]models.Event{sampleEvent("a", 25.03, 121.56)}, "")

	set.Clear()

	assert.Zero(t, set.Len())
	assert.Zero(t, m.Overlays())
	assert.Zero(t, m.Panes().OverlayMouseTarget.Len())
}
