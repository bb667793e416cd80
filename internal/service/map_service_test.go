package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/mapview"
	"github.com/noah-isme/wazai-maps/internal/models"
)

func newTestMapService(t *testing.T) (*SessionStore, *MapService) {
	t.Helper()
	store := NewSessionStore()
	svc := NewMapService(store, mapview.Options{
		Center: mapview.LatLng{Lat: 25.0330, Lng: 121.5654},
		Zoom:   12,
		Size:   mapview.Size{Width: 800, Height: 600},
	}, DefaultFocusZoom)
	gen := store.BeginSearch(models.DefaultSearchParams())
	require.True(t, store.CompleteSearch(gen, []models.Event{
		{ID: "gdg-taipei", Title: "GDG Taipei", Coordinates: models.Coordinates{Latitude: 25.0330, Longitude: 121.5654}},
		{ID: "near", Title: "Near", Source: models.SourceMeetup, Coordinates: models.Coordinates{Latitude: 25.0500, Longitude: 121.5200}},
		{ID: "nowhere", Title: "Broken", Coordinates: models.Coordinates{Latitude: 120, Longitude: 0}},
	}, nil))
	return store, svc
}

func markerByID(t *testing.T, view dto.MapView, id string) mapview.Marker {
	t.Helper()
	for _, m := range view.Markers {
		if m.EventID == id {
			return m
		}
	}
	t.Fatalf("marker %s not found", id)
	return mapview.Marker{}
}

func TestMapServiceMirrorsResults(t *testing.T) {
	_, svc := newTestMapService(t)
	view := svc.View()

	require.Len(t, view.Markers, 2)
	gdg := markerByID(t, view, "gdg-taipei")
	assert.Equal(t, "#4285F4", gdg.Color)
	assert.Equal(t, mapview.DefaultScale, gdg.Scale)
	assert.InDelta(t, 400, gdg.Style.Left, 0.5)
	assert.InDelta(t, 300, gdg.Style.Top, 0.5)
	assert.Equal(t, "#F64060", markerByID(t, view, "near").Color)
}

func TestMapServiceMarkerClickSelectsAndFocuses(t *testing.T) {
	store, svc := newTestMapService(t)
	near := markerByID(t, svc.View(), "near")

	res := svc.Click(mapview.Point{X: near.Style.Left, Y: near.Style.Top})
	assert.Equal(t, "near", res.Target)
	assert.False(t, res.Propagated)
	assert.Equal(t, "near", res.SelectedID)
	assert.Equal(t, "near", store.SelectedID())

	view := svc.View()
	assert.Equal(t, float64(DefaultFocusZoom), view.Zoom)
	assert.InDelta(t, 25.05, view.Center.Lat, 1e-9)
	assert.InDelta(t, 121.52, view.Center.Lng, 1e-9)

	selected := markerByID(t, view, "near")
	assert.True(t, selected.Selected)
	assert.Equal(t, mapview.SelectedScale, selected.Scale)
	assert.Equal(t, mapview.SelectedZIndex, selected.ZIndex)
	assert.Equal(t, mapview.SelectedZIndex, selected.Style.ZIndex)
	assert.False(t, markerByID(t, view, "gdg-taipei").Selected)
}

func TestMapServiceFocusNeverZoomsOut(t *testing.T) {
	store, svc := newTestMapService(t)
	zoom := 18.0
	svc.Viewport(dto.ViewportRequest{Zoom: &zoom})

	store.Select(store.Events()[1])
	assert.Equal(t, 18.0, svc.View().Zoom)
}

func TestMapServiceMapClickClearsSelection(t *testing.T) {
	store, svc := newTestMapService(t)
	store.Select(store.Events()[0])

	res := svc.Click(mapview.Point{X: 2, Y: 2})
	assert.True(t, res.Propagated)
	assert.Equal(t, "", res.Target)
	assert.Equal(t, "", store.SelectedID())
}

func TestMapServiceViewportRedrawsWithoutRemounting(t *testing.T) {
	_, svc := newTestMapService(t)
	before := svc.View()

	svc.Viewport(dto.ViewportRequest{Width: 1024, Height: 768})
	after := svc.View()

	assert.Greater(t, after.Redraws, before.Redraws)
	assert.Equal(t, mapview.Size{Width: 1024, Height: 768}, after.Size)
	gdg := markerByID(t, after, "gdg-taipei")
	assert.InDelta(t, 512, gdg.Style.Left, 0.5)
	assert.InDelta(t, 384, gdg.Style.Top, 0.5)
}

func TestMapServiceTeardownUnmountsMarkers(t *testing.T) {
	_, svc := newTestMapService(t)
	svc.Teardown()
	assert.Equal(t, 0, svc.m.Panes().OverlayMouseTarget.Len())
}
