package mapview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taipei101 = LatLng{Lat: 25.0330, Lng: 121.5654}

func TestMercatorProjectionCentre(t *testing.T) {
	proj := NewMercatorProjection(taipei101, 9, Size{Width: 1280, Height: 800})

	pt, ok := proj.FromLatLngToDivPixel(taipei101)
	require.True(t, ok)
	assert.InDelta(t, 640, pt.X, 1e-6)
	assert.InDelta(t, 400, pt.Y, 1e-6)
}

func TestMercatorProjectionDirections(t *testing.T) {
	proj := NewMercatorProjection(taipei101, 12, Size{Width: 800, Height: 600})

	east, ok := proj.FromLatLngToDivPixel(LatLng{Lat: taipei101.Lat, Lng: taipei101.Lng + 0.01})
	require.True(t, ok)
	north, ok := proj.FromLatLngToDivPixel(LatLng{Lat: taipei101.Lat + 0.01, Lng: taipei101.Lng})
	require.True(t, ok)

	assert.Greater(t, east.X, 400.0)
	assert.InDelta(t, 300, east.Y, 1e-6)
	assert.Less(t, north.Y, 300.0)
	assert.InDelta(t, 400, north.X, 1e-6)
}

func TestMercatorProjectionScalesWithZoom(t *testing.T) {
	target := LatLng{Lat: 25.05, Lng: 121.60}
	near, _ := NewMercatorProjection(taipei101, 10, Size{Width: 800, Height: 600}).FromLatLngToDivPixel(target)
	far, _ := NewMercatorProjection(taipei101, 11, Size{Width: 800, Height: 600}).FromLatLngToDivPixel(target)

	assert.InDelta(t, 2*(near.X-400), far.X-400, 1e-6)
	assert.InDelta(t, 2*(near.Y-300), far.Y-300, 1e-6)
}

func TestMercatorProjectionRoundTrip(t *testing.T) {
	proj := NewMercatorProjection(taipei101, 14, Size{Width: 1024, Height: 768})
	target := LatLng{Lat: 25.0478, Lng: 121.5170}

	pt, ok := proj.FromLatLngToDivPixel(target)
	require.True(t, ok)
	back := proj.FromDivPixelToLatLng(pt)

	assert.InDelta(t, target.Lat, back.Lat, 1e-9)
	assert.InDelta(t, target.Lng, back.Lng, 1e-9)
}

func TestMercatorProjectionWrapsAntimeridian(t *testing.T) {
	proj := NewMercatorProjection(LatLng{Lat: 0, Lng: 179.9}, 8, Size{Width: 800, Height: 600})

	pt, ok := proj.FromLatLngToDivPixel(LatLng{Lat: 0, Lng: -179.9})
	require.True(t, ok)
	assert.Greater(t, pt.X, 400.0)
	assert.Less(t, pt.X, 800.0)
}

func TestMercatorProjectionRejectsInvalid(t *testing.T) {
	proj := NewMercatorProjection(taipei101, 9, Size{Width: 800, Height: 600})

	for _, ll := range []LatLng{
		{Lat: math.NaN(), Lng: 121},
		{Lat: 25, Lng: math.Inf(1)},
		{Lat: 91, Lng: 0},
	} {
		_, ok := proj.FromLatLngToDivPixel(ll)
		assert.False(t, ok, "%+v", ll)
	}
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, 0.0, clampZoom(-3))
	assert.Equal(t, 22.0, clampZoom(40))
	assert.Equal(t, 0.0, clampZoom(math.NaN()))
	assert.Equal(t, 9.0, clampZoom(9))
}
