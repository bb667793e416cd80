// Package mapview is a headless model of an interactive slippy map: a camera
// over a Web Mercator world, an ordered stack of panes standing in for the DOM
// layers, and custom overlays that are positioned in screen space on every
// redraw. Markers for search results are built on top of those overlays.
//
// A Map and everything attached to it is owned by a single session and is not
// safe for concurrent use; callers serialise access.
package mapview

import "math"

const (
	// TileSize is the edge length in pixels of one tile at zoom 0.
	TileSize = 256
	// MaxLatitude is the Web Mercator cut-off.
	MaxLatitude = 85.05112878

	MinZoom = 0
	MaxZoom = 22
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is finite and within range.
func (ll LatLng) Valid() bool {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return false
	}
	return ll.Lat >= -90 && ll.Lat <= 90 && ll.Lng >= -180 && ll.Lng <= 180
}

// Point is a pixel offset.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a viewport size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Projection converts geographic coordinates to pixel offsets inside the map div.
type Projection interface {
	FromLatLngToDivPixel(ll LatLng) (Point, bool)
	FromDivPixelToLatLng(pt Point) LatLng
}

// MercatorProjection projects for one fixed camera. A new value is taken on each redraw.
type MercatorProjection struct {
	center LatLng
	zoom   float64
	size   Size
}

// NewMercatorProjection builds the projection for the given camera.
func NewMercatorProjection(center LatLng, zoom float64, size Size) MercatorProjection {
	return MercatorProjection{center: center, zoom: clampZoom(zoom), size: size}
}

// FromLatLngToDivPixel returns the offset from the viewport's top-left corner.
// Longitudes wrap to the world copy closest to the camera centre.
func (p MercatorProjection) FromLatLngToDivPixel(ll LatLng) (Point, bool) {
	if !ll.Valid() {
		return Point{}, false
	}
	scale := worldScale(p.zoom)
	target := worldPoint(ll, scale)
	origin := worldPoint(p.center, scale)

	dx := target.X - origin.X
	if dx > scale/2 {
		dx -= scale
	} else if dx < -scale/2 {
		dx += scale
	}
	dy := target.Y - origin.Y

	return Point{
		X: float64(p.size.Width)/2 + dx,
		Y: float64(p.size.Height)/2 + dy,
	}, true
}

// FromDivPixelToLatLng is the inverse of FromLatLngToDivPixel.
func (p MercatorProjection) FromDivPixelToLatLng(pt Point) LatLng {
	scale := worldScale(p.zoom)
	origin := worldPoint(p.center, scale)

	wx := origin.X + pt.X - float64(p.size.Width)/2
	wy := origin.Y + pt.Y - float64(p.size.Height)/2

	lng := wx/scale*360 - 180
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	lng -= 180

	n := math.Pi - 2*math.Pi*wy/scale
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return LatLng{Lat: clampLat(lat), Lng: lng}
}

// worldPoint converts to slippy-map pixel coordinates at the given world scale.
func worldPoint(ll LatLng, scale float64) Point {
	latRad := clampLat(ll.Lat) * math.Pi / 180.0
	x := (ll.Lng + 180.0) / 360.0 * scale
	y := (1.0 - math.Log(math.Tan(latRad)+1.0/math.Cos(latRad))/math.Pi) / 2.0 * scale
	return Point{X: x, Y: y}
}

func worldScale(zoom float64) float64 {
	return TileSize * math.Exp2(zoom)
}

func clampLat(lat float64) float64 {
	return math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
}

func clampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) {
		return MinZoom
	}
	return math.Max(MinZoom, math.Min(MaxZoom, zoom))
}
