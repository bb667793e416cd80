package dto

import "github.com/noah-isme/wazai-maps/internal/mapview"

// MapBounds are the visible corners of the viewport.
type MapBounds struct {
	SouthWest mapview.LatLng `json:"southWest"`
	NorthEast mapview.LatLng `json:"northEast"`
}

// MapView is the map surface: camera plus marker render list.
type MapView struct {
	Center     mapview.LatLng   `json:"center"`
	Zoom       float64          `json:"zoom"`
	Size       mapview.Size     `json:"size"`
	Bounds     MapBounds        `json:"bounds"`
	Markers    []mapview.Marker `json:"markers"`
	SelectedID string           `json:"selectedId,omitempty"`
	Redraws    uint64           `json:"redraws"`
}

// ViewportRequest resizes or moves the camera.
type ViewportRequest struct {
	Width  int             `json:"width" validate:"omitempty,min=1,max=10000"`
	Height int             `json:"height" validate:"omitempty,min=1,max=10000"`
	Center *mapview.LatLng `json:"center"`
	Zoom   *float64        `json:"zoom" validate:"omitempty,min=0,max=22"`
}

// ClickRequest is a click at a pixel offset inside the map.
type ClickRequest struct {
	X float64 `json:"x" validate:"gte=0"`
	Y float64 `json:"y" validate:"gte=0"`
}

// ClickResponse reports how the click was handled.
type ClickResponse struct {
	Target     string         `json:"target,omitempty"`
	Propagated bool           `json:"propagated"`
	LatLng     mapview.LatLng `json:"latLng"`
	SelectedID string         `json:"selectedId"`
}
