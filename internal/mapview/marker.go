package mapview

import "github.com/noah-isme/wazai-maps/internal/models"

const (
	SelectedScale  = 1.5
	DefaultScale   = 1.0
	HoverScale     = 1.25
	SelectedZIndex = 100
	DefaultZIndex  = 1
)

// MarkerVisual is what a marker container renders.
type MarkerVisual struct {
	EventID    string  `json:"eventId"`
	Title      string  `json:"title"`
	Color      string  `json:"color"`
	Scale      float64 `json:"scale"`
	HoverScale float64 `json:"hoverScale"`
	ZIndex     int     `json:"zIndex"`
	Selected   bool    `json:"selected"`
	Halo       bool    `json:"halo"`
}

// Marker is the render state of one marker after the last redraw.
type Marker struct {
	MarkerVisual
	Position LatLng `json:"position"`
	Style    Style  `json:"style"`
	Visible  bool   `json:"visible"`
}

func visualFor(event models.Event, selected bool) MarkerVisual {
	v := MarkerVisual{
		EventID:    event.ID,
		Title:      event.Title,
		Color:      EventColor(event),
		Scale:      DefaultScale,
		HoverScale: HoverScale,
		ZIndex:     DefaultZIndex,
		Halo:       true,
	}
	if selected {
		v.Selected = true
		v.Scale = SelectedScale
		v.HoverScale = SelectedScale
		v.ZIndex = SelectedZIndex
	}
	return v
}

// MarkerSet keeps one overlay per event on a map.
type MarkerSet struct {
	m        *Map
	onSelect func(models.Event)
	overlays map[string]*OverlayMount
	events   map[string]models.Event
	order    []string
}

// NewMarkerSet creates an empty set drawing on m. onSelect receives the full
// event when its marker is clicked.
func NewMarkerSet(m *Map, onSelect func(models.Event)) *MarkerSet {
	return &MarkerSet{
		m:        m,
		onSelect: onSelect,
		overlays: make(map[string]*OverlayMount),
		events:   make(map[string]models.Event),
	}
}

// Sync makes the markers mirror events. Overlays for ids already on the map
// are reused, the rest are mounted, and overlays whose event vanished are
// removed. Events without a usable position or with a repeated id are skipped.
func (s *MarkerSet) Sync(events []models.Event, selectedID string) {
	next := make(map[string]models.Event, len(events))
	order := make([]string, 0, len(events))
	for _, event := range events {
		if event.ID == "" {
			continue
		}
		if _, dup := next[event.ID]; dup {
			continue
		}
		pos := LatLng{Lat: event.Coordinates.Latitude, Lng: event.Coordinates.Longitude}
		if !pos.Valid() {
			continue
		}
		next[event.ID] = event
		order = append(order, event.ID)
	}

	for id, overlay := range s.overlays {
		if _, keep := next[id]; !keep {
			s.m.RemoveOverlay(overlay)
			delete(s.overlays, id)
		}
	}
	s.events = next
	s.order = order

	for _, id := range order {
		event := next[id]
		visual := visualFor(event, id == selectedID)
		pos := LatLng{Lat: event.Coordinates.Latitude, Lng: event.Coordinates.Longitude}

		overlay, ok := s.overlays[id]
		if !ok {
			overlay = NewOverlayMount(id, pos, visual)
			overlay.SetZIndex(visual.ZIndex)
			overlay.OnClick(s.clickHandler(id))
			s.overlays[id] = overlay
			s.m.AddOverlay(overlay)
			continue
		}
		overlay.SetPosition(pos)
		overlay.SetZIndex(visual.ZIndex)
		overlay.SetContent(visual)
	}
	s.m.Redraw()
}

func (s *MarkerSet) clickHandler(id string) func(ev *ClickEvent) {
	return func(ev *ClickEvent) {
		ev.StopPropagation()
		event, ok := s.events[id]
		if !ok || s.onSelect == nil {
			return
		}
		s.onSelect(event)
	}
}

// Len returns the number of markers on the map.
func (s *MarkerSet) Len() int { return len(s.order) }

// Overlay returns the overlay drawn for an event id.
func (s *MarkerSet) Overlay(id string) (*OverlayMount, bool) {
	o, ok := s.overlays[id]
	return o, ok
}

// Markers returns the render list in result order.
func (s *MarkerSet) Markers() []Marker {
	out := make([]Marker, 0, len(s.order))
	for _, id := range s.order {
		overlay := s.overlays[id]
		visual, _ := overlay.Container().Content().(MarkerVisual)
		out = append(out, Marker{
			MarkerVisual: visual,
			Position:     overlay.Position(),
			Style:        overlay.Container().Style(),
			Visible:      overlay.Visible(),
		})
	}
	return out
}

// Clear removes every marker.
func (s *MarkerSet) Clear() {
	s.Sync(nil, "")
}
