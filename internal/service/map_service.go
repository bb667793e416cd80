package service

import (
	"github.com/noah-isme/wazai-maps/internal/dto"
	"github.com/noah-isme/wazai-maps/internal/mapview"
	"github.com/noah-isme/wazai-maps/internal/models"
)

// DefaultFocusZoom is the minimum zoom after focusing a selected event.
const DefaultFocusZoom = 15

// MapService keeps a session's map in step with its store: markers follow the
// result set and selection, the camera follows the selected event, and clicks
// on the map flow back into the store.
type MapService struct {
	store     *SessionStore
	m         *mapview.Map
	markers   *mapview.MarkerSet
	focusZoom float64
}

// NewMapService builds the map and wires it to store.
func NewMapService(store *SessionStore, opts mapview.Options, focusZoom float64) *MapService {
	if focusZoom <= 0 {
		focusZoom = DefaultFocusZoom
	}
	svc := &MapService{
		store:     store,
		m:         mapview.New(opts),
		focusZoom: focusZoom,
	}
	svc.markers = mapview.NewMarkerSet(svc.m, store.Select)
	svc.m.OnClick(func(mapview.ClickEvent) { store.Clear() })
	store.Subscribe(svc.onChange)
	svc.sync()
	return svc
}

func (s *MapService) onChange(change Change) {
	if change.Kind == ChangeSelection && change.Selected != nil {
		s.focus(*change.Selected)
	}
	s.sync()
}

// focus centres on event and only ever zooms in.
func (s *MapService) focus(event models.Event) {
	s.m.PanTo(mapview.LatLng{Lat: event.Coordinates.Latitude, Lng: event.Coordinates.Longitude})
	if s.m.Zoom() < s.focusZoom {
		s.m.SetZoom(s.focusZoom)
	}
}

func (s *MapService) sync() {
	s.markers.Sync(s.store.Events(), s.store.SelectedID())
}

// View returns the camera and marker render list.
func (s *MapService) View() dto.MapView {
	sw, ne := s.m.Bounds()
	return dto.MapView{
		Center:     s.m.Center(),
		Zoom:       s.m.Zoom(),
		Size:       s.m.Size(),
		Bounds:     dto.MapBounds{SouthWest: sw, NorthEast: ne},
		Markers:    s.markers.Markers(),
		SelectedID: s.store.SelectedID(),
		Redraws:    s.m.Redraws(),
	}
}

// Viewport applies a resize, pan or zoom. Each change redraws overlays only.
func (s *MapService) Viewport(req dto.ViewportRequest) {
	if req.Width > 0 || req.Height > 0 {
		size := s.m.Size()
		if req.Width > 0 {
			size.Width = req.Width
		}
		if req.Height > 0 {
			size.Height = req.Height
		}
		s.m.Resize(size)
	}
	if req.Center != nil {
		s.m.PanTo(*req.Center)
	}
	if req.Zoom != nil {
		s.m.SetZoom(*req.Zoom)
	}
}

// Click routes a click at a pixel offset through the map.
func (s *MapService) Click(pt mapview.Point) dto.ClickResponse {
	res := s.m.Click(pt)
	return dto.ClickResponse{
		Target:     res.Target,
		Propagated: res.Propagated,
		LatLng:     res.LatLng,
		SelectedID: s.store.SelectedID(),
	}
}

// Teardown unmounts every marker.
func (s *MapService) Teardown() {
	s.m.Teardown()
}
