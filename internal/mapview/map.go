package mapview

import "sort"

// Options configure a new Map.
type Options struct {
	Center LatLng
	Zoom   float64
	Size   Size
}

// ClickResult summarises how a click was routed.
type ClickResult struct {
	Target     string
	LatLng     LatLng
	Propagated bool
}

// Map is the camera plus the overlays drawn over it.
type Map struct {
	center   LatLng
	zoom     float64
	size     Size
	panes    *Panes
	overlays []Overlay
	onClick  []func(ev ClickEvent)
	redraws  uint64
	torn     bool
}

// New creates a map. Zero sizes fall back to 1280x800.
func New(opts Options) *Map {
	size := opts.Size
	if size.Width <= 0 {
		size.Width = 1280
	}
	if size.Height <= 0 {
		size.Height = 800
	}
	center := opts.Center
	if !center.Valid() {
		center = LatLng{}
	}
	return &Map{
		center: center,
		zoom:   clampZoom(opts.Zoom),
		size:   size,
		panes:  newPanes(),
	}
}

func (m *Map) Center() LatLng  { return m.center }
func (m *Map) Zoom() float64   { return m.zoom }
func (m *Map) Size() Size      { return m.size }
func (m *Map) Panes() *Panes   { return m.panes }
func (m *Map) Redraws() uint64 { return m.redraws }

// Projection returns the projection for the current camera.
func (m *Map) Projection() Projection {
	return NewMercatorProjection(m.center, m.zoom, m.size)
}

// AddOverlay registers o, mounts it and draws it once.
func (m *Map) AddOverlay(o Overlay) {
	if m.torn || m.indexOf(o) >= 0 {
		return
	}
	m.overlays = append(m.overlays, o)
	o.Mount(m.panes)
	o.Reposition(m.Projection())
}

// RemoveOverlay unregisters o and unmounts it.
func (m *Map) RemoveOverlay(o Overlay) {
	idx := m.indexOf(o)
	if idx < 0 {
		return
	}
	m.overlays = append(m.overlays[:idx], m.overlays[idx+1:]...)
	o.Unmount()
}

// Overlays returns how many overlays are registered.
func (m *Map) Overlays() int { return len(m.overlays) }

// PanTo recentres the camera.
func (m *Map) PanTo(ll LatLng) {
	if !ll.Valid() {
		return
	}
	m.center = ll
	m.Redraw()
}

// SetZoom changes the zoom level, clamped to the supported range.
func (m *Map) SetZoom(zoom float64) {
	zoom = clampZoom(zoom)
	if zoom == m.zoom {
		return
	}
	m.zoom = zoom
	m.Redraw()
}

// Resize changes the viewport size.
func (m *Map) Resize(size Size) {
	if size.Width <= 0 || size.Height <= 0 || size == m.size {
		return
	}
	m.size = size
	m.Redraw()
}

// Redraw repositions every overlay against the current camera.
func (m *Map) Redraw() {
	if m.torn {
		return
	}
	proj := m.Projection()
	for _, o := range m.overlays {
		o.Reposition(proj)
	}
	m.redraws++
}

// OnClick registers a listener for clicks that reach the map surface.
func (m *Map) OnClick(fn func(ev ClickEvent)) {
	m.onClick = append(m.onClick, fn)
}

// Click routes a click at pt to the topmost overlay under it. Only clicks that
// no overlay stopped reach the map listeners.
func (m *Map) Click(pt Point) ClickResult {
	ev := &ClickEvent{Point: pt, LatLng: m.Projection().FromDivPixelToLatLng(pt)}
	result := ClickResult{LatLng: ev.LatLng}

	if target, ok := m.hit(pt); ok {
		if withID, ok := target.(interface{ ID() string }); ok {
			result.Target = withID.ID()
		}
		target.Click(ev)
	}
	if ev.Stopped() {
		return result
	}

	result.Propagated = true
	for _, fn := range m.onClick {
		fn(*ev)
	}
	return result
}

// Teardown unmounts and unregisters all overlays. The map is unusable afterwards.
func (m *Map) Teardown() {
	for len(m.overlays) > 0 {
		m.RemoveOverlay(m.overlays[len(m.overlays)-1])
	}
	m.onClick = nil
	m.torn = true
}

// Bounds returns the south-west and north-east corners of the viewport.
func (m *Map) Bounds() (LatLng, LatLng) {
	proj := m.Projection()
	sw := proj.FromDivPixelToLatLng(Point{X: 0, Y: float64(m.size.Height)})
	ne := proj.FromDivPixelToLatLng(Point{X: float64(m.size.Width), Y: 0})
	return sw, ne
}

func (m *Map) hit(pt Point) (clickable, bool) {
	var candidates []clickable
	for _, o := range m.overlays {
		if c, ok := o.(clickable); ok && c.HitTest(pt) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	// later registrations paint on top at equal z-index
	for i, j := 0, len(candidates)-1; i < j; i, j = i+1, j-1 {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Layer() > candidates[j].Layer()
	})
	return candidates[0], true
}

func (m *Map) indexOf(o Overlay) int {
	for i, existing := range m.overlays {
		if existing == o {
			return i
		}
	}
	return -1
}
