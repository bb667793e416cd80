package mapview

import "math"

const centerTransform = "translate(-50%, -50%)"

// Overlay is anything the map positions in screen space.
//
// Mount is called once when the overlay is added to a map, Reposition on every
// redraw, Unmount when it is removed or the map is torn down.
type Overlay interface {
	Mount(panes *Panes)
	Reposition(proj Projection)
	Unmount()
}

// clickable overlays take part in hit testing.
type clickable interface {
	HitTest(pt Point) bool
	Layer() int
	Click(ev *ClickEvent)
}

// ClickEvent travels from the topmost hit overlay down to the map surface.
type ClickEvent struct {
	Point   Point
	LatLng  LatLng
	stopped bool
}

// StopPropagation keeps the click from reaching the map surface.
func (e *ClickEvent) StopPropagation() { e.stopped = true }

// Stopped reports whether a handler consumed the click.
func (e *ClickEvent) Stopped() bool { return e.stopped }

// OverlayMount anchors one container at a geographic position. The container is
// created with the overlay and reused for its whole life.
type OverlayMount struct {
	id        string
	position  LatLng
	zIndex    int
	hitRadius float64
	container *Container
	visible   bool
	onClick   func(ev *ClickEvent)
}

// NewOverlayMount creates the overlay and its container.
func NewOverlayMount(id string, position LatLng, content interface{}) *OverlayMount {
	return &OverlayMount{
		id:        id,
		position:  position,
		hitRadius: 12,
		container: newContainer(id, content),
	}
}

func (o *OverlayMount) ID() string            { return o.id }
func (o *OverlayMount) Position() LatLng      { return o.position }
func (o *OverlayMount) Container() *Container { return o.container }

// Visible is false when the last projection could not place the overlay.
func (o *OverlayMount) Visible() bool { return o.visible }

// SetPosition moves the anchor; it takes effect on the next redraw.
func (o *OverlayMount) SetPosition(ll LatLng) { o.position = ll }

// SetZIndex sets the stacking hint written on the next redraw.
func (o *OverlayMount) SetZIndex(z int) { o.zIndex = z }

// SetHitRadius sets the clickable radius around the anchor in pixels.
func (o *OverlayMount) SetHitRadius(r float64) { o.hitRadius = r }

// SetContent swaps what the container shows without recreating it.
func (o *OverlayMount) SetContent(content interface{}) { o.container.content = content }

// OnClick registers the click handler.
func (o *OverlayMount) OnClick(fn func(ev *ClickEvent)) { o.onClick = fn }

// Mount attaches the container to the pane that receives pointer events.
func (o *OverlayMount) Mount(panes *Panes) {
	if panes == nil || o.container.Attached() {
		return
	}
	panes.OverlayMouseTarget.AppendChild(o.container)
}

// Reposition projects the anchor and writes the container offset.
func (o *OverlayMount) Reposition(proj Projection) {
	if proj == nil || !o.container.Attached() {
		return
	}
	pt, ok := proj.FromLatLngToDivPixel(o.position)
	if !ok {
		o.visible = false
		return
	}
	o.visible = true
	o.container.style = Style{
		Position:  "absolute",
		Left:      pt.X,
		Top:       pt.Y,
		Transform: centerTransform,
		ZIndex:    o.zIndex,
		Cursor:    "pointer",
	}
}

// Unmount detaches the container from whatever pane holds it.
func (o *OverlayMount) Unmount() {
	if o.container.pane == nil {
		return
	}
	o.container.pane.RemoveChild(o.container)
}

// HitTest checks pt against a circle around the anchor; the anchor is the
// container centre because of the centring transform.
func (o *OverlayMount) HitTest(pt Point) bool {
	if !o.visible || !o.container.Attached() {
		return false
	}
	dx := pt.X - o.container.style.Left
	dy := pt.Y - o.container.style.Top
	return math.Hypot(dx, dy) <= o.hitRadius
}

// Layer is the z-index last written on the container.
func (o *OverlayMount) Layer() int { return o.container.style.ZIndex }

// Click dispatches to the registered handler.
func (o *OverlayMount) Click(ev *ClickEvent) {
	if o.onClick != nil {
		o.onClick(ev)
	}
}
