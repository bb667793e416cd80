package mapview

// Pane names, bottom to top.
const (
	PaneMap                = "mapPane"
	PaneOverlayLayer       = "overlayLayer"
	PaneOverlayMouseTarget = "overlayMouseTarget"
	PaneFloat              = "floatPane"
)

// Style is the subset of inline style an overlay writes on its container.
type Style struct {
	Position  string  `json:"position"`
	Left      float64 `json:"left"`
	Top       float64 `json:"top"`
	Transform string  `json:"transform"`
	ZIndex    int     `json:"zIndex"`
	Cursor    string  `json:"cursor"`
}

// Container is the element an overlay owns and moves around.
type Container struct {
	id      string
	style   Style
	content interface{}
	pane    *Pane
}

func newContainer(id string, content interface{}) *Container {
	return &Container{id: id, content: content}
}

func (c *Container) ID() string           { return c.id }
func (c *Container) Style() Style         { return c.style }
func (c *Container) Content() interface{} { return c.content }

// Attached reports whether the container currently sits in a pane.
func (c *Container) Attached() bool { return c.pane != nil }

// Pane is an ordered layer of containers.
type Pane struct {
	name     string
	order    int
	children []*Container
}

func (p *Pane) Name() string { return p.name }
func (p *Pane) Order() int   { return p.order }
func (p *Pane) Len() int     { return len(p.children) }

// Children returns the containers in insertion order.
func (p *Pane) Children() []*Container {
	out := make([]*Container, len(p.children))
	copy(out, p.children)
	return out
}

// AppendChild attaches c at the end of p. A container lives in at most one
// pane, so c is first detached from wherever it sat before.
func (p *Pane) AppendChild(c *Container) {
	if c.pane != nil {
		c.pane.RemoveChild(c)
	}
	p.children = append(p.children, c)
	c.pane = p
}

// RemoveChild detaches c; it is a no-op when c is not a child of p.
func (p *Pane) RemoveChild(c *Container) {
	for i, child := range p.children {
		if child == c {
			p.children = append(p.children[:i], p.children[i+1:]...)
			c.pane = nil
			return
		}
	}
}

// Panes is the fixed layer stack of a map.
type Panes struct {
	MapPane            *Pane
	OverlayLayer       *Pane
	OverlayMouseTarget *Pane
	FloatPane          *Pane
}

func newPanes() *Panes {
	return &Panes{
		MapPane:            &Pane{name: PaneMap, order: 0},
		OverlayLayer:       &Pane{name: PaneOverlayLayer, order: 1},
		OverlayMouseTarget: &Pane{name: PaneOverlayMouseTarget, order: 3},
		FloatPane:          &Pane{name: PaneFloat, order: 4},
	}
}

// Ordered lists the panes bottom to top.
func (p *Panes) Ordered() []*Pane {
	return []*Pane{p.MapPane, p.OverlayLayer, p.OverlayMouseTarget, p.FloatPane}
}
