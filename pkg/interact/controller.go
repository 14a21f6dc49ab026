// Package interact implements the pointer-driven controller that lets a user
// hover, drag and reorder label sections.
//
// The controller is a three-state machine:
//
//	Idle ──enter──▶ Hovering(s) ──down──▶ Dragging(s) ──up──▶ Idle
//	                    │ leave
//	                    ▼
//	                   Idle
//
// While hovering or dragging it edits only the transient scene: the section
// background style, the section's z-order and, during a drag, the section's
// y. On release it derives a candidate order by sorting the sections by
// their current y and dispatches a reorder only when that order differs from
// the stored one. Either way the host rebuilds the scene, which snaps every
// section back to its computed position. Drag coordinates are never stored.
package interact

import (
	"slices"

	"github.com/matzehuels/labelkit/pkg/geom"
	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

// Mode is the controller state.
type Mode int

const (
	Idle Mode = iota
	Hovering
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Host is the editor the controller drives.
type Host interface {
	// Scene returns the current scene graph.
	Scene() *scene.Graph
	// State returns the current editor state.
	State() label.EditorState
	// Dispatch applies an action and rebuilds the scene.
	Dispatch(a label.Action)
	// Rebuild rebuilds the scene from the unchanged state.
	Rebuild()
}

// Styles used for hover and drag feedback.
var (
	HoverStyle = scene.Style{Stroke: "#2563eb", StrokeWidth: 2, Dash: []float64{4, 2}}
	DragFill   = "#dbeafe"
)

// Controller tracks one pointer over one editor.
type Controller struct {
	host    Host
	mode    Mode
	section label.SectionKey

	// saved is the background style before hover or drag feedback.
	saved scene.Style
	grabY float64
	lastY float64
}

// New creates an idle controller for host.
func New(host Host) *Controller {
	return &Controller{host: host}
}

// Mode returns the current state.
func (c *Controller) Mode() Mode { return c.mode }

// Active returns the hovered or dragged section, or "" when idle.
func (c *Controller) Active() label.SectionKey { return c.section }

// PointerMove handles pointer motion in canvas coordinates.
func (c *Controller) PointerMove(x, y float64) {
	if c.mode == Dragging {
		c.lastY = y
		if sec := c.host.Scene().Section(c.section); sec != nil {
			sec.X = label.BorderWidth
			sec.Y = y - c.grabY
		}
		return
	}

	target := c.host.Scene().SectionAt(geom.Point{X: x, Y: y})
	if target != nil && c.mode == Hovering && target.Section == c.section {
		return
	}
	if c.mode == Hovering {
		c.leave()
	}
	if target != nil {
		c.enter(target)
	}
}

// PointerDown starts a drag on the section under the pointer.
func (c *Controller) PointerDown(x, y float64) {
	if c.mode == Dragging {
		return
	}
	g := c.host.Scene()
	target := g.SectionAt(geom.Point{X: x, Y: y})
	if target == nil {
		return
	}
	if c.mode != Hovering || target.Section != c.section {
		if c.mode == Hovering {
			c.leave()
		}
		c.enter(target)
	}

	c.mode = Dragging
	c.grabY = y - target.Y
	c.lastY = y
	c.applyDrag(target)
	g.BringToFront(target)
}

// PointerUp ends a drag wherever the pointer is released.
func (c *Controller) PointerUp(x, y float64) {
	if c.mode != Dragging {
		return
	}
	g := c.host.Scene()
	if sec := g.Section(c.section); sec != nil {
		c.restore(sec)
	}

	state := c.host.State()
	order := CandidateOrder(g, state.SectionOrder)
	c.mode, c.section = Idle, ""

	if label.SameOrder(order, state.SectionOrder) {
		c.host.Rebuild()
		return
	}
	g.Restack(order)
	c.host.Dispatch(label.ReorderSections{Order: order})
}

// PointerLeave handles the pointer leaving the canvas. A drag continues
// until the pointer is released.
func (c *Controller) PointerLeave() {
	if c.mode == Hovering {
		c.leave()
	}
}

// Sync re-applies the current feedback after the host rebuilt the scene
// while the controller was not idle.
func (c *Controller) Sync() {
	if c.mode == Idle {
		return
	}
	g := c.host.Scene()
	sec := g.Section(c.section)
	if sec == nil {
		c.mode, c.section = Idle, ""
		return
	}
	mode := c.mode
	c.enter(sec)
	if mode == Dragging {
		c.mode = Dragging
		c.applyDrag(sec)
		sec.Y = c.lastY - c.grabY
		g.BringToFront(sec)
	}
}

func (c *Controller) enter(sec *scene.Node) {
	c.mode, c.section = Hovering, sec.Section
	c.host.Scene().BringToFront(sec)
	if bg := scene.Background(sec); bg != nil {
		c.saved = bg.Style.Clone()
		bg.Style.Stroke = HoverStyle.Stroke
		bg.Style.StrokeWidth = HoverStyle.StrokeWidth
		bg.Style.Dash = slices.Clone(HoverStyle.Dash)
	}
}

func (c *Controller) leave() {
	if sec := c.host.Scene().Section(c.section); sec != nil {
		c.restore(sec)
	}
	c.mode, c.section = Idle, ""
}

func (c *Controller) applyDrag(sec *scene.Node) {
	if bg := scene.Background(sec); bg != nil {
		bg.Style.Fill = DragFill
	}
}

func (c *Controller) restore(sec *scene.Node) {
	if bg := scene.Background(sec); bg != nil {
		bg.Style = c.saved.Clone()
	}
}

// CandidateOrder sorts the sections of g by their current y, ascending.
// Sections at the same y keep their relative order in current.
func CandidateOrder(g *scene.Graph, current []label.SectionKey) []label.SectionKey {
	order := slices.Clone(current)
	y := make(map[label.SectionKey]float64, len(order))
	for _, k := range order {
		if sec := g.Section(k); sec != nil {
			y[k] = sec.Y
		}
	}
	slices.SortStableFunc(order, func(a, b label.SectionKey) int {
		switch {
		case y[a] < y[b]:
			return -1
		case y[a] > y[b]:
			return 1
		}
		return 0
	})
	return order
}
