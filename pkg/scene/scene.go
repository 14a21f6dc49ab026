package scene

import (
	"slices"

	"github.com/matzehuels/labelkit/pkg/geom"
	"github.com/matzehuels/labelkit/pkg/label"
)

// Kind is the primitive type of a node.
type Kind string

const (
	KindRect    Kind = "rect"
	KindText    Kind = "text"
	KindTextbox Kind = "textbox"
	KindLine    Kind = "line"
	KindImage   Kind = "image"
	KindGroup   Kind = "group"
)

// Role is the semantic element type of a node. It survives export as
// the element's elementType.
type Role string

const (
	RoleCanvas            Role = "canvas"
	RoleBorder            Role = "border"
	RoleBorderText        Role = "borderText"
	RoleSectionBackground Role = "sectionBackground"
	RoleField             Role = "field"
	RoleLogo              Role = "logo"
	RoleTableHeader       Role = "tableHeader"
	RoleTableCell         Role = "tableCell"
	RoleTableRule         Role = "tableRule"
	RoleBarcode           Role = "barcode"
	RoleDisclaimer        Role = "disclaimer"
	RoleSection           Role = "section"
)

// Tag marks groups that are meaningful units rather than plain structure.
type Tag string

const (
	TagNone    Tag = ""
	TagSection Tag = "section"
	TagBarcode Tag = "barcode"
)

// Anchor is the horizontal anchor of a text primitive.
type Anchor string

const (
	AnchorLeft   Anchor = "left"
	AnchorCenter Anchor = "center"
	AnchorRight  Anchor = "right"
)

// Style holds the visual properties of a node.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        []float64
	FontSize    float64
	FontWeight  string
	Anchor      Anchor
	Rotation    float64
}

// Clone returns a copy that does not share the dash slice.
func (s Style) Clone() Style {
	s.Dash = slices.Clone(s.Dash)
	return s
}

// Node is one scene object. X and Y are the node's local anchor relative to
// its parent group. For text, X is the anchor point selected by
// Style.Anchor and Y is the top of the line box. For lines, the endpoints
// X1,Y1 and X2,Y2 are relative to the anchor.
type Node struct {
	Kind    Kind
	Role    Role
	Tag     Tag
	Section label.SectionKey
	Field   label.FieldKey

	X, Y           float64
	W, H           float64
	X1, Y1, X2, Y2 float64

	Style Style

	Text     string
	Lines    []string
	Overflow bool
	Src      string
	Code     string
	Bars     []float64

	Children []*Node
}

// Add appends children to a group and returns it.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// IsGroup reports whether n is a group.
func (n *Node) IsGroup() bool { return n.Kind == KindGroup }

// Group creates an untagged group at a local offset.
func Group(x, y float64, children ...*Node) *Node {
	return &Node{Kind: KindGroup, X: x, Y: y, Children: children}
}

// Graph is one rendered frame of a label.
type Graph struct {
	Width, Height float64
	BorderWidth   float64
	Root          *Node
}

// New creates an empty graph sized to the label canvas.
func New() *Graph {
	return &Graph{
		Width:       label.CanvasWidth,
		Height:      label.CanvasHeight,
		BorderWidth: label.BorderWidth,
		Root:        Group(0, 0),
	}
}

// Sections returns the section groups in z-order, back to front.
func (g *Graph) Sections() []*Node {
	var out []*Node
	for _, c := range g.Root.Children {
		if c.Tag == TagSection {
			out = append(out, c)
		}
	}
	return out
}

// Section returns the group of a section, or nil.
func (g *Graph) Section(key label.SectionKey) *Node {
	for _, c := range g.Root.Children {
		if c.Tag == TagSection && c.Section == key {
			return c
		}
	}
	return nil
}

// SectionAt returns the topmost section group whose bounds contain p.
func (g *Graph) SectionAt(p geom.Point) *Node {
	secs := g.Sections()
	for i := len(secs) - 1; i >= 0; i-- {
		s := secs[i]
		if (geom.Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}).Contains(p) {
			return s
		}
	}
	return nil
}

// BringToFront moves a direct child of the root to the end of the draw order.
func (g *Graph) BringToFront(n *Node) {
	i := slices.Index(g.Root.Children, n)
	if i < 0 || i == len(g.Root.Children)-1 {
		return
	}
	g.Root.Children = append(slices.Delete(g.Root.Children, i, i+1), n)
}

// Restack re-orders the section groups so they draw back to front in the
// given order. Non-section children keep their positions.
func (g *Graph) Restack(order []label.SectionKey) {
	var slots []int
	for i, c := range g.Root.Children {
		if c.Tag == TagSection {
			slots = append(slots, i)
		}
	}
	var ordered []*Node
	for _, k := range order {
		if s := g.Section(k); s != nil {
			ordered = append(ordered, s)
		}
	}
	if len(ordered) != len(slots) {
		return
	}
	for i, slot := range slots {
		g.Root.Children[slot] = ordered[i]
	}
}

// Background returns the background rectangle of a section group, or nil.
func Background(section *Node) *Node {
	for _, c := range section.Children {
		if c.Role == RoleSectionBackground {
			return c
		}
	}
	return nil
}

// WalkFunc is called for every node with its ancestors, outermost first.
// Returning false skips the node's children.
type WalkFunc func(n *Node, ancestors []*Node) bool

// Walk visits the tree depth-first in draw order, starting at the root.
func (g *Graph) Walk(fn WalkFunc) {
	walk(g.Root, nil, fn)
}

func walk(n *Node, ancestors []*Node, fn WalkFunc) {
	if !fn(n, ancestors) {
		return
	}
	if len(n.Children) == 0 {
		return
	}
	path := append(slices.Clip(ancestors), n)
	for _, c := range n.Children {
		walk(c, path, fn)
	}
}

// Path returns the ancestors of target, outermost first, and whether target
// is in the graph.
func (g *Graph) Path(target *Node) ([]*Node, bool) {
	var (
		found []*Node
		ok    bool
	)
	g.Walk(func(n *Node, ancestors []*Node) bool {
		if ok {
			return false
		}
		if n == target {
			found, ok = slices.Clone(ancestors), true
			return false
		}
		return true
	})
	return found, ok
}

// Count returns the number of nodes in the graph.
func (g *Graph) Count() int {
	var c int
	g.Walk(func(*Node, []*Node) bool {
		c++
		return true
	})
	return c
}
