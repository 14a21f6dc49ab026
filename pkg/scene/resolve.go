package scene

import "github.com/matzehuels/labelkit/pkg/geom"

// Resolved holds canvas-absolute coordinates of a node.
type Resolved struct {
	// X, Y is the top-left corner of the node's box. For text it already
	// accounts for the horizontal anchor; for lines it is the minimum of
	// both endpoints.
	X, Y float64
	W, H float64

	// Endpoints are set for lines only.
	X1, Y1, X2, Y2 float64
	IsLine         bool
}

// Local returns the transform a group applies to its children.
func Local(n *Node) geom.Matrix {
	if !n.IsGroup() {
		return geom.Identity
	}
	return geom.Translate(n.X, n.Y)
}

// Compose folds the ancestor chain (outermost first) into one transform,
// starting from the innermost group.
func Compose(ancestors []*Node) geom.Matrix {
	m := geom.Identity
	for i := len(ancestors) - 1; i >= 0; i-- {
		m = Local(ancestors[i]).Mul(m)
	}
	return m
}

// Resolve computes the absolute coordinates of n given its ancestors,
// outermost first.
func Resolve(n *Node, ancestors []*Node) Resolved {
	m := Compose(ancestors)

	if n.Kind == KindLine {
		p1 := m.Apply(geom.Point{X: n.X + n.X1, Y: n.Y + n.Y1})
		p2 := m.Apply(geom.Point{X: n.X + n.X2, Y: n.Y + n.Y2})
		box := geom.Bounds(p1, p2)
		return Resolved{
			X: box.X, Y: box.Y, W: box.W, H: box.H,
			X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y,
			IsLine: true,
		}
	}

	p := m.Apply(geom.Point{X: n.X, Y: n.Y})
	r := Resolved{X: p.X, Y: p.Y, W: n.W, H: n.H}
	if n.Kind == KindText || n.Kind == KindTextbox {
		r.X = AnchorLeftEdge(p.X, n.W, n.Style.Anchor)
	}
	return r
}

// AnchorLeftEdge converts a resolved anchor x into the left edge of a box of
// width w.
func AnchorLeftEdge(anchorX, w float64, a Anchor) float64 {
	switch a {
	case AnchorRight:
		return anchorX - w
	case AnchorCenter:
		return anchorX - w/2
	default:
		return anchorX
	}
}

// Absolute resolves a node by locating it in the graph. It reports false if
// the node is not part of g.
func (g *Graph) Absolute(n *Node) (Resolved, bool) {
	anc, ok := g.Path(n)
	if !ok {
		return Resolved{}, false
	}
	return Resolve(n, anc), true
}
