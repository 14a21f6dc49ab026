package export

import (
	"math"
	"slices"

	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

// FromScene walks the scene graph once and flattens it into a document.
//
// Leaves (rectangles, text, text boxes, lines, images) and groups tagged as
// barcodes become elements; a barcode group is emitted as a single element
// carrying its bar widths and its children are not visited. All other
// groups are structural and are skipped.
func FromScene(g *scene.Graph, state label.EditorState) Document {
	doc := Document{
		Version: Version,
		Canvas: Canvas{
			Width:       g.Width,
			Height:      g.Height,
			BorderWidth: g.BorderWidth,
		},
		Sections: Sections{
			Order:   make([]string, 0, len(state.SectionOrder)),
			Heights: make(map[string]float64, len(state.SectionHeights)),
		},
		Elements: []Element{},
	}
	for _, k := range state.SectionOrder {
		doc.Sections.Order = append(doc.Sections.Order, string(k))
	}
	for k, h := range state.SectionHeights {
		doc.Sections.Heights[string(k)] = h
	}

	g.Walk(func(n *scene.Node, ancestors []*scene.Node) bool {
		if n.IsGroup() && n.Tag != scene.TagBarcode {
			return true
		}
		doc.Elements = append(doc.Elements, element(n, scene.Resolve(n, ancestors)))
		return false
	})
	return doc
}

func element(n *scene.Node, r scene.Resolved) Element {
	el := Element{
		Type:        string(n.Kind),
		ElementType: string(n.Role),
		Section:     string(n.Section),
		Field:       string(n.Field),
		AbsoluteX:   round(r.X),
		AbsoluteY:   round(r.Y),
		Text:        n.Text,
		Lines:       slices.Clone(n.Lines),
		Overflow:    n.Overflow,
		Src:         n.Src,
		Code:        n.Code,
		Style: Style{
			Fill:        n.Style.Fill,
			Stroke:      n.Style.Stroke,
			StrokeWidth: n.Style.StrokeWidth,
			Dash:        slices.Clone(n.Style.Dash),
			FontSize:    n.Style.FontSize,
			FontWeight:  n.Style.FontWeight,
			Anchor:      string(n.Style.Anchor),
			Rotation:    n.Style.Rotation,
		},
	}
	if n.Tag == scene.TagBarcode {
		el.Bars = make([]float64, len(n.Bars))
		for i, w := range n.Bars {
			el.Bars[i] = round(w)
		}
	}
	if r.IsLine {
		el.Endpoints = &Endpoints{X1: round(r.X1), Y1: round(r.Y1), X2: round(r.X2), Y2: round(r.Y2)}
	} else {
		el.Dimensions = &Dimensions{Width: round(r.W), Height: round(r.H)}
	}
	return el
}

// round keeps four decimals, enough for sub-pixel print placement.
func round(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
