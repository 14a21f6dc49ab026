package layout

import (
	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

// Layout constants in canvas pixels.
const (
	// FieldPadding is added to the font size to advance the column cursor.
	FieldPadding = 5.0

	// InnerPadding insets section content from the section edges.
	InnerPadding = 8.0

	// RowHeight is the advance of one items-table row.
	RowHeight = 18.0

	// LeftColumnRatio is the share of the section width taken by the left
	// column of two-column sections.
	LeftColumnRatio = 0.55

	cellPadding = 2.0
)

const (
	colorPaper     = "#ffffff"
	colorInk       = "#111827"
	colorBorder    = "#1f2937"
	colorMuted     = "#4b5563"
	colorPlacehold = "#e5e7eb"
)

// Option configures [Build].
type Option func(*builder)

// WithMeasurer sets the text measurer used for widths, wrapping and border
// tiling. The default is [ApproxMeasurer].
func WithMeasurer(m Measurer) Option {
	return func(b *builder) {
		if m != nil {
			b.measure = m
		}
	}
}

type builder struct {
	state   label.EditorState
	data    label.LabelData
	measure Measurer
}

// Build lays out a label and returns a freshly built scene graph. It is a
// pure function of the state and data; nothing is carried over between calls.
//
// The root holds, back to front, the canvas background, the decorative
// border group and one group per section in state.SectionOrder. Section i
// is anchored at (BorderWidth, BorderWidth + top_i), where top_i is the sum of
// the heights of the sections before it.
func Build(state label.EditorState, data label.LabelData, opts ...Option) *scene.Graph {
	b := &builder{state: state, data: data, measure: ApproxMeasurer{}}
	for _, opt := range opts {
		opt(b)
	}

	g := scene.New()
	g.Root.Add(&scene.Node{
		Kind:  scene.KindRect,
		Role:  scene.RoleCanvas,
		W:     g.Width,
		H:     g.Height,
		Style: scene.Style{Fill: colorPaper},
	})
	g.Root.Add(b.border())

	top := 0.0
	for _, key := range state.SectionOrder {
		h := state.Height(key)
		g.Root.Add(b.section(key, top, h))
		top += h
	}
	return g
}

func (b *builder) section(key label.SectionKey, top, height float64) *scene.Node {
	sec := &scene.Node{
		Kind:    scene.KindGroup,
		Tag:     scene.TagSection,
		Role:    scene.RoleSection,
		Section: key,
		X:       label.BorderWidth,
		Y:       label.BorderWidth + top,
		W:       label.ContentWidth,
		H:       height,
	}
	sec.Add(&scene.Node{
		Kind:    scene.KindRect,
		Role:    scene.RoleSectionBackground,
		Section: key,
		W:       label.ContentWidth,
		H:       height,
		Style:   DefaultSectionStyle(),
	})

	spec, _ := label.Section(key)
	switch spec.Layout {
	case label.LayoutTwoColumn:
		b.twoColumn(sec, key)
	case label.LayoutTable:
		b.table(sec, key)
	case label.LayoutBarcode:
		b.barcodeSection(sec, key, height)
	case label.LayoutDisclaimer:
		b.disclaimer(sec, key, height)
	}
	return sec
}

// DefaultSectionStyle is the resting style of a section background.
func DefaultSectionStyle() scene.Style {
	return scene.Style{Fill: colorPaper, Stroke: colorInk, StrokeWidth: 1}
}

func fontWeight(bold bool) string {
	if bold {
		return "bold"
	}
	return "normal"
}

func (b *builder) text(s string, size float64, bold bool, x, y float64, anchor scene.Anchor, role scene.Role, field label.FieldKey) *scene.Node {
	spec, _ := label.Field(field)
	return &scene.Node{
		Kind:    scene.KindText,
		Role:    role,
		Section: spec.Section,
		Field:   field,
		X:       x,
		Y:       y,
		W:       b.measure.TextWidth(s, size, bold),
		H:       size,
		Text:    s,
		Style: scene.Style{
			Fill:       colorInk,
			FontSize:   size,
			FontWeight: fontWeight(bold),
			Anchor:     anchor,
		},
	}
}
