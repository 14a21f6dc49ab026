package layout

import (
	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

const logoAspect = 2.5

// twoColumn stacks the left column fields top to bottom from the left edge
// and the right column fields right-aligned to the section's right edge.
// Each visible field advances its column cursor by fontSize + FieldPadding.
func (b *builder) twoColumn(sec *scene.Node, key label.SectionKey) {
	leftW := label.ContentWidth * LeftColumnRatio
	right := label.ContentWidth - InnerPadding

	cursor := InnerPadding
	for _, f := range label.FieldsIn(key, label.ColumnLeft) {
		fs := b.state.Field(f.Key)
		if !fs.Visible {
			continue
		}
		text := Truncate(b.measure, f.Text(b.data), fs.FontSize, f.Bold, leftW-2*InnerPadding)
		sec.Add(b.text(text, fs.FontSize, f.Bold, InnerPadding, cursor, scene.AnchorLeft, scene.RoleField, f.Key))
		cursor += fs.FontSize + FieldPadding
	}

	rightW := label.ContentWidth - leftW - InnerPadding
	cursor = InnerPadding
	for _, f := range label.FieldsIn(key, label.ColumnRight) {
		fs := b.state.Field(f.Key)
		if !fs.Visible {
			continue
		}
		switch f.Content {
		case label.ContentImage:
			h := fs.FontSize
			w := min(h*logoAspect, rightW)
			sec.Add(&scene.Node{
				Kind:    scene.KindImage,
				Role:    scene.RoleLogo,
				Section: key,
				Field:   f.Key,
				X:       right - w,
				Y:       cursor,
				W:       w,
				H:       h,
				Src:     b.data.Value(f.DataKey),
				Style:   scene.Style{Fill: colorPlacehold},
			})
		default:
			text, ok := b.fieldText(f)
			if !ok {
				continue
			}
			text = Truncate(b.measure, text, fs.FontSize, f.Bold, rightW)
			sec.Add(b.text(text, fs.FontSize, f.Bold, right, cursor, scene.AnchorRight, scene.RoleField, f.Key))
		}
		cursor += fs.FontSize + FieldPadding
	}
}

// fieldText returns the text of a field. Derived fields whose source value
// cannot be parsed report false and are left out of the scene.
func (b *builder) fieldText(f label.FieldSpec) (string, bool) {
	if f.Key == "order.dimWeight" {
		w := label.FormatDimensionalWeight(b.data.Value(f.DataKey))
		if w == "" {
			return "", false
		}
		return f.Prefix + w, true
	}
	return f.Text(b.data), true
}
