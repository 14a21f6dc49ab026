package layout

import (
	"github.com/matzehuels/labelkit/pkg/barcode"
	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

const minBarHeight = 10.0

// barcodeSection draws the tracking pattern as a tagged group of bar rectangles,
// stretched to the section width, with the human-readable code centred
// beneath it.
func (b *builder) barcodeSection(sec *scene.Node, key label.SectionKey, height float64) {
	bars, _ := label.Field("barcode.bars")
	text, _ := label.Field("barcode.text")
	barsState := b.state.Field(bars.Key)
	textState := b.state.Field(text.Key)

	code := b.data.Value(bars.DataKey)
	width := label.ContentWidth - 2*InnerPadding
	barH := height - 2*InnerPadding
	if textState.Visible {
		barH -= textState.FontSize + FieldPadding
	}
	barH = max(minBarHeight, barH)

	if barsState.Visible {
		p := barcode.Synthesize(code)
		widths := p.Scaled(width)
		g := &scene.Node{
			Kind:    scene.KindGroup,
			Tag:     scene.TagBarcode,
			Role:    scene.RoleBarcode,
			Section: key,
			Field:   bars.Key,
			X:       InnerPadding,
			Y:       InnerPadding,
			W:       width,
			H:       barH,
			Code:    code,
			Bars:    widths,
		}
		x := 0.0
		for i, w := range widths {
			if barcode.IsBar(i) {
				g.Add(&scene.Node{
					Kind:    scene.KindRect,
					Role:    scene.RoleBarcode,
					Section: key,
					Field:   bars.Key,
					X:       x,
					W:       w,
					H:       barH,
					Style:   scene.Style{Fill: colorInk},
				})
			}
			x += w
		}
		sec.Add(g)
	}

	if textState.Visible {
		y := InnerPadding
		if barsState.Visible {
			y += barH + FieldPadding
		}
		sec.Add(b.text(code, textState.FontSize, false, label.ContentWidth/2, y, scene.AnchorCenter,
			scene.RoleField, text.Key))
	}
}
