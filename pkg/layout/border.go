package layout

import (
	"math"

	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

const (
	// BorderText is the string tiled along every edge.
	BorderText = "HANDLE WITH CARE"

	// BorderFontSize is the font size of the border text.
	BorderFontSize = 8.0

	// BorderMinGap is the smallest gap allowed between repetitions.
	BorderMinGap = 12.0
)

// TileSpacing returns how many copies of a text of width w fit along an edge
// of length l with at least minGap between them, and the symmetric padding
// (l − n·w) / (n + 1) that spaces them evenly. At least one copy is placed.
func TileSpacing(l, w, minGap float64) (n int, padding float64) {
	n = 1
	if w+minGap > 0 {
		n = max(1, int(math.Floor(l/(w+minGap))))
	}
	padding = (l - float64(n)*w) / float64(n+1)
	return n, padding
}

func (b *builder) border() *scene.Node {
	const (
		bw   = label.BorderWidth
		cw   = label.CanvasWidth
		ch   = label.CanvasHeight
		side = ch - 2*bw
	)
	g := scene.Group(0, 0)
	strip := func(x, y, w, h float64) *scene.Node {
		return &scene.Node{
			Kind:  scene.KindRect,
			Role:  scene.RoleBorder,
			X:     x,
			Y:     y,
			W:     w,
			H:     h,
			Style: scene.Style{Fill: colorBorder},
		}
	}
	g.Add(strip(0, 0, cw, bw), strip(0, ch-bw, cw, bw), strip(0, bw, bw, side), strip(cw-bw, bw, bw, side))

	size := BorderFontSize
	w := b.measure.TextWidth(BorderText, size, true)
	inset := (bw - size) / 2

	// top and bottom run left to right
	n, pad := TileSpacing(cw, w, BorderMinGap)
	for i := range n {
		x := pad + float64(i)*(w+pad)
		g.Add(b.borderText(x, inset, w, 0), b.borderText(x, ch-bw+inset, w, 0))
	}

	// left reads bottom to top, right reads top to bottom
	n, pad = TileSpacing(side, w, BorderMinGap)
	for i := range n {
		start := bw + pad + float64(i)*(w+pad)
		g.Add(b.borderText(inset, start+w, w, -90), b.borderText(cw-inset, start, w, 90))
	}
	return g
}

// borderText places a text whose unrotated box has its top-left corner at
// (x, y); the renderer rotates it about that point.
func (b *builder) borderText(x, y, w, rotation float64) *scene.Node {
	return &scene.Node{
		Kind: scene.KindText,
		Role: scene.RoleBorderText,
		X:    x,
		Y:    y,
		W:    w,
		H:    BorderFontSize,
		Text: BorderText,
		Style: scene.Style{
			Fill:       colorPaper,
			FontSize:   BorderFontSize,
			FontWeight: "bold",
			Anchor:     scene.AnchorLeft,
			Rotation:   rotation,
		},
	}
}
