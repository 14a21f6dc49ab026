package render

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/scene"
)

var transparent = color.RGBA{}

// drawDocument draws a document onto a new canvas sized in millimetres, with
// the origin at the top-left corner.
func drawDocument(doc export.Document, faces *Faces) *canvas.Canvas {
	c := canvas.New(doc.Canvas.Width*pxToMM, doc.Canvas.Height*pxToMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	for _, s := range plan(doc) {
		switch s.kind {
		case shapeRect:
			drawRect(ctx, s)
		case shapeText:
			drawText(ctx, s, faces)
		case shapeLine:
			drawLine(ctx, s)
		case shapeImage:
			drawImage(ctx, s)
		}
	}
	return c
}

func setStroke(ctx *canvas.Context, s shape) {
	if s.stroke == "" || s.stroke == "none" || s.strokeWidth <= 0 {
		ctx.SetStrokeColor(transparent)
		ctx.SetStrokeWidth(0)
		ctx.SetDashes(0)
		return
	}
	ctx.SetStrokeColor(parseColor(s.stroke))
	ctx.SetStrokeWidth(s.strokeWidth * pxToMM)
	dashes := make([]float64, len(s.dash))
	for i, d := range s.dash {
		dashes[i] = d * pxToMM
	}
	ctx.SetDashes(0, dashes...)
}

func drawRect(ctx *canvas.Context, s shape) {
	if s.w <= 0 || s.h <= 0 {
		return
	}
	ctx.SetFillColor(parseColor(s.fill))
	setStroke(ctx, s)
	ctx.DrawPath(s.x*pxToMM, s.y*pxToMM, canvas.Rectangle(s.w*pxToMM, s.h*pxToMM))
}

func drawLine(ctx *canvas.Context, s shape) {
	ctx.SetFillColor(transparent)
	setStroke(ctx, s)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo((s.x2-s.x)*pxToMM, (s.y2-s.y)*pxToMM)
	ctx.DrawPath(s.x*pxToMM, s.y*pxToMM, p)
}

// drawText draws a single line whose box top-left is (x, y), aligned to
// its anchor. Rotated text turns about the box corner.
func drawText(ctx *canvas.Context, s shape, faces *Faces) {
	if s.text == "" || s.size <= 0 {
		return
	}
	face := faces.Face(s.size, s.bold, parseColor(s.fill))
	line := canvas.NewTextLine(face, s.text, textAlign(s.anchor))
	ax, x, y := s.anchorX()*pxToMM, s.x*pxToMM, s.y*pxToMM
	baseline := y + face.Metrics().Ascent
	if s.rotation == 0 {
		ctx.DrawText(ax, baseline, line)
		return
	}
	ctx.Push()
	ctx.RotateAbout(s.rotation, x, y)
	ctx.DrawText(ax, baseline, line)
	ctx.Pop()
}

func textAlign(a scene.Anchor) canvas.TextAlign {
	switch a {
	case scene.AnchorRight:
		return canvas.Right
	case scene.AnchorCenter:
		return canvas.Center
	}
	return canvas.Left
}

// drawImage fits the image inside its box, keeping the aspect ratio.
func drawImage(ctx *canvas.Context, s shape) {
	b := s.img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || s.w <= 0 || s.h <= 0 {
		return
	}
	dpmm := max(float64(b.Dx())/(s.w*pxToMM), float64(b.Dy())/(s.h*pxToMM))
	ctx.DrawImage(s.x*pxToMM, s.y*pxToMM, s.img, canvas.DPMM(dpmm))
}

// parseColor accepts "#rgb" and "#rrggbb"; anything else is transparent.
func parseColor(s string) color.RGBA {
	if s == "" || s == "none" || s[0] != '#' || (len(s) != 4 && len(s) != 7) {
		return transparent
	}
	return canvas.Hex(s)
}
