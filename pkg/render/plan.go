package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/layout"
	"github.com/matzehuels/labelkit/pkg/scene"
)

const (
	defaultInk         = "#111827"
	defaultPlaceholder = "#e5e7eb"
	clipEpsilon        = 1e-6
)

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeText
	shapeLine
	shapeImage
)

// shape is one drawing primitive in canvas pixels. Renderers differ only in
// how they draw shapes; what gets drawn is decided once by plan.
type shape struct {
	kind shapeKind

	x, y, w, h float64
	x2, y2     float64

	fill        string
	stroke      string
	strokeWidth float64
	dash        []float64

	text     string
	size     float64
	bold     bool
	rotation float64
	anchor   scene.Anchor

	img image.Image
	src string
}

// plan converts document elements, in document order, into shapes.
func plan(doc export.Document) []shape {
	var out []shape
	for _, el := range doc.Elements {
		out = append(out, planElement(el)...)
	}
	return out
}

func planElement(el export.Element) []shape {
	var w, h float64
	if el.Dimensions != nil {
		w, h = el.Dimensions.Width, el.Dimensions.Height
	}
	switch scene.Kind(el.Type) {
	case scene.KindRect:
		return []shape{{
			kind: shapeRect, x: el.AbsoluteX, y: el.AbsoluteY, w: w, h: h,
			fill: el.Style.Fill, stroke: el.Style.Stroke, strokeWidth: el.Style.StrokeWidth, dash: el.Style.Dash,
		}}

	case scene.KindText:
		return []shape{textShape(el, el.Text, el.AbsoluteY)}

	case scene.KindTextbox:
		lines := el.Lines
		if len(lines) == 0 && el.Text != "" {
			lines = []string{el.Text}
		}
		lh := layout.LineHeight(el.Style.FontSize)
		var out []shape
		for i, line := range lines {
			bottom := float64(i+1) * lh
			if el.Dimensions != nil && bottom > h+clipEpsilon {
				break
			}
			out = append(out, textShape(el, line, el.AbsoluteY+float64(i)*lh))
		}
		return out

	case scene.KindLine:
		if el.Endpoints == nil {
			return nil
		}
		sw := el.Style.StrokeWidth
		if sw <= 0 {
			sw = 1
		}
		return []shape{{
			kind: shapeLine, x: el.Endpoints.X1, y: el.Endpoints.Y1, x2: el.Endpoints.X2, y2: el.Endpoints.Y2,
			stroke: orDefault(el.Style.Stroke, defaultInk), strokeWidth: sw, dash: el.Style.Dash,
		}}

	case scene.KindImage:
		img, err := decodeDataURL(el.Src)
		if err != nil {
			return []shape{{
				kind: shapeRect, x: el.AbsoluteX, y: el.AbsoluteY, w: w, h: h,
				fill: orDefault(el.Style.Fill, defaultPlaceholder),
			}}
		}
		return []shape{{kind: shapeImage, x: el.AbsoluteX, y: el.AbsoluteY, w: w, h: h, img: img, src: el.Src}}

	case scene.KindGroup:
		if el.ElementType != string(scene.RoleBarcode) {
			return nil
		}
		return barShapes(el, h)
	}
	return nil
}

func textShape(el export.Element, s string, y float64) shape {
	var w float64
	if el.Dimensions != nil {
		w = el.Dimensions.Width
	}
	return shape{
		kind:     shapeText,
		x:        el.AbsoluteX,
		y:        y,
		w:        w,
		text:     s,
		size:     el.Style.FontSize,
		bold:     el.Style.FontWeight == "bold",
		fill:     orDefault(el.Style.Fill, defaultInk),
		rotation: el.Style.Rotation,
		anchor:   scene.Anchor(el.Style.Anchor),
	}
}

// anchorX returns the x the text is aligned to. Right and centre anchored
// text is drawn from its anchor so that glyph widths that differ from the
// measured width do not move the aligned edge.
func (s shape) anchorX() float64 {
	switch s.anchor {
	case scene.AnchorRight:
		return s.x + s.w
	case scene.AnchorCenter:
		return s.x + s.w/2
	}
	return s.x
}

// barShapes expands a barcode element's width sequence into filled bars.
// Even positions are bars and odd positions are spaces.
func barShapes(el export.Element, h float64) []shape {
	fill := orDefault(el.Style.Fill, defaultInk)
	var out []shape
	x := el.AbsoluteX
	for i, w := range el.Bars {
		if i%2 == 0 {
			out = append(out, shape{kind: shapeRect, x: x, y: el.AbsoluteY, w: w, h: h, fill: fill})
		}
		x += w
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// decodeDataURL decodes a base64 "data:image/...;base64," URL.
func decodeDataURL(src string) (image.Image, error) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("data URL is not base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
