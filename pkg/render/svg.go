package render

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image/png"
	"strings"

	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/fonts"
	"github.com/matzehuels/labelkit/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFont bool
}

// WithEmbeddedFont inlines the regular Go font as an @font-face rule so the
// preview matches print metrics in any browser.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// RenderSVG renders the document as a standalone SVG in canvas pixels.
func RenderSVG(doc export.Document, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := doc.Canvas.Width, doc.Canvas.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.embedFont {
		fmt.Fprintf(&buf, "  <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s); }</style>\n",
			fonts.FontFamily, fonts.RegularTTFBase64())
	}
	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", escapeXML(fonts.FallbackFontFamily))
	for _, s := range plan(doc) {
		writeShape(&buf, s)
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func writeShape(buf *bytes.Buffer, s shape) {
	switch s.kind {
	case shapeRect:
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
			s.x, s.y, s.w, s.h, svgPaint(s.fill), strokeAttrs(s))
	case shapeLine:
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
			s.x, s.y, s.x2, s.y2, strokeAttrs(s))
	case shapeText:
		weight := "normal"
		if s.bold {
			weight = "bold"
		}
		var transform string
		if s.rotation != 0 {
			transform = fmt.Sprintf(` transform="rotate(%g %.2f %.2f)"`, s.rotation, s.x, s.y)
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%g" font-weight="%s" fill="%s" text-anchor="%s" dominant-baseline="hanging"%s>%s</text>`+"\n",
			s.anchorX(), s.y, s.size, weight, svgPaint(s.fill), svgAnchor(s.anchor), transform, escapeXML(s.text))
	case shapeImage:
		href := s.src
		if !strings.HasPrefix(href, "data:image/png") {
			// re-encode so every browser can show it
			var png64 bytes.Buffer
			if err := png.Encode(&png64, s.img); err != nil {
				return
			}
			href = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png64.Bytes())
		}
		fmt.Fprintf(buf, `    <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" href="%s" preserveAspectRatio="xMinYMid meet"/>`+"\n",
			s.x, s.y, s.w, s.h, escapeXML(href))
	}
}

func strokeAttrs(s shape) string {
	if s.stroke == "" || s.stroke == "none" || s.strokeWidth <= 0 {
		return ""
	}
	attrs := fmt.Sprintf(` stroke="%s" stroke-width="%g"`, s.stroke, s.strokeWidth)
	if len(s.dash) > 0 {
		parts := make([]string, len(s.dash))
		for i, d := range s.dash {
			parts[i] = fmt.Sprintf("%g", d)
		}
		attrs += fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	return attrs
}

func svgAnchor(a scene.Anchor) string {
	switch a {
	case scene.AnchorRight:
		return "end"
	case scene.AnchorCenter:
		return "middle"
	}
	return "start"
}

func svgPaint(c string) string {
	if c == "" {
		return "none"
	}
	return escapeXML(c)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
