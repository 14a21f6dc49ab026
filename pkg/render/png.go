package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/labelkit/pkg/export"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	faces *Faces
}

// WithScale sets the PNG scale factor (default 1.0, i.e. 100 DPI).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGFaces uses the given faces instead of the default ones.
func WithPNGFaces(f *Faces) PNGOption {
	return func(r *pngRenderer) { r.faces = f }
}

// RenderPNG rasterizes the document. At scale 1 a 400 × 600 canvas becomes a
// 400 × 600 pixel image.
func RenderPNG(doc export.Document, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	faces, err := facesOrDefault(r.faces)
	if err != nil {
		return nil, err
	}

	c := drawDocument(doc, faces)
	img := rasterizer.Draw(c, canvas.DPMM(dotsPerMM*r.scale), canvas.DefaultColorSpace)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func facesOrDefault(f *Faces) (*Faces, error) {
	if f != nil {
		return f, nil
	}
	return DefaultFaces()
}
