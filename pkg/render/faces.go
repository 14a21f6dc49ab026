package render

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/labelkit/pkg/fonts"
	"github.com/matzehuels/labelkit/pkg/layout"
)

// Unit conversions. A canvas pixel is 1/100 inch.
const (
	pxToMM    = 0.254
	pxToPt    = 0.72
	dotsPerMM = 100 / 25.4
)

// Faces loads the Go fonts into a canvas font family and hands out faces by
// pixel size. It is safe for concurrent use.
type Faces struct {
	family *canvas.FontFamily

	mu    sync.Mutex
	faces map[faceKey]*canvas.FontFace
}

type faceKey struct {
	size float64
	bold bool
	fill color.RGBA
}

// LoadFaces parses the embedded fonts.
func LoadFaces() (*Faces, error) {
	family := canvas.NewFontFamily(fonts.FontFamily)
	if err := family.LoadFont(fonts.RegularTTF(), 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := family.LoadFont(fonts.BoldTTF(), 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Faces{family: family, faces: map[faceKey]*canvas.FontFace{}}, nil
}

var (
	defaultFaces    *Faces
	defaultFacesErr error
	defaultOnce     sync.Once
)

// DefaultFaces returns a process-wide Faces, loaded on first use.
func DefaultFaces() (*Faces, error) {
	defaultOnce.Do(func() {
		defaultFaces, defaultFacesErr = LoadFaces()
	})
	return defaultFaces, defaultFacesErr
}

// Face returns a face for a font size in canvas pixels.
func (f *Faces) Face(sizePx float64, bold bool, fill color.RGBA) *canvas.FontFace {
	key := faceKey{sizePx, bold, fill}
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face
	}
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	face := f.family.Face(sizePx*pxToPt, fill, style, canvas.FontNormal)
	f.faces[key] = face
	return face
}

// FontMeasurer measures text with the same faces used for print, in canvas
// pixels.
type FontMeasurer struct {
	faces *Faces
}

var _ layout.Measurer = (*FontMeasurer)(nil)

// NewFontMeasurer returns a measurer backed by the default faces.
func NewFontMeasurer() (*FontMeasurer, error) {
	faces, err := DefaultFaces()
	if err != nil {
		return nil, err
	}
	return &FontMeasurer{faces: faces}, nil
}

// TextWidth implements layout.Measurer.
func (m *FontMeasurer) TextWidth(text string, size float64, bold bool) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	face := m.faces.Face(size, bold, color.RGBA{A: 0xff})
	return face.TextWidth(text) / pxToMM
}
