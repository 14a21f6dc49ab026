package layout

import "unicode/utf8"

const (
	fontCharWidth     = 0.55
	fontBoldCharWidth = 0.6
	lineHeightRatio   = 1.2
	ellipsis          = ".."
)

// Measurer reports the rendered width of a single line of text in pixels.
type Measurer interface {
	TextWidth(text string, size float64, bold bool) float64
}

// MeasureFunc adapts a function to [Measurer].
type MeasureFunc func(text string, size float64, bold bool) float64

// TextWidth implements Measurer.
func (f MeasureFunc) TextWidth(text string, size float64, bold bool) float64 {
	return f(text, size, bold)
}

// ApproxMeasurer estimates widths from an average character width. It is the
// default and needs no font data.
type ApproxMeasurer struct{}

// TextWidth implements Measurer.
func (ApproxMeasurer) TextWidth(text string, size float64, bold bool) float64 {
	ratio := fontCharWidth
	if bold {
		ratio = fontBoldCharWidth
	}
	return float64(utf8.RuneCountInString(text)) * size * ratio
}

// Truncate shortens text with a trailing ".." so it fits maxWidth.
func Truncate(m Measurer, text string, size float64, bold bool, maxWidth float64) string {
	if m.TextWidth(text, size, bold) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + ellipsis
		if m.TextWidth(s, size, bold) <= maxWidth {
			return s
		}
	}
	return ellipsis
}

// LineHeight returns the advance between wrapped lines of a font size.
func LineHeight(size float64) float64 {
	return size * lineHeightRatio
}
