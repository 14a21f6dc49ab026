package pipeline

import (
	"slices"
	"strings"

	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/render"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatSVG  = "svg"
)

type renderFunc func(doc export.Document, scale float64) ([]byte, error)

var renderers = map[string]renderFunc{
	FormatJSON: func(doc export.Document, _ float64) ([]byte, error) {
		return export.Marshal(doc)
	},
	FormatPNG: func(doc export.Document, scale float64) ([]byte, error) {
		return render.RenderPNG(doc, render.WithScale(scale))
	},
	FormatPDF: func(doc export.Document, _ float64) ([]byte, error) {
		return render.RenderPDF(doc, render.WithSubject(trackingCode(doc)))
	},
	FormatSVG: func(doc export.Document, _ float64) ([]byte, error) {
		return render.RenderSVG(doc, render.WithEmbeddedFont()), nil
	},
}

// Formats lists the supported output formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(renderers))
	for f := range renderers {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// IsFormat reports whether format is supported.
func IsFormat(format string) bool {
	_, ok := renderers[format]
	return ok
}

// ValidateFormat returns an UNSUPPORTED error for an unknown format.
func ValidateFormat(format string) error {
	if IsFormat(format) {
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
}

// ValidateFormats checks every format in turn.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// RenderFormat renders a document in one format.
func RenderFormat(doc export.Document, format string, scale float64) ([]byte, error) {
	fn, ok := renderers[format]
	if !ok {
		return nil, ValidateFormat(format)
	}
	return fn(doc, scale)
}

// RenderAll renders every requested format.
func RenderAll(doc export.Document, formats []string, scale float64) (map[string][]byte, error) {
	out := make(map[string][]byte, len(formats))
	for _, f := range formats {
		data, err := RenderFormat(doc, f, scale)
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}

// trackingCode is the code of the first barcode element, used as the PDF
// subject.
func trackingCode(doc export.Document) string {
	for _, el := range doc.Elements {
		if el.Code != "" {
			return el.Code
		}
	}
	return ""
}
