package export

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/labelkit/pkg/errors"
)

// Version is the export document format version.
const Version = "1.0"

// Document is a flattened, self-contained description of a rendered label.
// Every element carries absolute canvas coordinates, so a document can be
// re-rendered without the editor state or scene graph that produced it.
type Document struct {
	Version  string    `json:"version"`
	Canvas   Canvas    `json:"canvas"`
	Sections Sections  `json:"sections"`
	Elements []Element `json:"elements"`
}

// Canvas holds the fixed label geometry.
type Canvas struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	BorderWidth float64 `json:"borderWidth"`
}

// Sections records the section order and heights at export time.
type Sections struct {
	Order   []string           `json:"order"`
	Heights map[string]float64 `json:"heights"`
}

// Element is one drawable unit with absolute coordinates. Lines carry
// Endpoints, everything else carries Dimensions.
type Element struct {
	Type        string      `json:"type"`
	ElementType string      `json:"elementType"`
	Section     string      `json:"section,omitempty"`
	Field       string      `json:"field,omitempty"`
	AbsoluteX   float64     `json:"absoluteX"`
	AbsoluteY   float64     `json:"absoluteY"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	Endpoints   *Endpoints  `json:"endpoints,omitempty"`
	Text        string      `json:"text,omitempty"`
	Lines       []string    `json:"lines,omitempty"`
	Overflow    bool        `json:"overflow,omitempty"`
	Src         string      `json:"src,omitempty"`
	Code        string      `json:"code,omitempty"`
	Bars        []float64   `json:"bars,omitempty"`
	Style       Style       `json:"style"`
}

// Dimensions is the size of a non-line element.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Endpoints are the absolute endpoints of a line.
type Endpoints struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Style is the visual style of an element.
type Style struct {
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
	FontSize    float64   `json:"fontSize,omitempty"`
	FontWeight  string    `json:"fontWeight,omitempty"`
	Anchor      string    `json:"anchor,omitempty"`
	Rotation    float64   `json:"rotation,omitempty"`
}

// Marshal encodes a document as indented JSON.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode export document")
	}
	return data, nil
}

// Read decodes a document and checks its version.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode export document")
	}
	if doc.Version != Version {
		return Document{}, errors.New(errors.ErrCodeUnsupported, "unsupported export version %q", doc.Version)
	}
	return doc, nil
}
