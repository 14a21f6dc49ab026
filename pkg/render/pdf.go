package render

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/matzehuels/labelkit/pkg/buildinfo"
	"github.com/matzehuels/labelkit/pkg/export"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title   string
	subject string
	faces   *Faces
}

// WithTitle sets the PDF document title.
func WithTitle(title string) PDFOption {
	return func(r *pdfRenderer) { r.title = title }
}

// WithSubject sets the PDF subject, typically the tracking number.
func WithSubject(subject string) PDFOption {
	return func(r *pdfRenderer) { r.subject = subject }
}

// WithPDFFaces uses the given faces instead of the default ones.
func WithPDFFaces(f *Faces) PDFOption {
	return func(r *pdfRenderer) { r.faces = f }
}

// RenderPDF writes the document as a single-page PDF at print size.
func RenderPDF(doc export.Document, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{title: "Shipping label"}
	for _, opt := range opts {
		opt(&r)
	}
	faces, err := facesOrDefault(r.faces)
	if err != nil {
		return nil, err
	}

	c := drawDocument(doc, faces)
	var buf bytes.Buffer
	writer := pdf.New(&buf, doc.Canvas.Width*pxToMM, doc.Canvas.Height*pxToMM, nil)
	writer.SetInfo(r.title, r.subject, "shipping label", "", buildinfo.Producer())
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
