// Package report binds the abstract page description produced by the
// renderer to a downloadable PDF artifact.
package report

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/navette-vtc/navette/internal/render"
)

// PDFEncoder turns a positioned-text sequence into a single-page A4 PDF.
// Coordinates are interpreted as millimetres from the top-left corner,
// matching the renderer's coordinate system.
type PDFEncoder struct {
	fontFamily string
}

// NewPDFEncoder constructs an encoder using the built-in Helvetica font.
func NewPDFEncoder() *PDFEncoder {
	return &PDFEncoder{fontFamily: "Helvetica"}
}

// Encode writes every block at its absolute position and returns the PDF
// bytes.
func (e *PDFEncoder) Encode(blocks []render.PositionedText) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont(e.fontFamily, "", 12)

	for _, b := range blocks {
		pdf.SetFontSize(b.FontSize)
		pdf.Text(b.X, b.Y, tr(b.Text))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}
