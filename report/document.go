package report

import (
	"github.com/navette-vtc/navette/internal/billing"
	"github.com/navette-vtc/navette/internal/company"
	"github.com/navette-vtc/navette/internal/render"
)

// DocumentEncoder renders a document through the layout model and encodes the
// result as a PDF. It implements the printable-encoder collaborator of the
// billing handler.
type DocumentEncoder struct {
	pdf *PDFEncoder
}

func NewDocumentEncoder() *DocumentEncoder {
	return &DocumentEncoder{pdf: NewPDFEncoder()}
}

// EncodeDocument returns the artifact bytes and its download filename,
// devis_<number>.pdf or facture_<number>.pdf depending on the document state.
func (e *DocumentEncoder) EncodeDocument(doc *billing.Document, profile company.Profile) ([]byte, string, error) {
	blocks := render.Render(doc, profile)
	data, err := e.pdf.Encode(blocks)
	if err != nil {
		return nil, "", err
	}
	return data, render.ArtifactName(doc, "pdf"), nil
}
