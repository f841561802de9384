package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navette-vtc/navette/internal/billing"
	"github.com/navette-vtc/navette/internal/company"
	"github.com/navette-vtc/navette/internal/render"
)

func sampleDocument() *billing.Document {
	return &billing.Document{
		ID:           "5a2b7c1d-4f6e-4d8a-9b0c-1e2f3a4b5c6d",
		DocNumber:    "DEV-20260831-0007",
		CreationDate: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		ValidityDate: time.Date(2026, 9, 30, 10, 0, 0, 0, time.UTC),
		Client: billing.Client{
			LastName:  "Durand",
			FirstName: "Paul",
			Address:   "3 place Bellecour, 69002 Lyon",
			Phone:     "0622334455",
			Email:     "paul.durand@example.fr",
		},
		Service: billing.Transfer{
			PickupAddress:      "Gare de Lyon Part-Dieu",
			DestinationAddress: "Aéroport Lyon-Saint Exupéry",
			DistanceKm:         28,
		},
		Price: billing.Price{
			UnitPrice:         decimal.NewFromFloat(2.0),
			PriceExcludingTax: decimal.NewFromFloat(56.0),
			TaxRate:           decimal.New(10, -2),
			TaxAmount:         decimal.NewFromFloat(5.6),
			PriceIncludingTax: decimal.NewFromFloat(61.6),
		},
	}
}

func TestEncodeProducesPDF(t *testing.T) {
	blocks := render.Render(sampleDocument(), company.DefaultProfile())

	data, err := NewPDFEncoder().Encode(blocks)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestEncodeEmptyBlockList(t *testing.T) {
	data, err := NewPDFEncoder().Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestEncodeDocumentFilenameFollowsState(t *testing.T) {
	enc := NewDocumentEncoder()
	doc := sampleDocument()

	data, filename, err := enc.EncodeDocument(doc, company.DefaultProfile())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "devis_DEV-20260831-0007.pdf", filename)

	doc.IsInvoice = true
	_, filename, err = enc.EncodeDocument(doc, company.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, "facture_DEV-20260831-0007.pdf", filename)
}
