package billing

import "time"

// ClientPayload mirrors the embedded client value on the wire.
type ClientPayload struct {
	LastName  string `json:"last_name" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// CreateDocumentRequest is the quote-creation payload. Exactly one service
// parameter set must be populated, matching ServiceType.
type CreateDocumentRequest struct {
	Client             ClientPayload `json:"client"`
	ServiceType        ServiceType   `json:"service_type" validate:"required,oneof=transfer hourly_hire"`
	PickupAddress      string        `json:"pickup_address,omitempty"`
	DestinationAddress string        `json:"destination_address,omitempty"`
	DistanceKm         float64       `json:"distance_km,omitempty"`
	DurationHours      float64       `json:"duration_hours,omitempty"`
}

// DocumentResponse is the full document as exposed to the presentation layer.
type DocumentResponse struct {
	ID                 string        `json:"id"`
	DocNumber          string        `json:"doc_number"`
	CreationDate       time.Time     `json:"creation_date"`
	ValidityDate       time.Time     `json:"validity_date"`
	Client             ClientPayload `json:"client"`
	ServiceType        ServiceType   `json:"service_type"`
	PickupAddress      *string       `json:"pickup_address,omitempty"`
	DestinationAddress *string       `json:"destination_address,omitempty"`
	DistanceKm         *float64      `json:"distance_km,omitempty"`
	DurationHours      *float64      `json:"duration_hours,omitempty"`
	UnitPrice          float64       `json:"unit_price"`
	PriceExcludingTax  float64       `json:"price_excluding_tax"`
	TaxRate            float64       `json:"tax_rate"`
	TaxAmount          float64       `json:"tax_amount"`
	PriceIncludingTax  float64       `json:"price_including_tax"`
	IsInvoice          bool          `json:"is_invoice"`
}

// NewDocumentResponse flattens a Document into its wire shape.
func NewDocumentResponse(doc *Document) DocumentResponse {
	resp := DocumentResponse{
		ID:           doc.ID,
		DocNumber:    doc.DocNumber,
		CreationDate: doc.CreationDate,
		ValidityDate: doc.ValidityDate,
		Client: ClientPayload{
			LastName:  doc.Client.LastName,
			FirstName: doc.Client.FirstName,
			Address:   doc.Client.Address,
			Phone:     doc.Client.Phone,
			Email:     doc.Client.Email,
		},
		ServiceType:       doc.Service.ServiceType(),
		UnitPrice:         doc.Price.UnitPrice.InexactFloat64(),
		PriceExcludingTax: doc.Price.PriceExcludingTax.InexactFloat64(),
		TaxRate:           doc.Price.TaxRate.InexactFloat64(),
		TaxAmount:         doc.Price.TaxAmount.InexactFloat64(),
		PriceIncludingTax: doc.Price.PriceIncludingTax.InexactFloat64(),
		IsInvoice:         doc.IsInvoice,
	}

	switch s := doc.Service.(type) {
	case Transfer:
		resp.PickupAddress = &s.PickupAddress
		resp.DestinationAddress = &s.DestinationAddress
		resp.DistanceKm = &s.DistanceKm
	case HourlyHire:
		resp.DurationHours = &s.DurationHours
	}
	return resp
}
