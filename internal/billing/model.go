package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceType string

const (
	ServiceTransfer   ServiceType = "transfer"
	ServiceHourlyHire ServiceType = "hourly_hire"
)

// ServiceDetails is the tagged service variant carried by a Document. Exactly
// one concrete type exists per ServiceType, so a document can never pair a
// transfer with an hourly parameter.
type ServiceDetails interface {
	ServiceType() ServiceType
}

// Transfer is a point-to-point trip priced per kilometre.
type Transfer struct {
	PickupAddress      string
	DestinationAddress string
	DistanceKm         float64
}

func (Transfer) ServiceType() ServiceType { return ServiceTransfer }

// HourlyHire is a time-based hire priced per hour.
type HourlyHire struct {
	DurationHours float64
}

func (HourlyHire) ServiceType() ServiceType { return ServiceHourlyHire }

// Client is a value snapshot embedded in a Document at creation time. It has
// no identity of its own.
type Client struct {
	LastName  string
	FirstName string
	Address   string
	Phone     string
	Email     string
}

// Price is the monetary breakdown frozen onto a Document when it is created.
// Later tariff changes never alter it.
type Price struct {
	UnitPrice         decimal.Decimal
	PriceExcludingTax decimal.Decimal
	TaxRate           decimal.Decimal
	TaxAmount         decimal.Decimal
	PriceIncludingTax decimal.Decimal
}

// Document is either a quote (devis) or an invoice (facture); the two share
// one shape and are distinguished by IsInvoice. Every field except IsInvoice
// is immutable once assigned, and IsInvoice flips false to true exactly once.
type Document struct {
	ID           string
	DocNumber    string
	CreationDate time.Time
	ValidityDate time.Time
	Client       Client
	Service      ServiceDetails
	Price        Price
	IsInvoice    bool
}
