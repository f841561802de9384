package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VAT rates are fixed business constants: 10% on transfers, 20% on hourly
// hires.
var (
	taxRateTransfer = decimal.New(10, -2)
	taxRateHourly   = decimal.New(20, -2)
)

// Tariffs are the per-unit prices configured at the company level, applied at
// quote-creation time.
type Tariffs struct {
	TransferRatePerKm float64
	HourlyRate        float64
}

// ComputePrice derives the monetary breakdown for a service. It is pure and
// deterministic: re-rendering a document never changes its stored totals.
// Each named step is rounded half-up to two decimals before the next one uses
// it, so totals match the frozen per-stage values rather than a re-derivation
// from floating intermediates.
func ComputePrice(svc ServiceDetails, tariffs Tariffs) (Price, error) {
	var (
		unit     decimal.Decimal
		quantity decimal.Decimal
		taxRate  decimal.Decimal
	)

	switch s := svc.(type) {
	case Transfer:
		if s.DistanceKm <= 0 {
			return Price{}, fmt.Errorf("%w: distance must be positive, got %v", ErrInvalidServiceParameter, s.DistanceKm)
		}
		if tariffs.TransferRatePerKm <= 0 {
			return Price{}, fmt.Errorf("%w: transfer rate must be positive, got %v", ErrInvalidTariff, tariffs.TransferRatePerKm)
		}
		unit = decimal.NewFromFloat(tariffs.TransferRatePerKm)
		quantity = decimal.NewFromFloat(s.DistanceKm)
		taxRate = taxRateTransfer
	case HourlyHire:
		if s.DurationHours <= 0 {
			return Price{}, fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidServiceParameter, s.DurationHours)
		}
		if tariffs.HourlyRate <= 0 {
			return Price{}, fmt.Errorf("%w: hourly rate must be positive, got %v", ErrInvalidTariff, tariffs.HourlyRate)
		}
		unit = decimal.NewFromFloat(tariffs.HourlyRate)
		quantity = decimal.NewFromFloat(s.DurationHours)
		taxRate = taxRateHourly
	default:
		return Price{}, fmt.Errorf("%w: unsupported service details %T", ErrInvalidServiceParameter, svc)
	}

	excl := quantity.Mul(unit).Round(2)
	tax := excl.Mul(taxRate).Round(2)
	incl := excl.Add(tax).Round(2)

	return Price{
		UnitPrice:         unit,
		PriceExcludingTax: excl,
		TaxRate:           taxRate,
		TaxAmount:         tax,
		PriceIncludingTax: incl,
	}, nil
}
