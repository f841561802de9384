// Package render maps a finalized document and the company profile into an
// ordered sequence of positioned text blocks, a deterministic page
// description ready for a printable-file encoder.
package render

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/navette-vtc/navette/internal/billing"
	"github.com/navette-vtc/navette/internal/company"
)

// PositionedText is one text block in page-relative units, origin top-left.
// The coordinate system is identical for quotes and invoices.
type PositionedText struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
}

const (
	leftMargin   = 20.0
	headerX      = 150.0
	totalsX      = 120.0
	serviceBodyY = 150.0
	totalsRowGap = 15.0
)

var french = message.NewPrinter(language.French)

// Render lays out a document. It is pure: rendering twice yields an
// identical block sequence, and stored totals are printed as frozen, never
// recomputed.
func Render(doc *billing.Document, profile company.Profile) []PositionedText {
	blocks := make([]PositionedText, 0, 20)
	add := func(text string, x, y, size float64) {
		blocks = append(blocks, PositionedText{Text: text, X: x, Y: y, FontSize: size})
	}

	// Company block, left margin.
	add(profile.LegalName, leftMargin, 20, 16)
	add("SIRET: "+profile.SIRET, leftMargin, 30, 10)
	add(profile.Address, leftMargin, 40, 10)
	add("Tel: "+profile.Phone, leftMargin, 50, 10)
	add("Email: "+profile.Email, leftMargin, 60, 10)

	// Document header, right side.
	label := "DEVIS"
	if doc.IsInvoice {
		label = "FACTURE"
	}
	add(label, headerX, 20, 18)
	add("N°: "+doc.DocNumber, headerX, 35, 12)
	add("Date: "+doc.CreationDate.Format("02/01/2006"), headerX, 45, 12)
	add("Validité: "+doc.ValidityDate.Format("02/01/2006"), headerX, 55, 12)

	// Client block, below the company block.
	add("CLIENT:", leftMargin, 80, 14)
	add(doc.Client.LastName+" "+doc.Client.FirstName, leftMargin, 90, 10)
	add(doc.Client.Address, leftMargin, 100, 10)
	add("Tel: "+doc.Client.Phone, leftMargin, 110, 10)
	add("Email: "+doc.Client.Email, leftMargin, 120, 10)

	// Service block. The hourly branch is shorter, so the totals position
	// depends on which branch was taken.
	add("PRESTATION:", leftMargin, 140, 14)
	y := serviceBodyY
	switch s := doc.Service.(type) {
	case billing.Transfer:
		add("Type: Transfert", leftMargin, y, 10)
		add("De: "+s.PickupAddress, leftMargin, y+10, 10)
		add("À: "+s.DestinationAddress, leftMargin, y+20, 10)
		add("Distance: "+formatQuantity(s.DistanceKm)+" km", leftMargin, y+30, 10)
		add("Prix unitaire: "+euros(doc.Price.UnitPrice)+"/km", leftMargin, y+40, 10)
		y += 50
	case billing.HourlyHire:
		add("Type: Mise à disposition", leftMargin, y, 10)
		add("Durée: "+formatQuantity(s.DurationHours)+" heures", leftMargin, y+10, 10)
		add("Prix unitaire: "+euros(doc.Price.UnitPrice)+"/h", leftMargin, y+20, 10)
		y += 30
	}

	// Totals block, frozen amounts to exactly two decimals.
	ratePercent := doc.Price.TaxRate.Mul(decimal.New(100, 0)).Round(0)
	add("Prix HT: "+euros(doc.Price.PriceExcludingTax), totalsX, y, 12)
	add(fmt.Sprintf("TVA (%s%%): %s", ratePercent, euros(doc.Price.TaxAmount)), totalsX, y+totalsRowGap, 12)
	add("Prix TTC: "+euros(doc.Price.PriceIncludingTax), totalsX, y+2*totalsRowGap, 12)

	return blocks
}

// ArtifactName is the naming convention for the rendered artifact:
// devis_<number>.<ext> for quotes, facture_<number>.<ext> for invoices.
func ArtifactName(doc *billing.Document, ext string) string {
	prefix := "devis"
	if doc.IsInvoice {
		prefix = "facture"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, doc.DocNumber, ext)
}

// euros formats a monetary amount in the French locale, two decimals with a
// comma separator and a euro suffix.
func euros(amount decimal.Decimal) string {
	return french.Sprintf("%.2f", amount.InexactFloat64()) + "€"
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
