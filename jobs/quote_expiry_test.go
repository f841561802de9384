package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/navette-vtc/navette/internal/billing"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func storedDocument(id, number string, validity time.Time, isInvoice bool) billing.Document {
	return billing.Document{
		ID:           id,
		DocNumber:    number,
		CreationDate: validity.Add(-30 * 24 * time.Hour),
		ValidityDate: validity,
		Client: billing.Client{
			LastName:  "Bernard",
			FirstName: "Sophie",
			Address:   "5 rue Nationale, 59000 Lille",
			Phone:     "0633445566",
			Email:     "sophie.bernard@example.fr",
		},
		Service: billing.Transfer{
			PickupAddress:      "Gare Lille Flandres",
			DestinationAddress: "Aéroport de Lesquin",
			DistanceKm:         12,
		},
		Price: billing.Price{
			UnitPrice:         decimal.NewFromFloat(2.0),
			PriceExcludingTax: decimal.NewFromFloat(24.0),
			TaxRate:           decimal.New(10, -2),
			TaxAmount:         decimal.NewFromFloat(2.4),
			PriceIncludingTax: decimal.NewFromFloat(26.4),
		},
		IsInvoice: isInvoice,
	}
}

func TestQuoteExpiryScanLeavesDocumentsUntouched(t *testing.T) {
	repo := billing.NewMemoryRepository()
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 2, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, storedDocument("expired", "DEV-20260701-0001", now.Add(-24*time.Hour), false)))
	require.NoError(t, repo.Insert(ctx, storedDocument("open", "DEV-20260830-0002", now.Add(29*24*time.Hour), false)))
	require.NoError(t, repo.Insert(ctx, storedDocument("invoice", "DEV-20260601-0003", now.Add(-60*24*time.Hour), true)))

	handler := NewQuoteExpiryScanHandler(repo, fixedClock{now: now}, slog.New(slog.DiscardHandler))
	require.NoError(t, handler(ctx, NewQuoteExpiryScanTask()))

	// The scan only reports; no document changes state and the expired quote
	// is still listed as a quote.
	isInvoice := false
	quotes, err := repo.List(ctx, &isInvoice)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	for _, q := range quotes {
		require.False(t, q.IsInvoice)
	}
}

func TestQuoteExpiryScanWithEmptyRepository(t *testing.T) {
	repo := billing.NewMemoryRepository()
	handler := NewQuoteExpiryScanHandler(repo, fixedClock{now: time.Now().UTC()}, slog.New(slog.DiscardHandler))
	require.NoError(t, handler(context.Background(), NewQuoteExpiryScanTask()))
}
