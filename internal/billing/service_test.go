package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/navette-vtc/navette/internal/platform/sequence"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	clock := fixedClock{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}
	svc := NewService(repo, sequence.NewMemory(), clock, 30*24*time.Hour)
	return svc, repo
}

func validTransferRequest() CreateDocumentRequest {
	return CreateDocumentRequest{
		Client: ClientPayload{
			LastName:  "Martin",
			FirstName: "Claire",
			Address:   "8 avenue des Lilas, 75012 Paris",
			Phone:     "0612345678",
			Email:     "claire.martin@example.fr",
		},
		ServiceType:        ServiceTransfer,
		PickupAddress:      "Aéroport CDG Terminal 2",
		DestinationAddress: "Gare de Lyon",
		DistanceKm:         50,
	}
}

func defaultTariffs() Tariffs {
	return Tariffs{TransferRatePerKm: 2.0, HourlyRate: 80.0}
}

func TestCreateQuoteTransfer(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "DEV-20260831-0001", doc.DocNumber)
	assert.Equal(t, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), doc.CreationDate)
	assert.Equal(t, time.Date(2026, 9, 30, 10, 0, 0, 0, time.UTC), doc.ValidityDate)
	assert.False(t, doc.IsInvoice)
	assert.Equal(t, "Martin", doc.Client.LastName)

	require.IsType(t, Transfer{}, doc.Service)
	assert.Equal(t, "100", doc.Price.PriceExcludingTax.String())
	assert.Equal(t, "10", doc.Price.TaxAmount.String())
	assert.Equal(t, "110", doc.Price.PriceIncludingTax.String())
}

func TestCreateQuoteHourlyHire(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.CreateQuote(context.Background(), CreateDocumentRequest{
		Client:        validTransferRequest().Client,
		ServiceType:   ServiceHourlyHire,
		DurationHours: 3,
	}, defaultTariffs())
	require.NoError(t, err)

	require.IsType(t, HourlyHire{}, doc.Service)
	assert.Equal(t, "240", doc.Price.PriceExcludingTax.String())
	assert.Equal(t, "48", doc.Price.TaxAmount.String())
	assert.Equal(t, "288", doc.Price.PriceIncludingTax.String())
}

func TestCreateQuoteSequentialNumbers(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)
	second, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)

	assert.Equal(t, "DEV-20260831-0001", first.DocNumber)
	assert.Equal(t, "DEV-20260831-0002", second.DocNumber)
}

func TestCreateQuoteCollectsEveryViolation(t *testing.T) {
	svc, _ := newTestService(t)

	req := CreateDocumentRequest{
		ServiceType: ServiceTransfer,
		DistanceKm:  -5,
	}
	_, err := svc.CreateQuote(context.Background(), req, defaultTariffs())
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrInvalidServiceParameter)

	fields := make(map[string]bool)
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["client.last_name"])
	assert.True(t, fields["client.first_name"])
	assert.True(t, fields["client.address"])
	assert.True(t, fields["client.phone"])
	assert.True(t, fields["client.email"])
	assert.True(t, fields["distance_km"])
	assert.True(t, fields["pickup_address"])
	assert.True(t, fields["destination_address"])
}

func TestCreateQuoteRejectsMismatchedParameter(t *testing.T) {
	svc, _ := newTestService(t)

	req := validTransferRequest()
	req.DurationHours = 2 // does not belong on a transfer
	_, err := svc.CreateQuote(context.Background(), req, defaultTariffs())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidServiceParameter)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "duration_hours", verr.Fields[0].Field)
}

func TestCreateQuoteNothingPersistedOnValidationFailure(t *testing.T) {
	svc, repo := newTestService(t)

	req := validTransferRequest()
	req.DistanceKm = 0
	_, err := svc.CreateQuote(context.Background(), req, defaultTariffs())
	require.Error(t, err)

	docs, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPricesFrozenAgainstTariffChanges(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)

	// A later save doubles the tariff; the existing document must not move.
	_, err = svc.CreateQuote(context.Background(), validTransferRequest(), Tariffs{TransferRatePerKm: 4.0, HourlyRate: 160.0})
	require.NoError(t, err)

	reread, err := svc.GetDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", reread.Price.PriceExcludingTax.String())
	assert.Equal(t, "10", reread.Price.TaxAmount.String())
	assert.Equal(t, "110", reread.Price.PriceIncludingTax.String())
	assert.Equal(t, "2", reread.Price.UnitPrice.String())
}

func TestConvertToInvoiceIsOneWay(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)

	converted, err := svc.ConvertToInvoice(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.True(t, converted.IsInvoice)

	// Everything but the flag is untouched.
	assert.Equal(t, doc.DocNumber, converted.DocNumber)
	assert.Equal(t, doc.CreationDate, converted.CreationDate)
	assert.Equal(t, doc.ValidityDate, converted.ValidityDate)
	assert.Equal(t, doc.Client, converted.Client)
	assert.True(t, doc.Price.PriceIncludingTax.Equal(converted.Price.PriceIncludingTax))

	_, err = svc.ConvertToInvoice(context.Background(), doc.ID)
	assert.ErrorIs(t, err, ErrAlreadyConverted)
}

func TestConvertToInvoiceUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ConvertToInvoice(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentConversionsExactlyOneWins(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)

	const attempts = 16
	var successes, converted int
	var mu sync.Mutex

	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		g.Go(func() error {
			_, err := svc.ConvertToInvoice(context.Background(), doc.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return nil
			}
			if errors.Is(err, ErrAlreadyConverted) {
				converted++
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, converted)
}

func TestConcurrentCreatesGetDistinctNumbers(t *testing.T) {
	svc, _ := newTestService(t)

	const n = 32
	numbers := make(chan string, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			doc, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
			if err != nil {
				return err
			}
			numbers <- doc.DocNumber
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(numbers)

	seen := make(map[string]bool)
	for num := range numbers {
		assert.False(t, seen[num], "duplicate document number %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestListQuotesAndInvoices(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)
	second, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)
	third, err := svc.CreateQuote(context.Background(), validTransferRequest(), defaultTariffs())
	require.NoError(t, err)

	_, err = svc.ConvertToInvoice(context.Background(), second.ID)
	require.NoError(t, err)

	quotes, err := svc.ListQuotes(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, first.ID, quotes[0].ID)
	assert.Equal(t, third.ID, quotes[1].ID)

	invoices, err := svc.ListInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, second.ID, invoices[0].ID)
	assert.True(t, invoices[0].IsInvoice)
}
