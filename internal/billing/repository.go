package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/navette-vtc/navette/internal/platform/db"
)

// Repository is the storage collaborator for documents. Implementations must
// make MarkInvoice an atomic read-check-set: when two callers race to convert
// the same document, exactly one wins and the other observes
// ErrAlreadyConverted.
type Repository interface {
	Insert(ctx context.Context, doc Document) error
	Get(ctx context.Context, id string) (*Document, error)
	MarkInvoice(ctx context.Context, id string) (*Document, error)
	// List returns documents in creation order, oldest first. A nil filter
	// returns every document; otherwise only quotes (false) or invoices
	// (true).
	List(ctx context.Context, isInvoice *bool) ([]Document, error)
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const documentColumns = `id, doc_number, creation_date, validity_date,
	client_last_name, client_first_name, client_address, client_phone, client_email,
	service_type, pickup_address, destination_address, distance_km, duration_hours,
	unit_price, price_excl_tax, tax_rate, tax_amount, price_incl_tax, is_invoice`

func (r *pgRepository) Insert(ctx context.Context, doc Document) error {
	row := documentRowFrom(doc)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		row.ID, row.DocNumber, row.CreationDate, row.ValidityDate,
		row.ClientLastName, row.ClientFirstName, row.ClientAddress, row.ClientPhone, row.ClientEmail,
		row.ServiceType, row.PickupAddress, row.DestinationAddress, row.DistanceKm, row.DurationHours,
		row.UnitPrice, row.PriceExclTax, row.TaxRate, row.TaxAmount, row.PriceInclTax, row.IsInvoice,
	)
	if err != nil {
		return fmt.Errorf("%w: insert document %s: %v", db.ErrUnavailable, doc.ID, err)
	}
	return nil
}

func (r *pgRepository) Get(ctx context.Context, id string) (*Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get document %s: %v", db.ErrUnavailable, id, err)
	}
	return doc, nil
}

func (r *pgRepository) MarkInvoice(ctx context.Context, id string) (*Document, error) {
	// Conditional update so the check and the flip happen in one statement;
	// a concurrent conversion of the same id matches zero rows.
	tag, err := r.pool.Exec(ctx, `UPDATE documents SET is_invoice = TRUE WHERE id = $1 AND NOT is_invoice`, id)
	if err != nil {
		return nil, fmt.Errorf("%w: mark invoice %s: %v", db.ErrUnavailable, id, err)
	}
	if tag.RowsAffected() == 0 {
		doc, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if doc.IsInvoice {
			return nil, fmt.Errorf("document %s: %w", id, ErrAlreadyConverted)
		}
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *pgRepository) List(ctx context.Context, isInvoice *bool) ([]Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents`
	args := []any{}
	if isInvoice != nil {
		query += ` WHERE is_invoice = $1`
		args = append(args, *isInvoice)
	}
	query += ` ORDER BY creation_date ASC, doc_number ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list documents: %v", db.ErrUnavailable, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan document: %v", db.ErrUnavailable, err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list documents: %v", db.ErrUnavailable, err)
	}
	return docs, nil
}

type documentRow struct {
	ID                 string
	DocNumber          string
	CreationDate       time.Time
	ValidityDate       time.Time
	ClientLastName     string
	ClientFirstName    string
	ClientAddress      string
	ClientPhone        string
	ClientEmail        string
	ServiceType        string
	PickupAddress      *string
	DestinationAddress *string
	DistanceKm         *float64
	DurationHours      *float64
	UnitPrice          float64
	PriceExclTax       float64
	TaxRate            float64
	TaxAmount          float64
	PriceInclTax       float64
	IsInvoice          bool
}

func documentRowFrom(doc Document) documentRow {
	row := documentRow{
		ID:              doc.ID,
		DocNumber:       doc.DocNumber,
		CreationDate:    doc.CreationDate,
		ValidityDate:    doc.ValidityDate,
		ClientLastName:  doc.Client.LastName,
		ClientFirstName: doc.Client.FirstName,
		ClientAddress:   doc.Client.Address,
		ClientPhone:     doc.Client.Phone,
		ClientEmail:     doc.Client.Email,
		ServiceType:     string(doc.Service.ServiceType()),
		UnitPrice:       doc.Price.UnitPrice.InexactFloat64(),
		PriceExclTax:    doc.Price.PriceExcludingTax.InexactFloat64(),
		TaxRate:         doc.Price.TaxRate.InexactFloat64(),
		TaxAmount:       doc.Price.TaxAmount.InexactFloat64(),
		PriceInclTax:    doc.Price.PriceIncludingTax.InexactFloat64(),
		IsInvoice:       doc.IsInvoice,
	}
	switch s := doc.Service.(type) {
	case Transfer:
		row.PickupAddress = &s.PickupAddress
		row.DestinationAddress = &s.DestinationAddress
		row.DistanceKm = &s.DistanceKm
	case HourlyHire:
		row.DurationHours = &s.DurationHours
	}
	return row
}

func scanDocument(row pgx.Row) (*Document, error) {
	var r documentRow
	err := row.Scan(
		&r.ID, &r.DocNumber, &r.CreationDate, &r.ValidityDate,
		&r.ClientLastName, &r.ClientFirstName, &r.ClientAddress, &r.ClientPhone, &r.ClientEmail,
		&r.ServiceType, &r.PickupAddress, &r.DestinationAddress, &r.DistanceKm, &r.DurationHours,
		&r.UnitPrice, &r.PriceExclTax, &r.TaxRate, &r.TaxAmount, &r.PriceInclTax, &r.IsInvoice,
	)
	if err != nil {
		return nil, err
	}

	doc := Document{
		ID:           r.ID,
		DocNumber:    r.DocNumber,
		CreationDate: r.CreationDate,
		ValidityDate: r.ValidityDate,
		Client: Client{
			LastName:  r.ClientLastName,
			FirstName: r.ClientFirstName,
			Address:   r.ClientAddress,
			Phone:     r.ClientPhone,
			Email:     r.ClientEmail,
		},
		Price: Price{
			UnitPrice:         decimal.NewFromFloat(r.UnitPrice),
			PriceExcludingTax: decimal.NewFromFloat(r.PriceExclTax),
			TaxRate:           decimal.NewFromFloat(r.TaxRate),
			TaxAmount:         decimal.NewFromFloat(r.TaxAmount),
			PriceIncludingTax: decimal.NewFromFloat(r.PriceInclTax),
		},
		IsInvoice: r.IsInvoice,
	}

	switch ServiceType(r.ServiceType) {
	case ServiceTransfer:
		var svc Transfer
		if r.PickupAddress != nil {
			svc.PickupAddress = *r.PickupAddress
		}
		if r.DestinationAddress != nil {
			svc.DestinationAddress = *r.DestinationAddress
		}
		if r.DistanceKm != nil {
			svc.DistanceKm = *r.DistanceKm
		}
		doc.Service = svc
	case ServiceHourlyHire:
		var svc HourlyHire
		if r.DurationHours != nil {
			svc.DurationHours = *r.DurationHours
		}
		doc.Service = svc
	default:
		return nil, fmt.Errorf("unknown service type %q", r.ServiceType)
	}

	return &doc, nil
}
