package company

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/navette-vtc/navette/internal/platform/db"
)

// ErrNotSaved indicates no profile row exists yet. The service maps it to the
// default profile.
var ErrNotSaved = errors.New("company profile not saved")

// Repository is the storage collaborator for the company profile singleton.
type Repository interface {
	Get(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, profile Profile) error
}

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository. The profile lives in a
// single-row table keyed by a constant id.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) Get(ctx context.Context) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, `
		SELECT legal_name, siret, address, phone, email,
		       transfer_rate_per_km, hourly_rate, updated_at
		FROM company_profile WHERE id = 1`).Scan(
		&p.LegalName, &p.SIRET, &p.Address, &p.Phone, &p.Email,
		&p.TransferRatePerKm, &p.HourlyRate, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotSaved
		}
		return nil, fmt.Errorf("%w: get company profile: %v", db.ErrUnavailable, err)
	}
	return &p, nil
}

func (r *pgRepository) Save(ctx context.Context, profile Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO company_profile
			(id, legal_name, siret, address, phone, email, transfer_rate_per_km, hourly_rate, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			legal_name = EXCLUDED.legal_name,
			siret = EXCLUDED.siret,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			transfer_rate_per_km = EXCLUDED.transfer_rate_per_km,
			hourly_rate = EXCLUDED.hourly_rate,
			updated_at = EXCLUDED.updated_at`,
		profile.LegalName, profile.SIRET, profile.Address, profile.Phone, profile.Email,
		profile.TransferRatePerKm, profile.HourlyRate, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: save company profile: %v", db.ErrUnavailable, err)
	}
	return nil
}

// MemoryRepository is a mutex-guarded in-memory Repository for tests and
// storage-less runs.
type MemoryRepository struct {
	mu      sync.Mutex
	profile *Profile
}

// NewMemoryRepository returns an empty in-memory Repository.
func NewMemoryRepository() *MemoryRepository { return &MemoryRepository{} }

func (m *MemoryRepository) Get(ctx context.Context) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil, ErrNotSaved
	}
	copied := *m.profile
	return &copied, nil
}

func (m *MemoryRepository) Save(ctx context.Context, profile Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = &profile
	return nil
}
