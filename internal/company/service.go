package company

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTariff indicates a negative unit tariff on save.
var ErrInvalidTariff = errors.New("invalid tariff")

// Service manages the company profile. Tariff changes take effect only for
// quotes created after the save; existing documents keep their frozen prices.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the saved profile, or the defaults if none was ever saved.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	profile, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotSaved) {
			return DefaultProfile(), nil
		}
		return Profile{}, fmt.Errorf("get company profile: %w", err)
	}
	return *profile, nil
}

// Save validates the tariffs and persists the profile, last-write-wins.
func (s *Service) Save(ctx context.Context, profile Profile) error {
	if profile.TransferRatePerKm < 0 {
		return fmt.Errorf("%w: transfer rate must not be negative, got %v", ErrInvalidTariff, profile.TransferRatePerKm)
	}
	if profile.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate must not be negative, got %v", ErrInvalidTariff, profile.HourlyRate)
	}
	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, profile); err != nil {
		return fmt.Errorf("save company profile: %w", err)
	}
	return nil
}
