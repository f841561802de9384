package company

import "time"

// Default unit tariffs applied when no profile has been saved yet.
const (
	DefaultTransferRatePerKm = 2.0
	DefaultHourlyRate        = 80.0
)

// Profile holds the organization identity and the two configurable unit
// tariffs used by pricing. It is a per-tenant singleton; saves are
// last-write-wins.
type Profile struct {
	LegalName         string    `json:"legal_name"`
	SIRET             string    `json:"siret"`
	Address           string    `json:"address"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	TransferRatePerKm float64   `json:"transfer_rate_per_km"`
	HourlyRate        float64   `json:"hourly_rate"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultProfile is the profile returned before any save: empty identity,
// default tariffs.
func DefaultProfile() Profile {
	return Profile{
		TransferRatePerKm: DefaultTransferRatePerKm,
		HourlyRate:        DefaultHourlyRate,
	}
}
