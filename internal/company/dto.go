package company

// SaveProfileRequest is the profile save payload. Omitted tariffs fall back
// to the defaults rather than zero.
type SaveProfileRequest struct {
	LegalName         string   `json:"legal_name" validate:"required"`
	SIRET             string   `json:"siret" validate:"required"`
	Address           string   `json:"address" validate:"required"`
	Phone             string   `json:"phone" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	TransferRatePerKm *float64 `json:"transfer_rate_per_km,omitempty" validate:"omitempty,gte=0"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
}

// Profile builds the domain profile from the request.
func (r SaveProfileRequest) Profile() Profile {
	p := Profile{
		LegalName:         r.LegalName,
		SIRET:             r.SIRET,
		Address:           r.Address,
		Phone:             r.Phone,
		Email:             r.Email,
		TransferRatePerKm: DefaultTransferRatePerKm,
		HourlyRate:        DefaultHourlyRate,
	}
	if r.TransferRatePerKm != nil {
		p.TransferRatePerKm = *r.TransferRatePerKm
	}
	if r.HourlyRate != nil {
		p.HourlyRate = *r.HourlyRate
	}
	return p
}
