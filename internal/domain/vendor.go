package domain

import "time"

// DefaultCommissionRate is the percentage applied when a vendor has no
// explicit rate configured.
const DefaultCommissionRate = 15.0

type Vendor struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	Name           string    `json:"name"`
	CommissionRate float64   `json:"commission_rate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EffectiveCommissionRate falls back to the default when the vendor never
// had a rate set.
func (v Vendor) EffectiveCommissionRate() float64 {
	if v.CommissionRate <= 0 {
		return DefaultCommissionRate
	}
	return v.CommissionRate
}
