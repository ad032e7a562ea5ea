package domain

import (
	"math"
	"time"
)

type Review struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	TourID    uint      `json:"tour_id"`
	VendorID  uint      `json:"vendor_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoundAverage rounds a raw rating mean to one decimal place,
// half-away-from-zero. Stored tour averages always go through this.
func RoundAverage(mean float64) float64 {
	return math.Round(mean*10) / 10
}
