package domain

import (
	"fmt"
	"strings"
	"time"
)

type Availability struct {
	ID        uint       `json:"id"`
	TourID    uint       `json:"tour_id"`
	Date      time.Time  `json:"date"`
	RoomTypes []RoomType `json:"room_types"`
	Discounts []Discount `json:"discounts,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Discount struct {
	ID                 uint    `json:"id"`
	MinUsers           int     `json:"min_users"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// InvalidDatesError reports every candidate date that fell outside the
// tour's availability window or hit a blackout day. The whole batch is
// rejected when this error is returned.
type InvalidDatesError struct {
	Dates []time.Time
}

func (e *InvalidDatesError) Error() string {
	formatted := make([]string, 0, len(e.Dates))
	for _, d := range e.Dates {
		formatted = append(formatted, d.Format("2006-01-02"))
	}
	return fmt.Sprintf("dates outside the tour's availability window or on blackout days: %v", strings.Join(formatted, ", "))
}

// ValidateDates checks every candidate against the window. A date is
// invalid when it falls before window.From or after window.To (both
// inclusive bounds, compared by calendar day) or when it matches a
// blackout day. Partial acceptance is not permitted: one bad date fails
// the batch and the error enumerates all offenders.
func ValidateDates(window AvailabilityWindow, candidates []time.Time) error {
	blackouts := make(map[string]struct{}, len(window.BlackoutDays))
	for _, d := range window.BlackoutDays {
		blackouts[dayKey(d)] = struct{}{}
	}

	from := truncateToDay(window.From)
	to := truncateToDay(window.To)

	var offending []time.Time
	for _, candidate := range candidates {
		day := truncateToDay(candidate)
		if day.Before(from) || day.After(to) {
			offending = append(offending, candidate)
			continue
		}
		if _, blacked := blackouts[dayKey(candidate)]; blacked {
			offending = append(offending, candidate)
		}
	}

	if len(offending) > 0 {
		return &InvalidDatesError{Dates: offending}
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
