package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type DiscountInput struct {
	MinUsers           int     `json:"min_users"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

func (item *DiscountInput) Validate() error {
	return validation.ValidateStruct(
		item,
		validation.Field(&item.MinUsers, validation.Required, validation.Min(1)),
		validation.Field(&item.DiscountPercentage, validation.Min(0.0), validation.Max(100.0)),
	)
}

type CreateAvailabilityRequest struct {
	Dates     []string        `json:"dates"`
	RoomTypes []RoomTypeInput `json:"room_types"`
	Discounts []DiscountInput `json:"discounts"`
}

func (req *CreateAvailabilityRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Dates, validation.Required),
		validation.Field(&req.RoomTypes, validation.Required),
	)
	if err != nil {
		return err
	}

	for _, date := range req.Dates {
		if _, err := time.Parse(DateFormat, date); err != nil {
			return fmt.Errorf("invalid date %q: must be %v", date, DateFormat)
		}
	}

	if err := validateRoomTypeInputs(req.RoomTypes); err != nil {
		return err
	}

	for i := range req.Discounts {
		if err := req.Discounts[i].Validate(); err != nil {
			return fmt.Errorf("discount %d: %w", i, err)
		}
	}

	return nil
}

// ParsedDates converts the request's date strings. Call only after
// Validate succeeded.
func (req *CreateAvailabilityRequest) ParsedDates() []time.Time {
	dates := make([]time.Time, len(req.Dates))
	for i, date := range req.Dates {
		dates[i], _ = time.Parse(DateFormat, date)
	}
	return dates
}
