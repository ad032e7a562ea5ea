package request

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// DateFormat is the calendar-day format used across the API.
const DateFormat = "2006-01-02"

type RoomTypeInput struct {
	Name           string   `json:"name"`
	NetPrice       *float64 `json:"net_price"`
	AdultOccupancy int      `json:"adult_occupancy"`
	ChildOccupancy int      `json:"child_occupancy"`
}

func (item *RoomTypeInput) Validate() error {
	return validation.ValidateStruct(
		item,
		validation.Field(&item.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&item.NetPrice, validation.NotNil, validation.Min(0.0)),
		validation.Field(&item.AdultOccupancy, validation.Min(0)),
		validation.Field(&item.ChildOccupancy, validation.Min(0)),
	)
}

func validateRoomTypeInputs(roomTypes []RoomTypeInput) error {
	for i := range roomTypes {
		if err := roomTypes[i].Validate(); err != nil {
			return fmt.Errorf("room type %d: %w", i, err)
		}
	}
	return nil
}

type CreateTourRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	BlackoutDays []string        `json:"blackout_days"`
	RoomTypes    []RoomTypeInput `json:"room_types"`
}

func (req *CreateTourRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.From, validation.Required, validation.Date(DateFormat)),
		validation.Field(&req.To, validation.Required, validation.Date(DateFormat)),
		validation.Field(&req.RoomTypes, validation.Required),
	)
	if err != nil {
		return err
	}

	for _, day := range req.BlackoutDays {
		if _, err := time.Parse(DateFormat, day); err != nil {
			return fmt.Errorf("invalid blackout day %q: must be %v", day, DateFormat)
		}
	}

	if err := validateRoomTypeInputs(req.RoomTypes); err != nil {
		return err
	}

	from, _ := time.Parse(DateFormat, req.From)
	to, _ := time.Parse(DateFormat, req.To)
	if to.Before(from) {
		return fmt.Errorf("availability window end must not precede its start")
	}

	return nil
}

type UpdateTourRequest struct {
	CreateTourRequest
}

type UpdateTourStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateTourStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In("pending", "accepted", "rejected", "cancelled")),
	)
}
