package domain

import "time"

type TourStatus string

const (
	TourStatusPending   TourStatus = "pending"
	TourStatusAccepted  TourStatus = "accepted"
	TourStatusRejected  TourStatus = "rejected"
	TourStatusCancelled TourStatus = "cancelled"
)

// Notes written onto a tour when its availability set changes while the
// tour is accepted, keyed by which operation fired.
const (
	NoteSpecialDaysAdded      = "new special days added"
	NoteSpecialDaysRemoved    = "special days removed"
	NoteAllSpecialDaysRemoved = "all special days removed"
)

type Tour struct {
	ID            uint               `json:"id"`
	VendorID      uint               `json:"vendor_id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Status        TourStatus         `json:"status"`
	Note          string             `json:"note,omitempty"`
	Window        AvailabilityWindow `json:"availability_window"`
	RoomTypes     []RoomType         `json:"room_types"`
	RatingAverage float64            `json:"rating_average"`
	RatingCount   int                `json:"rating_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type RoomType struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	NetPrice       float64 `json:"net_price"`
	DerivedPrice   float64 `json:"derived_price"`
	AdultOccupancy int     `json:"adult_occupancy"`
	ChildOccupancy int     `json:"child_occupancy"`
}

type AvailabilityWindow struct {
	From         time.Time   `json:"from"`
	To           time.Time   `json:"to"`
	BlackoutDays []time.Time `json:"blackout_days,omitempty"`
}
