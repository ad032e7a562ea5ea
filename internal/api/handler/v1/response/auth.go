package response

import "github.com/voyago/tour-booking-api/internal/domain"

type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
