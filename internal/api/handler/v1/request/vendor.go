package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type UpdateCommissionRequest struct {
	CommissionRate *float64 `json:"commission_rate"`
}

func (req *UpdateCommissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CommissionRate, validation.NotNil, validation.Min(0.0), validation.Max(100.0)),
	)
}
