package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (req *CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comment, validation.Required, validation.Length(1, 2000)),
	)
}

type UpdateReviewRequest struct {
	CreateReviewRequest
}
