package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Lookahead needs regexp2; the stdlib engine cannot express this rule.
const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordRegex = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword   = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errMissingVendorName = errors.New("vendor name is required for vendor signup")
)

type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	VendorName string `json:"vendor_name,omitempty"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Role, validation.Required, validation.In("traveler", "vendor")),
	)
	if err != nil {
		return err
	}

	if ok, _ := passwordRegex.MatchString(req.Password); !ok {
		return errInvalidPassword
	}

	if req.Role == "vendor" && req.VendorName == "" {
		return errMissingVendorName
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
