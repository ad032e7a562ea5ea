package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tour-booking-api/internal/api/handler/v1/response"
	"github.com/voyago/tour-booking-api/internal/api/middleware"
	"github.com/voyago/tour-booking-api/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type VendorService interface {
	GetVendor(ctx context.Context, id uint) (domain.Vendor, error)
	GetVendorByUserID(ctx context.Context, userID uint) (domain.Vendor, error)
	SetCommissionRate(ctx context.Context, vendorID uint, rate float64) (domain.Vendor, error)
}

func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized(errors.New("authentication required"))
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errors.New("invalid authentication context"))
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

// getVendorForUser resolves the vendor profile of the authenticated
// user; non-vendors get a 403.
func getVendorForUser(ctx *gin.Context, uSvc UserService, vSvc VendorService) (domain.Vendor, *response.Err) {
	user, respErr := getUserFromContext(ctx, uSvc)
	if respErr != nil {
		return domain.Vendor{}, respErr
	}

	if user.Role != "vendor" {
		return domain.Vendor{}, response.ErrPermissionDenied(fmt.Errorf("user %v is not a vendor", user.ID))
	}

	vendor, err := vSvc.GetVendorByUserID(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("getVendorForUser -> vSvc.GetVendorByUserID -> %w", err)
		return domain.Vendor{}, response.ErrInternalServerError(err)
	}

	return vendor, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v: %q", name, raw))
	}

	return uint(id), nil
}
