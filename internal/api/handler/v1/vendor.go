package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tour-booking-api/internal/api/handler/v1/request"
	"github.com/voyago/tour-booking-api/internal/api/handler/v1/response"
	"github.com/voyago/tour-booking-api/internal/service"
)

type VendorHandler struct {
	svc  VendorService
	uSvc UserService
}

func NewVendorHandler(svc VendorService, uSvc UserService) *VendorHandler {
	return &VendorHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetVendor godoc
// @Summary      Get a vendor
// @Tags         vendors
// @Produce      json
// @Param        vendorID  path      int  true  "vendor ID"
// @Success      200  {object}  domain.Vendor
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /vendors/{vendorID} [get]
// @Security BearerAuth
func (h *VendorHandler) HandleGetVendor(ctx *gin.Context) {
	vendorID, respErr := parseIDParam(ctx, "vendorID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	vendor, err := h.svc.GetVendor(ctx.Request.Context(), vendorID)
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vendor", "ID", vendorID))
			return
		}

		err = fmt.Errorf("v1.HandleGetVendor -> h.svc.GetVendor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vendor)
}

// HandleUpdateCommissionRate godoc
// @Summary      Set a vendor's commission rate
// @Description  Admin action. The new rate applies to future tour and availability saves; already-derived prices keep their stored values.
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        vendorID  path      int  true  "vendor ID"
// @Param        request   body      request.UpdateCommissionRequest true "request body"
// @Success      200  {object}  domain.Vendor
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /vendors/{vendorID}/commission [patch]
// @Security BearerAuth
func (h *VendorHandler) HandleUpdateCommissionRate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != "admin" {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	vendorID, respErr := parseIDParam(ctx, "vendorID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateCommissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	vendor, err := h.svc.SetCommissionRate(ctx.Request.Context(), vendorID, *req.CommissionRate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorNotFound):
			response.RenderErr(ctx, response.ErrNotFound("vendor", "ID", vendorID))
		case errors.Is(err, service.ErrInvalidCommissionRate):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateCommissionRate -> h.svc.SetCommissionRate -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, vendor)
}
