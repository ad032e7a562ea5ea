package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tour-booking-api/internal/api/handler/v1/request"
	"github.com/voyago/tour-booking-api/internal/api/handler/v1/response"
	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/service"
)

type AvailabilityService interface {
	GetByTour(ctx context.Context, tourID uint) ([]domain.Availability, error)
	CreateForTour(ctx context.Context, tourID, vendorID uint, dates []time.Time, roomTypes []domain.RoomType, discounts []domain.Discount) ([]domain.Availability, error)
	Delete(ctx context.Context, availabilityID, vendorID uint) error
	DeleteByTour(ctx context.Context, tourID, vendorID uint) (int64, error)
}

type AvailabilityHandler struct {
	svc  AvailabilityService
	uSvc UserService
	vSvc VendorService
}

func NewAvailabilityHandler(svc AvailabilityService, uSvc UserService, vSvc VendorService) *AvailabilityHandler {
	return &AvailabilityHandler{
		svc:  svc,
		uSvc: uSvc,
		vSvc: vSvc,
	}
}

// HandleGetAvailabilities godoc
// @Summary      List a tour's availability records
// @Tags         availabilities
// @Produce      json
// @Param        tourID  path      int  true  "tour ID"
// @Success      200  {array}   domain.Availability
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID}/availabilities [get]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleGetAvailabilities(ctx *gin.Context) {
	tourID, respErr := parseIDParam(ctx, "tourID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	availabilities, err := h.svc.GetByTour(ctx.Request.Context(), tourID)
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tour", "ID", tourID))
			return
		}

		err = fmt.Errorf("v1.HandleGetAvailabilities -> h.svc.GetByTour -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, availabilities)
}

// HandleCreateAvailabilities godoc
// @Summary      Add special days to a tour
// @Description  Creates one availability record per date, each with its own priced room types and discounts. Any date outside the tour's window or on a blackout day fails the whole batch. Adding to an accepted tour sends it back to pending review.
// @Tags         availabilities
// @Accept       json
// @Produce      json
// @Param        tourID   path      int  true  "tour ID"
// @Param        request  body      request.CreateAvailabilityRequest true "request body"
// @Success      201  {array}   domain.Availability
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID}/availabilities [post]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleCreateAvailabilities(ctx *gin.Context) {
	vendor, respErr := getVendorForUser(ctx, h.uSvc, h.vSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tourID, respErr := parseIDParam(ctx, "tourID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	roomTypes := make([]domain.RoomType, len(req.RoomTypes))
	for i, rt := range req.RoomTypes {
		roomTypes[i] = domain.RoomType{
			Name:           rt.Name,
			NetPrice:       *rt.NetPrice,
			AdultOccupancy: rt.AdultOccupancy,
			ChildOccupancy: rt.ChildOccupancy,
		}
	}

	discounts := make([]domain.Discount, len(req.Discounts))
	for i, d := range req.Discounts {
		discounts[i] = domain.Discount{
			MinUsers:           d.MinUsers,
			DiscountPercentage: d.DiscountPercentage,
		}
	}

	created, err := h.svc.CreateForTour(ctx.Request.Context(), tourID, vendor.ID, req.ParsedDates(), roomTypes, discounts)
	if err != nil {
		var invalidDates *domain.InvalidDatesError

		switch {
		case errors.Is(err, service.ErrTourNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tour", "ID", tourID))
		case errors.Is(err, service.ErrNotTourOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidNetPrice):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.As(err, &invalidDates):
			response.RenderErr(ctx, response.ErrConflict(invalidDates))
		default:
			err = fmt.Errorf("v1.HandleCreateAvailabilities -> h.svc.CreateForTour -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleDeleteAvailability godoc
// @Summary      Remove one special day
// @Description  Deletes a single availability record. Removing from an accepted tour sends it back to pending review.
// @Tags         availabilities
// @Produce      json
// @Param        availabilityID  path  int  true  "availability ID"
// @Success      204  "no content"
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /availabilities/{availabilityID} [delete]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleDeleteAvailability(ctx *gin.Context) {
	vendor, respErr := getVendorForUser(ctx, h.uSvc, h.vSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	availabilityID, respErr := parseIDParam(ctx, "availabilityID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), availabilityID, vendor.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrAvailabilityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("availability", "ID", availabilityID))
		case errors.Is(err, service.ErrTourNotFound):
			response.RenderErr(ctx, response.ErrNotFound("availability", "ID", availabilityID))
		case errors.Is(err, service.ErrNotTourOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteAvailability -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteAvailabilities godoc
// @Summary      Remove all of a tour's special days
// @Description  Deletes every availability record of the tour at once. Clearing an accepted tour's special days sends it back to pending review.
// @Tags         availabilities
// @Produce      json
// @Param        tourID  path  int  true  "tour ID"
// @Success      200  {object}  response.DeletedResponse
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID}/availabilities [delete]
// @Security BearerAuth
func (h *AvailabilityHandler) HandleDeleteAvailabilities(ctx *gin.Context) {
	vendor, respErr := getVendorForUser(ctx, h.uSvc, h.vSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tourID, respErr := parseIDParam(ctx, "tourID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deleted, err := h.svc.DeleteByTour(ctx.Request.Context(), tourID, vendor.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTourNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tour", "ID", tourID))
		case errors.Is(err, service.ErrNotTourOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteAvailabilities -> h.svc.DeleteByTour -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.DeletedResponse{Deleted: deleted})
}
