package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tour-booking-api/internal/api/handler/v1/request"
	"github.com/voyago/tour-booking-api/internal/api/handler/v1/response"
	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
	"github.com/voyago/tour-booking-api/internal/service"
)

type TourService interface {
	GetTour(ctx context.Context, id uint) (domain.Tour, error)
	GetTours(ctx context.Context, filter repository.TourFilter) ([]domain.Tour, error)
	CreateTour(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	UpdateTour(ctx context.Context, tour domain.Tour, vendorID uint) (domain.Tour, error)
	SetTourStatus(ctx context.Context, id uint, status domain.TourStatus) (domain.Tour, error)
}

type TourHandler struct {
	svc  TourService
	uSvc UserService
	vSvc VendorService
}

func NewTourHandler(svc TourService, uSvc UserService, vSvc VendorService) *TourHandler {
	return &TourHandler{
		svc:  svc,
		uSvc: uSvc,
		vSvc: vSvc,
	}
}

// HandleGetTours godoc
// @Summary      List tours
// @Tags         tours
// @Produce      json
// @Param        vendor_id  query     int     false  "filter by vendor"
// @Param        status     query     string  false  "filter by status"
// @Success      200  {array}   domain.Tour
// @Failure      500  {object}  response.Err
// @Router       /tours [get]
// @Security BearerAuth
func (h *TourHandler) HandleGetTours(ctx *gin.Context) {
	var filter repository.TourFilter

	if raw := ctx.Query("vendor_id"); raw != "" {
		vendorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid vendor_id: %q", raw)))
			return
		}
		filter.VendorID = uint(vendorID)
	}
	filter.Status = domain.TourStatus(ctx.Query("status"))

	tours, err := h.svc.GetTours(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTours -> h.svc.GetTours -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tours)
}

// HandleGetTour godoc
// @Summary      Get a tour
// @Tags         tours
// @Produce      json
// @Param        tourID  path      int  true  "tour ID"
// @Success      200  {object}  domain.Tour
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID} [get]
// @Security BearerAuth
func (h *TourHandler) HandleGetTour(ctx *gin.Context) {
	tourID, respErr := parseIDParam(ctx, "tourID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tour, err := h.svc.GetTour(ctx.Request.Context(), tourID)
	if err != nil {
		if errors.Is(err, service.ErrTourNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("tour", "ID", tourID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTour -> h.svc.GetTour -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tour)
}

// HandleCreateTour godoc
// @Summary      Create a tour
// @Description  Creates a tour for the authenticated vendor. Every room type's customer-facing price is derived from the vendor's current commission rate.
// @Tags         tours
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTourRequest true "request body"
// @Success      201  {object}  domain.Tour
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours [post]
// @Security BearerAuth
func (h *TourHandler) HandleCreateTour(ctx *gin.Context) {
	vendor, respErr := getVendorForUser(ctx, h.uSvc, h.vSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTourRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tour := tourFromRequest(req, vendor.ID)

	created, err := h.svc.CreateTour(ctx.Request.Context(), tour)
	if err != nil {
		if errors.Is(err, service.ErrInvalidNetPrice) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateTour -> h.svc.CreateTour -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateTour godoc
// @Summary      Update a tour
// @Description  Replaces the tour's content and re-derives room type prices from the vendor's current commission rate.
// @Tags         tours
// @Accept       json
// @Produce      json
// @Param        tourID   path      int  true  "tour ID"
// @Param        request  body      request.UpdateTourRequest true "request body"
// @Success      200  {object}  domain.Tour
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID} [put]
// @Security BearerAuth
func (h *TourHandler) HandleUpdateTour(ctx *gin.Context) {
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

	var req request.UpdateTourRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tour := tourFromRequest(req.CreateTourRequest, vendor.ID)
	tour.ID = tourID

	updated, err := h.svc.UpdateTour(ctx.Request.Context(), tour, vendor.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTourNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tour", "ID", tourID))
		case errors.Is(err, service.ErrNotTourOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidNetPrice):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateTour -> h.svc.UpdateTour -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleUpdateTourStatus godoc
// @Summary      Set a tour's status
// @Description  Admin approval action. Accepting a tour clears any pending re-approval note.
// @Tags         tours
// @Accept       json
// @Produce      json
// @Param        tourID   path      int  true  "tour ID"
// @Param        request  body      request.UpdateTourStatusRequest true "request body"
// @Success      200  {object}  domain.Tour
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID}/status [patch]
// @Security BearerAuth
func (h *TourHandler) HandleUpdateTourStatus(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != "admin" {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	tourID, respErr := parseIDParam(ctx, "tourID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateTourStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tour, err := h.svc.SetTourStatus(ctx.Request.Context(), tourID, domain.TourStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTourNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tour", "ID", tourID))
		case errors.Is(err, service.ErrInvalidTourStatus):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateTourStatus -> h.svc.SetTourStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, tour)
}

func tourFromRequest(req request.CreateTourRequest, vendorID uint) domain.Tour {
	from, _ := time.Parse(request.DateFormat, req.From)
	to, _ := time.Parse(request.DateFormat, req.To)

	blackouts := make([]time.Time, 0, len(req.BlackoutDays))
	for _, day := range req.BlackoutDays {
		parsed, _ := time.Parse(request.DateFormat, day)
		blackouts = append(blackouts, parsed)
	}
	if len(blackouts) == 0 {
		blackouts = nil
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

	return domain.Tour{
		VendorID:    vendorID,
		Name:        req.Name,
		Description: req.Description,
		Window: domain.AvailabilityWindow{
			From:         from,
			To:           to,
			BlackoutDays: blackouts,
		},
		RoomTypes: roomTypes,
	}
}
