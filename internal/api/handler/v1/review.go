package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyago/tour-booking-api/internal/api/handler/v1/request"
	"github.com/voyago/tour-booking-api/internal/api/handler/v1/response"
	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/service"
)

type ReviewService interface {
	GetByTour(ctx context.Context, tourID uint) ([]domain.Review, error)
	CreateReview(ctx context.Context, review domain.Review) (domain.Review, error)
	UpdateReview(ctx context.Context, reviewID, userID uint, rating int, comment string) (domain.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID uint, isAdmin bool) error
}

type ReviewHandler struct {
	svc  ReviewService
	uSvc UserService
}

func NewReviewHandler(svc ReviewService, uSvc UserService) *ReviewHandler {
	return &ReviewHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetReviews godoc
// @Summary      List a tour's reviews
// @Tags         reviews
// @Produce      json
// @Param        tourID  path      int  true  "tour ID"
// @Success      200  {array}   domain.Review
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID}/reviews [get]
// @Security BearerAuth
func (h *ReviewHandler) HandleGetReviews(ctx *gin.Context) {
	tourID, respErr := parseIDParam(ctx, "tourID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reviews, err := h.svc.GetByTour(ctx.Request.Context(), tourID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetReviews -> h.svc.GetByTour -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}

// HandleCreateReview godoc
// @Summary      Review a tour
// @Description  Creates a review and updates the tour's rating average and count in the same transaction. A user can review a given tour at most once.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        tourID   path      int  true  "tour ID"
// @Param        request  body      request.CreateReviewRequest true "request body"
// @Success      201  {object}  domain.Review
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tours/{tourID}/reviews [post]
// @Security BearerAuth
func (h *ReviewHandler) HandleCreateReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tourID, respErr := parseIDParam(ctx, "tourID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	review := domain.Review{
		UserID:  user.ID,
		TourID:  tourID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	created, err := h.svc.CreateReview(ctx.Request.Context(), review)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTourNotFound):
			response.RenderErr(ctx, response.ErrNotFound("tour", "ID", tourID))
		case errors.Is(err, service.ErrDuplicateReview):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrInvalidRating):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateReview -> h.svc.CreateReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateReview godoc
// @Summary      Update a review
// @Description  Rewrites the author's rating and comment. The tour aggregate is recomputed when the rating value changed.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        reviewID  path      int  true  "review ID"
// @Param        request   body      request.UpdateReviewRequest true "request body"
// @Success      200  {object}  domain.Review
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reviews/{reviewID} [put]
// @Security BearerAuth
func (h *ReviewHandler) HandleUpdateReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reviewID, respErr := parseIDParam(ctx, "reviewID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateReview(ctx.Request.Context(), reviewID, user.ID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.RenderErr(ctx, response.ErrNotFound("review", "ID", reviewID))
		case errors.Is(err, service.ErrNotReviewOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidRating):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateReview -> h.svc.UpdateReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteReview godoc
// @Summary      Delete a review
// @Description  Removes the review and recomputes the tour aggregate over the remaining reviews. Admins may delete any review.
// @Tags         reviews
// @Produce      json
// @Param        reviewID  path  int  true  "review ID"
// @Success      204  "no content"
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reviews/{reviewID} [delete]
// @Security BearerAuth
func (h *ReviewHandler) HandleDeleteReview(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reviewID, respErr := parseIDParam(ctx, "reviewID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	err := h.svc.DeleteReview(ctx.Request.Context(), reviewID, user.ID, user.Role == "admin")
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			response.RenderErr(ctx, response.ErrNotFound("review", "ID", reviewID))
		case errors.Is(err, service.ErrNotReviewOwner):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteReview -> h.svc.DeleteReview -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
