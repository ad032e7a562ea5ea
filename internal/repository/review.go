package repository

import (
	"context"
	"fmt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository/dao"
)

var (
	ErrReviewNotFound  = dao.ErrReviewNotFound
	ErrDuplicateReview = dao.ErrDuplicateReview
)

type ReviewDAO interface {
	Insert(ctx context.Context, review dao.Review) (dao.Review, error)
	Update(ctx context.Context, review dao.Review, ratingChanged bool) (dao.Review, error)
	Delete(ctx context.Context, review dao.Review) error
	FindByID(ctx context.Context, id uint) (dao.Review, error)
	FindByTourID(ctx context.Context, tourID uint) ([]dao.Review, error)
}

type ReviewRepository struct {
	dao ReviewDAO
}

func NewReviewRepository(dao ReviewDAO) *ReviewRepository {
	return &ReviewRepository{
		dao: dao,
	}
}

func (r *ReviewRepository) reviewDomainToDao(review domain.Review) dao.Review {
	return dao.Review{
		ID:        review.ID,
		UserID:    review.UserID,
		TourID:    review.TourID,
		VendorID:  review.VendorID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

func (r *ReviewRepository) reviewDaoToDomain(review dao.Review) domain.Review {
	return domain.Review{
		ID:        review.ID,
		UserID:    review.UserID,
		TourID:    review.TourID,
		VendorID:  review.VendorID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// Create persists the review and the refreshed tour aggregate as one
// atomic write; see dao.ReviewDAO.Insert for the locking contract.
func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	created, err := r.dao.Insert(ctx, r.reviewDomainToDao(review))
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.reviewDaoToDomain(created), nil
}

func (r *ReviewRepository) Update(ctx context.Context, review domain.Review, ratingChanged bool) (domain.Review, error) {
	updated, err := r.dao.Update(ctx, r.reviewDomainToDao(review), ratingChanged)
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.reviewDaoToDomain(updated), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, review domain.Review) error {
	if err := r.dao.Delete(ctx, r.reviewDomainToDao(review)); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (domain.Review, error) {
	review, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.reviewDaoToDomain(review), nil
}

func (r *ReviewRepository) FindByTourID(ctx context.Context, tourID uint) ([]domain.Review, error) {
	reviews, err := r.dao.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTourID -> %w", err)
	}

	domainReviews := make([]domain.Review, len(reviews))
	for i, review := range reviews {
		domainReviews[i] = r.reviewDaoToDomain(review)
	}

	return domainReviews, nil
}
