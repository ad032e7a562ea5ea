package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
)

var (
	ErrReviewNotFound  = repository.ErrReviewNotFound
	ErrDuplicateReview = repository.ErrDuplicateReview
	ErrNotReviewOwner  = errors.New("review does not belong to this user")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) (domain.Review, error)
	Update(ctx context.Context, review domain.Review, ratingChanged bool) (domain.Review, error)
	Delete(ctx context.Context, review domain.Review) error
	FindByID(ctx context.Context, id uint) (domain.Review, error)
	FindByTourID(ctx context.Context, tourID uint) ([]domain.Review, error)
}

type ReviewService struct {
	repo ReviewRepository
}

func NewReviewService(repo ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
	}
}

func (s *ReviewService) GetByTour(ctx context.Context, tourID uint) ([]domain.Review, error) {
	reviews, err := s.repo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByTourID -> %w", err)
	}

	return reviews, nil
}

// CreateReview persists the review and the refreshed tour rating
// atomically. A second review from the same user for the same tour
// fails with ErrDuplicateReview and leaves the aggregate untouched.
func (s *ReviewService) CreateReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return domain.Review{}, ErrInvalidRating
	}

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return domain.Review{}, ErrDuplicateReview
		}
		if errors.Is(err, repository.ErrTourNotFound) {
			return domain.Review{}, ErrTourNotFound
		}

		return domain.Review{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateReview rewrites rating and comment on behalf of the review's
// author. The tour aggregate is recomputed only when the rating value
// actually changed.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, userID uint, rating int, comment string) (domain.Review, error) {
	if rating < 1 || rating > 5 {
		return domain.Review{}, ErrInvalidRating
	}

	existing, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if existing.UserID != userID {
		return domain.Review{}, ErrNotReviewOwner
	}

	ratingChanged := existing.Rating != rating

	existing.Rating = rating
	existing.Comment = comment

	updated, err := s.repo.Update(ctx, existing, ratingChanged)
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteReview removes the review and recomputes the tour aggregate
// over whatever reviews remain.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID uint, isAdmin bool) error {
	existing, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !isAdmin && existing.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.repo.Delete(ctx, existing); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
