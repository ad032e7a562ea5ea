package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
	"github.com/voyago/tour-booking-api/internal/service"
)

type fakeReviewRepository struct {
	reviews map[uint]domain.Review
	nextID  uint

	knownTourID       uint
	lastRatingChanged *bool
}

func newFakeReviewRepository(knownTourID uint) *fakeReviewRepository {
	return &fakeReviewRepository{
		reviews:     make(map[uint]domain.Review),
		nextID:      1,
		knownTourID: knownTourID,
	}
}

func (r *fakeReviewRepository) Create(_ context.Context, review domain.Review) (domain.Review, error) {
	if review.TourID != r.knownTourID {
		return domain.Review{}, repository.ErrTourNotFound
	}
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.TourID == review.TourID {
			return domain.Review{}, repository.ErrDuplicateReview
		}
	}

	review.ID = r.nextID
	r.nextID++
	r.reviews[review.ID] = review
	return review, nil
}

func (r *fakeReviewRepository) Update(_ context.Context, review domain.Review, ratingChanged bool) (domain.Review, error) {
	if _, ok := r.reviews[review.ID]; !ok {
		return domain.Review{}, repository.ErrReviewNotFound
	}
	r.lastRatingChanged = &ratingChanged
	r.reviews[review.ID] = review
	return review, nil
}

func (r *fakeReviewRepository) Delete(_ context.Context, review domain.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.reviews, review.ID)
	return nil
}

func (r *fakeReviewRepository) FindByID(_ context.Context, id uint) (domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, repository.ErrReviewNotFound
	}
	return review, nil
}

func (r *fakeReviewRepository) FindByTourID(_ context.Context, tourID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	for _, review := range r.reviews {
		if review.TourID == tourID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func TestReviewService_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a review", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepository(1))

		created, err := svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 1, Rating: 5, Comment: "great"})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("second review by the same user for the same tour is rejected", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepository(1))

		_, err := svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 1, Rating: 5, Comment: "great"})
		require.NoError(t, err)

		_, err = svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 1, Rating: 1, Comment: "changed my mind"})

		assert.ErrorIs(t, err, service.ErrDuplicateReview)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepository(1))

		_, err := svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 1, Rating: 0, Comment: "?"})
		assert.ErrorIs(t, err, service.ErrInvalidRating)

		_, err = svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 1, Rating: 6, Comment: "!"})
		assert.ErrorIs(t, err, service.ErrInvalidRating)
	})

	t.Run("unknown tour", func(t *testing.T) {
		svc := service.NewReviewService(newFakeReviewRepository(1))

		_, err := svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 999, Rating: 4, Comment: "?"})

		assert.ErrorIs(t, err, service.ErrTourNotFound)
	})
}

func TestReviewService_UpdateReview(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.ReviewService, *fakeReviewRepository, domain.Review) {
		t.Helper()

		repo := newFakeReviewRepository(1)
		svc := service.NewReviewService(repo)

		created, err := svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 1, Rating: 4, Comment: "good"})
		require.NoError(t, err)

		return svc, repo, created
	}

	t.Run("owner updates rating and comment", func(t *testing.T) {
		svc, repo, created := setup(t)

		updated, err := svc.UpdateReview(ctx, created.ID, 7, 5, "even better")

		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, "even better", updated.Comment)
		require.NotNil(t, repo.lastRatingChanged)
		assert.True(t, *repo.lastRatingChanged)
	})

	t.Run("comment-only edit does not trigger an aggregate recompute", func(t *testing.T) {
		svc, repo, created := setup(t)

		_, err := svc.UpdateReview(ctx, created.ID, 7, 4, "still good")

		require.NoError(t, err)
		require.NotNil(t, repo.lastRatingChanged)
		assert.False(t, *repo.lastRatingChanged)
	})

	t.Run("only the author may update", func(t *testing.T) {
		svc, _, created := setup(t)

		_, err := svc.UpdateReview(ctx, created.ID, 8, 1, "not mine")

		assert.ErrorIs(t, err, service.ErrNotReviewOwner)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc, _, created := setup(t)

		_, err := svc.UpdateReview(ctx, created.ID, 7, 9, "over the top")

		assert.ErrorIs(t, err, service.ErrInvalidRating)
	})
}

func TestReviewService_DeleteReview(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.ReviewService, *fakeReviewRepository, domain.Review) {
		t.Helper()

		repo := newFakeReviewRepository(1)
		svc := service.NewReviewService(repo)

		created, err := svc.CreateReview(ctx, domain.Review{UserID: 7, TourID: 1, Rating: 4, Comment: "good"})
		require.NoError(t, err)

		return svc, repo, created
	}

	t.Run("owner deletes", func(t *testing.T) {
		svc, repo, created := setup(t)

		err := svc.DeleteReview(ctx, created.ID, 7, false)

		require.NoError(t, err)
		assert.Empty(t, repo.reviews)
	})

	t.Run("admin deletes someone else's review", func(t *testing.T) {
		svc, repo, created := setup(t)

		err := svc.DeleteReview(ctx, created.ID, 99, true)

		require.NoError(t, err)
		assert.Empty(t, repo.reviews)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		svc, _, created := setup(t)

		err := svc.DeleteReview(ctx, created.ID, 99, false)

		assert.ErrorIs(t, err, service.ErrNotReviewOwner)
	})

	t.Run("unknown review", func(t *testing.T) {
		svc, _, _ := setup(t)

		err := svc.DeleteReview(ctx, 999, 7, false)

		assert.ErrorIs(t, err, service.ErrReviewNotFound)
	})
}
