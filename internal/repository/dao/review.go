package dao

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("user has already reviewed this tour")
)

type Review struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"not null;uniqueIndex:uni_reviews_user_tour"`
	TourID   uint `gorm:"not null;uniqueIndex:uni_reviews_user_tour"`
	VendorID uint `gorm:"not null;index"`

	Rating  int    `gorm:"not null"`
	Comment string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{
		db: db,
	}
}

// Insert writes the review and refreshes the parent tour's aggregate
// rating in one transaction. The tour row is locked first, so concurrent
// submissions for the same tour serialize and none of them is lost.
// The (user, tour) uniqueness is enforced by the composite index; a
// violation surfaces as ErrDuplicateReview.
func (d *ReviewDAO) Insert(ctx context.Context, review Review) (Review, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tour Tour
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tour, review.TourID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTourNotFound
			}

			return err
		}

		// The vendor reference travels with the review so vendor-side
		// listings never need a join through tours.
		review.VendorID = tour.VendorID

		if err := tx.Create(&review).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, "uni_reviews_user_tour") {
				return ErrDuplicateReview
			}

			return err
		}

		return refreshTourRating(tx, review.TourID)
	})
	if err != nil {
		return Review{}, err
	}

	return review, nil
}

// Update rewrites rating and comment. The aggregate is only recomputed
// when the caller saw the rating value change.
func (d *ReviewDAO) Update(ctx context.Context, review Review, ratingChanged bool) (Review, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ratingChanged {
			var tour Tour
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&tour, review.TourID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTourNotFound
				}

				return err
			}
		}

		result := tx.Model(&Review{}).Where("id = ?", review.ID).
			Updates(map[string]interface{}{
				"rating":  review.Rating,
				"comment": review.Comment,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReviewNotFound
		}

		if !ratingChanged {
			return nil
		}

		return refreshTourRating(tx, review.TourID)
	})
	if err != nil {
		return Review{}, err
	}

	var updated Review
	if err := d.db.WithContext(ctx).First(&updated, review.ID).Error; err != nil {
		return Review{}, err
	}

	return updated, nil
}

// Delete removes the review and recomputes the tour aggregate over the
// remaining set. The last review going away resets the tour to
// average 0, count 0.
func (d *ReviewDAO) Delete(ctx context.Context, review Review) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tour Tour
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tour, review.TourID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTourNotFound
			}

			return err
		}

		result := tx.Delete(&Review{}, review.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReviewNotFound
		}

		return refreshTourRating(tx, review.TourID)
	})
}

func (d *ReviewDAO) FindByID(ctx context.Context, id uint) (Review, error) {
	var review Review

	result := d.db.WithContext(ctx).First(&review, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Review{}, ErrReviewNotFound
		}

		return Review{}, result.Error
	}

	return review, nil
}

func (d *ReviewDAO) FindByTourID(ctx context.Context, tourID uint) ([]Review, error) {
	var reviews []Review

	result := d.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("created_at DESC").
		Find(&reviews)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

// refreshTourRating recomputes the aggregate from the full review set of
// the tour inside the caller's transaction. The stored average is the
// mean rounded half-away-from-zero to one decimal place.
func refreshTourRating(tx *gorm.DB, tourID uint) error {
	var agg struct {
		Average float64
		Count   int64
	}
	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("tour_id = ?", tourID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&Tour{}).Where("id = ?", tourID).
		UpdateColumns(map[string]interface{}{
			"rating_average": math.Round(agg.Average*10) / 10,
			"rating_count":   agg.Count,
			"updated_at":     time.Now(),
		}).Error
}
