package dao_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/voyago/tour-booking-api/internal/repository/dao"
)

// setupTestDB runs a throwaway Postgres container for the test and tears
// it down afterwards. Skips when no Docker daemon is reachable.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=test",
		"POSTGRES_PASSWORD=test",
		"POSTGRES_DB=test",
	})
	require.NoError(t, err)
	require.NoError(t, resource.Expire(120))

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge resource: %v", err)
		}
	})

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=test dbname=test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}

		sqlDB, pingErr := db.DB()
		if pingErr != nil {
			return pingErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, dao.InitTables(db))

	return db
}

func seedTour(t *testing.T, db *gorm.DB) dao.Tour {
	t.Helper()

	user := dao.User{Email: "vendor@test.com", Password: "x", Role: "vendor", Name: "Vendor"}
	require.NoError(t, db.Create(&user).Error)

	vendor := dao.Vendor{UserID: user.ID, Name: "Acme Tours", CommissionRate: 15}
	require.NoError(t, db.Create(&vendor).Error)

	tour := dao.Tour{VendorID: vendor.ID, Name: "Test tour", Status: "accepted"}
	require.NoError(t, db.Create(&tour).Error)

	return tour
}

func seedTraveler(t *testing.T, db *gorm.DB, email string) dao.User {
	t.Helper()

	user := dao.User{Email: email, Password: "x", Role: "traveler", Name: "Traveler"}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func TestReviewDAO_AggregateLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tour := seedTour(t, db)
	reviewDAO := dao.NewReviewDAO(db)

	var reviews []dao.Review
	for i, rating := range []int{5, 4, 3} {
		user := seedTraveler(t, db, fmt.Sprintf("traveler%d@test.com", i))

		created, err := reviewDAO.Insert(ctx, dao.Review{
			UserID:  user.ID,
			TourID:  tour.ID,
			Rating:  rating,
			Comment: "a comment",
		})
		require.NoError(t, err)
		assert.Equal(t, tour.VendorID, created.VendorID, "vendor reference travels with the review")

		reviews = append(reviews, created)
	}

	var reloaded dao.Tour
	require.NoError(t, db.First(&reloaded, tour.ID).Error)
	assert.Equal(t, 4.0, reloaded.RatingAverage)
	assert.Equal(t, 3, reloaded.RatingCount)

	// Raising one rating shifts the mean, rounded to one decimal.
	reviews[2].Rating = 5
	_, err := reviewDAO.Update(ctx, reviews[2], true)
	require.NoError(t, err)

	require.NoError(t, db.First(&reloaded, tour.ID).Error)
	assert.Equal(t, 4.7, reloaded.RatingAverage) // (5+4+5)/3 = 4.666...
	assert.Equal(t, 3, reloaded.RatingCount)

	// Deleting everything resets the aggregate to zero.
	for _, review := range reviews {
		require.NoError(t, reviewDAO.Delete(ctx, review))
	}

	require.NoError(t, db.First(&reloaded, tour.ID).Error)
	assert.Zero(t, reloaded.RatingAverage)
	assert.Zero(t, reloaded.RatingCount)
}

func TestReviewDAO_DuplicateReview(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tour := seedTour(t, db)
	user := seedTraveler(t, db, "traveler@test.com")
	reviewDAO := dao.NewReviewDAO(db)

	_, err := reviewDAO.Insert(ctx, dao.Review{UserID: user.ID, TourID: tour.ID, Rating: 5, Comment: "first"})
	require.NoError(t, err)

	_, err = reviewDAO.Insert(ctx, dao.Review{UserID: user.ID, TourID: tour.ID, Rating: 1, Comment: "second"})
	assert.ErrorIs(t, err, dao.ErrDuplicateReview)

	var reloaded dao.Tour
	require.NoError(t, db.First(&reloaded, tour.ID).Error)
	assert.Equal(t, 5.0, reloaded.RatingAverage, "failed insert must not disturb the aggregate")
	assert.Equal(t, 1, reloaded.RatingCount)
}

func TestReviewDAO_UnknownTour(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := seedTraveler(t, db, "traveler@test.com")
	reviewDAO := dao.NewReviewDAO(db)

	_, err := reviewDAO.Insert(ctx, dao.Review{UserID: user.ID, TourID: 999, Rating: 5, Comment: "?"})

	assert.ErrorIs(t, err, dao.ErrTourNotFound)
}

// Concurrent submissions for the same tour must all land in the final
// count; the row lock on the tour serializes the aggregate recompute.
func TestReviewDAO_ConcurrentInserts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tour := seedTour(t, db)
	reviewDAO := dao.NewReviewDAO(db)

	const n = 20
	users := make([]dao.User, n)
	for i := range users {
		users[i] = seedTraveler(t, db, fmt.Sprintf("traveler%d@test.com", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reviewDAO.Insert(ctx, dao.Review{
				UserID:  users[i].ID,
				TourID:  tour.ID,
				Rating:  (i % 5) + 1,
				Comment: "concurrent",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoErrorf(t, err, "insert %d failed", i)
	}

	var reloaded dao.Tour
	require.NoError(t, db.First(&reloaded, tour.ID).Error)
	assert.Equal(t, n, reloaded.RatingCount, "no submission may be lost")

	var sum float64
	var count int
	for i := 0; i < n; i++ {
		sum += float64((i % 5) + 1)
		count++
	}
	want := float64(int(sum/float64(count)*10+0.5)) / 10
	assert.Equal(t, want, reloaded.RatingAverage)
}
