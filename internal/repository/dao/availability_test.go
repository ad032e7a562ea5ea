package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tour-booking-api/internal/repository/dao"
)

func TestAvailabilityDAO_InsertForTour(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tour := seedTour(t, db)
	availabilityDAO := dao.NewAvailabilityDAO(db)

	records := []dao.Availability{
		{
			TourID:    tour.ID,
			Date:      time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			RoomTypes: []dao.RoomType{{Name: "double", NetPrice: 100, DerivedPrice: 115}},
			Discounts: []dao.Discount{{MinUsers: 4, DiscountPercentage: 10}},
		},
		{
			TourID:    tour.ID,
			Date:      time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			RoomTypes: []dao.RoomType{{Name: "double", NetPrice: 100, DerivedPrice: 115}},
		},
	}

	created, err := availabilityDAO.InsertForTour(ctx, records, &dao.TourReapproval{Note: "new special days added"})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)

	// The accepted tour dropped back to pending with the note.
	var reloaded dao.Tour
	require.NoError(t, db.First(&reloaded, tour.ID).Error)
	assert.Equal(t, "pending", reloaded.Status)
	assert.Equal(t, "new special days added", reloaded.Note)

	found, err := availabilityDAO.FindByTourID(ctx, tour.ID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Len(t, found[0].RoomTypes, 1)
	assert.Equal(t, 115.0, found[0].RoomTypes[0].DerivedPrice)
	require.Len(t, found[0].Discounts, 1)
}

func TestAvailabilityDAO_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tour := seedTour(t, db)
	availabilityDAO := dao.NewAvailabilityDAO(db)

	records := []dao.Availability{
		{TourID: tour.ID, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{TourID: tour.ID, Date: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)},
		{TourID: tour.ID, Date: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)},
	}
	created, err := availabilityDAO.InsertForTour(ctx, records, nil)
	require.NoError(t, err)

	t.Run("delete one record with flag", func(t *testing.T) {
		err := availabilityDAO.DeleteByID(ctx, created[0], &dao.TourReapproval{Note: "special days removed"})
		require.NoError(t, err)

		var reloaded dao.Tour
		require.NoError(t, db.First(&reloaded, tour.ID).Error)
		assert.Equal(t, "pending", reloaded.Status)
		assert.Equal(t, "special days removed", reloaded.Note)

		_, err = availabilityDAO.FindByID(ctx, created[0].ID)
		assert.ErrorIs(t, err, dao.ErrAvailabilityNotFound)
	})

	t.Run("delete the rest by tour", func(t *testing.T) {
		deleted, err := availabilityDAO.DeleteByTourID(ctx, tour.ID, &dao.TourReapproval{Note: "all special days removed"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, deleted)

		remaining, err := availabilityDAO.FindByTourID(ctx, tour.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("deleting an unknown record fails", func(t *testing.T) {
		err := availabilityDAO.DeleteByID(ctx, dao.Availability{ID: 9999, TourID: tour.ID}, nil)
		assert.ErrorIs(t, err, dao.ErrAvailabilityNotFound)
	})
}
