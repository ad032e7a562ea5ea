package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
	"github.com/voyago/tour-booking-api/internal/service"
)

type fakeAvailabilityRepository struct {
	records map[uint]domain.Availability
	nextID  uint

	lastFlag *repository.Reapproval
}

func newFakeAvailabilityRepository() *fakeAvailabilityRepository {
	return &fakeAvailabilityRepository{
		records: make(map[uint]domain.Availability),
		nextID:  1,
	}
}

func (r *fakeAvailabilityRepository) CreateForTour(_ context.Context, records []domain.Availability, flag *repository.Reapproval) ([]domain.Availability, error) {
	r.lastFlag = flag
	for i := range records {
		records[i].ID = r.nextID
		r.nextID++
		r.records[records[i].ID] = records[i]
	}
	return records, nil
}

func (r *fakeAvailabilityRepository) FindByID(_ context.Context, id uint) (domain.Availability, error) {
	record, ok := r.records[id]
	if !ok {
		return domain.Availability{}, repository.ErrAvailabilityNotFound
	}
	return record, nil
}

func (r *fakeAvailabilityRepository) FindByTourID(_ context.Context, tourID uint) ([]domain.Availability, error) {
	var records []domain.Availability
	for _, record := range r.records {
		if record.TourID == tourID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *fakeAvailabilityRepository) Delete(_ context.Context, availability domain.Availability, flag *repository.Reapproval) error {
	if _, ok := r.records[availability.ID]; !ok {
		return repository.ErrAvailabilityNotFound
	}
	r.lastFlag = flag
	delete(r.records, availability.ID)
	return nil
}

func (r *fakeAvailabilityRepository) DeleteByTourID(_ context.Context, tourID uint, flag *repository.Reapproval) (int64, error) {
	r.lastFlag = flag
	var deleted int64
	for id, record := range r.records {
		if record.TourID == tourID {
			delete(r.records, id)
			deleted++
		}
	}
	return deleted, nil
}

type availabilityFixture struct {
	svc      *service.AvailabilityService
	repo     *fakeAvailabilityRepository
	tourRepo *fakeTourRepository
	tour     domain.Tour
}

func newAvailabilityFixture(t *testing.T, status domain.TourStatus) availabilityFixture {
	t.Helper()

	tourRepo := newFakeTourRepository()
	vendorRepo := newFakeVendorRepository(domain.Vendor{ID: 1, CommissionRate: 15})
	repo := newFakeAvailabilityRepository()

	tour, err := tourRepo.Create(context.Background(), domain.Tour{
		VendorID: 1,
		Name:     "Island hopping",
		Status:   status,
		Window: domain.AvailabilityWindow{
			From:         day("2024-06-01"),
			To:           day("2024-06-30"),
			BlackoutDays: []time.Time{day("2024-06-15")},
		},
	})
	require.NoError(t, err)

	return availabilityFixture{
		svc:      service.NewAvailabilityService(repo, tourRepo, vendorRepo),
		repo:     repo,
		tourRepo: tourRepo,
		tour:     tour,
	}
}

func day(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestAvailabilityService_CreateForTour(t *testing.T) {
	ctx := context.Background()

	roomTypes := []domain.RoomType{{Name: "double", NetPrice: 100}}

	t.Run("creates one record per date with priced room types", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		created, err := f.svc.CreateForTour(ctx, f.tour.ID, 1,
			[]time.Time{day("2024-06-10"), day("2024-06-11")}, roomTypes, []domain.Discount{{MinUsers: 4, DiscountPercentage: 10}})

		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, day("2024-06-10"), created[0].Date)
		assert.Equal(t, day("2024-06-11"), created[1].Date)
		assert.Equal(t, 115.0, created[0].RoomTypes[0].DerivedPrice)
		assert.Equal(t, 115.0, created[1].RoomTypes[0].DerivedPrice)
		require.Len(t, created[0].Discounts, 1)
		assert.Nil(t, f.repo.lastFlag, "pending tour needs no re-approval")
	})

	t.Run("invalid dates fail the entire batch", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		_, err := f.svc.CreateForTour(ctx, f.tour.ID, 1,
			[]time.Time{day("2024-06-10"), day("2024-06-15"), day("2024-07-01")}, roomTypes, nil)

		var invalid *domain.InvalidDatesError
		require.ErrorAs(t, err, &invalid)
		assert.Len(t, invalid.Dates, 2)
		assert.Empty(t, f.repo.records, "nothing may be persisted")
	})

	t.Run("accepted tour is flagged for re-approval", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusAccepted)

		_, err := f.svc.CreateForTour(ctx, f.tour.ID, 1, []time.Time{day("2024-06-10")}, roomTypes, nil)

		require.NoError(t, err)
		require.NotNil(t, f.repo.lastFlag)
		assert.Equal(t, domain.NoteSpecialDaysAdded, f.repo.lastFlag.Note)
	})

	t.Run("another vendor cannot add availability", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		_, err := f.svc.CreateForTour(ctx, f.tour.ID, 99, []time.Time{day("2024-06-10")}, roomTypes, nil)

		assert.ErrorIs(t, err, service.ErrNotTourOwner)
	})

	t.Run("negative net price is rejected", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		_, err := f.svc.CreateForTour(ctx, f.tour.ID, 1, []time.Time{day("2024-06-10")},
			[]domain.RoomType{{Name: "double", NetPrice: -10}}, nil)

		assert.ErrorIs(t, err, service.ErrInvalidNetPrice)
	})

	t.Run("unknown tour", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		_, err := f.svc.CreateForTour(ctx, 999, 1, []time.Time{day("2024-06-10")}, roomTypes, nil)

		assert.ErrorIs(t, err, service.ErrTourNotFound)
	})
}

func TestAvailabilityService_Delete(t *testing.T) {
	ctx := context.Background()

	roomTypes := []domain.RoomType{{Name: "double", NetPrice: 100}}

	t.Run("deleting from an accepted tour flags it", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusAccepted)

		created, err := f.svc.CreateForTour(ctx, f.tour.ID, 1, []time.Time{day("2024-06-10")}, roomTypes, nil)
		require.NoError(t, err)

		err = f.svc.Delete(ctx, created[0].ID, 1)

		require.NoError(t, err)
		require.NotNil(t, f.repo.lastFlag)
		assert.Equal(t, domain.NoteSpecialDaysRemoved, f.repo.lastFlag.Note)
	})

	t.Run("deleting from a pending tour does not flag", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		created, err := f.svc.CreateForTour(ctx, f.tour.ID, 1, []time.Time{day("2024-06-10")}, roomTypes, nil)
		require.NoError(t, err)

		err = f.svc.Delete(ctx, created[0].ID, 1)

		require.NoError(t, err)
		assert.Nil(t, f.repo.lastFlag)
	})

	t.Run("only the owning vendor may delete", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		created, err := f.svc.CreateForTour(ctx, f.tour.ID, 1, []time.Time{day("2024-06-10")}, roomTypes, nil)
		require.NoError(t, err)

		err = f.svc.Delete(ctx, created[0].ID, 99)

		assert.ErrorIs(t, err, service.ErrNotTourOwner)
	})

	t.Run("unknown availability", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		err := f.svc.Delete(ctx, 999, 1)

		assert.ErrorIs(t, err, service.ErrAvailabilityNotFound)
	})
}

func TestAvailabilityService_DeleteByTour(t *testing.T) {
	ctx := context.Background()

	roomTypes := []domain.RoomType{{Name: "double", NetPrice: 100}}

	t.Run("clears every record and flags an accepted tour", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusAccepted)

		_, err := f.svc.CreateForTour(ctx, f.tour.ID, 1,
			[]time.Time{day("2024-06-10"), day("2024-06-11"), day("2024-06-12")}, roomTypes, nil)
		require.NoError(t, err)

		deleted, err := f.svc.DeleteByTour(ctx, f.tour.ID, 1)

		require.NoError(t, err)
		assert.EqualValues(t, 3, deleted)
		assert.Empty(t, f.repo.records)
		require.NotNil(t, f.repo.lastFlag)
		assert.Equal(t, domain.NoteAllSpecialDaysRemoved, f.repo.lastFlag.Note)
	})

	t.Run("only the owning vendor may clear", func(t *testing.T) {
		f := newAvailabilityFixture(t, domain.TourStatusPending)

		_, err := f.svc.DeleteByTour(ctx, f.tour.ID, 99)

		assert.ErrorIs(t, err, service.ErrNotTourOwner)
	})
}
