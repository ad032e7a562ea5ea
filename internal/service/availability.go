package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
)

var ErrAvailabilityNotFound = repository.ErrAvailabilityNotFound

type AvailabilityRepository interface {
	CreateForTour(ctx context.Context, records []domain.Availability, flag *repository.Reapproval) ([]domain.Availability, error)
	FindByID(ctx context.Context, id uint) (domain.Availability, error)
	FindByTourID(ctx context.Context, tourID uint) ([]domain.Availability, error)
	Delete(ctx context.Context, availability domain.Availability, flag *repository.Reapproval) error
	DeleteByTourID(ctx context.Context, tourID uint, flag *repository.Reapproval) (int64, error)
}

type AvailabilityService struct {
	repo       AvailabilityRepository
	tourRepo   TourRepository
	vendorRepo VendorRepository
}

func NewAvailabilityService(repo AvailabilityRepository, tourRepo TourRepository, vendorRepo VendorRepository) *AvailabilityService {
	return &AvailabilityService{
		repo:       repo,
		tourRepo:   tourRepo,
		vendorRepo: vendorRepo,
	}
}

func (s *AvailabilityService) GetByTour(ctx context.Context, tourID uint) ([]domain.Availability, error) {
	if _, err := s.tourRepo.FindByID(ctx, tourID); err != nil {
		return nil, fmt.Errorf("s.tourRepo.FindByID -> %w", err)
	}

	availabilities, err := s.repo.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByTourID -> %w", err)
	}

	return availabilities, nil
}

// CreateForTour validates the whole date batch against the tour's
// availability window, prices the room types against the vendor's
// current commission rate, and persists one availability record per
// date. Any invalid date fails the entire batch; the error lists every
// offender. If the tour was already accepted it is flagged for
// re-approval in the same transaction.
func (s *AvailabilityService) CreateForTour(ctx context.Context, tourID, vendorID uint, dates []time.Time, roomTypes []domain.RoomType, discounts []domain.Discount) ([]domain.Availability, error) {
	tour, err := s.tourRepo.FindByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("s.tourRepo.FindByID -> %w", err)
	}
	if tour.VendorID != vendorID {
		return nil, ErrNotTourOwner
	}

	for _, rt := range roomTypes {
		if rt.NetPrice < 0 {
			return nil, ErrInvalidNetPrice
		}
	}

	if err := domain.ValidateDates(tour.Window, dates); err != nil {
		return nil, err
	}

	rate := domain.DefaultCommissionRate
	vendor, err := s.vendorRepo.FindByID(ctx, tour.VendorID)
	if err == nil {
		rate = vendor.EffectiveCommissionRate()
	} else if !errors.Is(err, repository.ErrVendorNotFound) {
		return nil, fmt.Errorf("s.vendorRepo.FindByID -> %w", err)
	}

	domain.PriceRoomTypes(roomTypes, rate)

	records := make([]domain.Availability, len(dates))
	for i, date := range dates {
		records[i] = domain.Availability{
			TourID:    tourID,
			Date:      date,
			RoomTypes: cloneRoomTypes(roomTypes),
			Discounts: cloneDiscounts(discounts),
		}
	}

	created, err := s.repo.CreateForTour(ctx, records, s.reapproval(tour, domain.NoteSpecialDaysAdded))
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreateForTour -> %w", err)
	}

	return created, nil
}

// Delete removes one availability record, flagging an accepted tour for
// re-approval.
func (s *AvailabilityService) Delete(ctx context.Context, availabilityID, vendorID uint) error {
	availability, err := s.repo.FindByID(ctx, availabilityID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	tour, err := s.tourRepo.FindByID(ctx, availability.TourID)
	if err != nil {
		return fmt.Errorf("s.tourRepo.FindByID -> %w", err)
	}
	if tour.VendorID != vendorID {
		return ErrNotTourOwner
	}

	if err := s.repo.Delete(ctx, availability, s.reapproval(tour, domain.NoteSpecialDaysRemoved)); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// DeleteByTour removes every availability record of a tour at once.
func (s *AvailabilityService) DeleteByTour(ctx context.Context, tourID, vendorID uint) (int64, error) {
	tour, err := s.tourRepo.FindByID(ctx, tourID)
	if err != nil {
		return 0, fmt.Errorf("s.tourRepo.FindByID -> %w", err)
	}
	if tour.VendorID != vendorID {
		return 0, ErrNotTourOwner
	}

	deleted, err := s.repo.DeleteByTourID(ctx, tourID, s.reapproval(tour, domain.NoteAllSpecialDaysRemoved))
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteByTourID -> %w", err)
	}

	return deleted, nil
}

// reapproval encodes the single availability-change policy: an accepted
// tour always drops back to pending with a note naming the operation;
// tours in any other status are left alone.
func (s *AvailabilityService) reapproval(tour domain.Tour, note string) *repository.Reapproval {
	if tour.Status != domain.TourStatusAccepted {
		return nil
	}

	return &repository.Reapproval{Note: note}
}

func cloneRoomTypes(roomTypes []domain.RoomType) []domain.RoomType {
	cloned := make([]domain.RoomType, len(roomTypes))
	copy(cloned, roomTypes)
	for i := range cloned {
		cloned[i].ID = 0
	}
	return cloned
}

func cloneDiscounts(discounts []domain.Discount) []domain.Discount {
	cloned := make([]domain.Discount, len(discounts))
	copy(cloned, discounts)
	for i := range cloned {
		cloned[i].ID = 0
	}
	return cloned
}
