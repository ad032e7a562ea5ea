package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
)

var (
	ErrTourNotFound      = repository.ErrTourNotFound
	ErrNotTourOwner      = errors.New("tour does not belong to this vendor")
	ErrInvalidNetPrice   = errors.New("room type net price must be zero or positive")
	ErrInvalidTourStatus = errors.New("invalid tour status")
)

type TourRepository interface {
	Create(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	FindByID(ctx context.Context, id uint) (domain.Tour, error)
	Find(ctx context.Context, filter repository.TourFilter) ([]domain.Tour, error)
	Update(ctx context.Context, tour domain.Tour) (domain.Tour, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TourStatus, note string) (domain.Tour, error)
}

type TourService struct {
	repo       TourRepository
	vendorRepo VendorRepository
}

func NewTourService(repo TourRepository, vendorRepo VendorRepository) *TourService {
	return &TourService{
		repo:       repo,
		vendorRepo: vendorRepo,
	}
}

func (s *TourService) GetTour(ctx context.Context, id uint) (domain.Tour, error) {
	tour, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return tour, nil
}

func (s *TourService) GetTours(ctx context.Context, filter repository.TourFilter) ([]domain.Tour, error) {
	tours, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return tours, nil
}

// CreateTour prices every room type against the vendor's current
// commission rate and persists the tour in pending status.
func (s *TourService) CreateTour(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	if err := s.priceRoomTypes(ctx, tour.VendorID, tour.RoomTypes); err != nil {
		return domain.Tour{}, err
	}

	tour.Status = domain.TourStatusPending
	tour.RatingAverage = 0
	tour.RatingCount = 0

	created, err := s.repo.Create(ctx, tour)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateTour replaces the tour's content on behalf of its owning vendor.
// Room type prices are re-derived from the commission rate current at
// save time; sibling availability records are untouched.
func (s *TourService) UpdateTour(ctx context.Context, tour domain.Tour, vendorID uint) (domain.Tour, error) {
	existing, err := s.repo.FindByID(ctx, tour.ID)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if existing.VendorID != vendorID {
		return domain.Tour{}, ErrNotTourOwner
	}

	if err := s.priceRoomTypes(ctx, existing.VendorID, tour.RoomTypes); err != nil {
		return domain.Tour{}, err
	}

	tour.VendorID = existing.VendorID

	updated, err := s.repo.Update(ctx, tour)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// SetTourStatus is the admin approval action. Accepting clears any
// re-approval note.
func (s *TourService) SetTourStatus(ctx context.Context, id uint, status domain.TourStatus) (domain.Tour, error) {
	switch status {
	case domain.TourStatusPending, domain.TourStatusAccepted, domain.TourStatusRejected, domain.TourStatusCancelled:
	default:
		return domain.Tour{}, ErrInvalidTourStatus
	}

	tour, err := s.repo.UpdateStatus(ctx, id, status, "")
	if err != nil {
		return domain.Tour{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return tour, nil
}

// priceRoomTypes runs the commission pricing engine over the room types
// in place. A missing vendor record falls back to the default rate; a
// negative net price rejects the write before any pricing happens.
func (s *TourService) priceRoomTypes(ctx context.Context, vendorID uint, roomTypes []domain.RoomType) error {
	for _, rt := range roomTypes {
		if rt.NetPrice < 0 {
			return ErrInvalidNetPrice
		}
	}

	rate := domain.DefaultCommissionRate

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err == nil {
		rate = vendor.EffectiveCommissionRate()
	} else if !errors.Is(err, repository.ErrVendorNotFound) {
		return fmt.Errorf("s.vendorRepo.FindByID -> %w", err)
	}

	domain.PriceRoomTypes(roomTypes, rate)

	return nil
}
