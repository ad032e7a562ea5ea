package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository"
)

var (
	ErrVendorNotFound        = repository.ErrVendorNotFound
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
)

type VendorRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Vendor, error)
	FindByUserID(ctx context.Context, userID uint) (domain.Vendor, error)
	UpdateCommissionRate(ctx context.Context, id uint, rate float64) (domain.Vendor, error)
}

type VendorService struct {
	repo VendorRepository
}

func NewVendorService(repo VendorRepository) *VendorService {
	return &VendorService{
		repo: repo,
	}
}

func (s *VendorService) GetVendor(ctx context.Context, id uint) (domain.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return vendor, nil
}

func (s *VendorService) GetVendorByUserID(ctx context.Context, userID uint) (domain.Vendor, error) {
	vendor, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	return vendor, nil
}

// SetCommissionRate changes a vendor's commission percentage. Existing
// tours and availability records keep the prices derived at their last
// save; only future saves pick up the new rate.
func (s *VendorService) SetCommissionRate(ctx context.Context, vendorID uint, rate float64) (domain.Vendor, error) {
	if rate < 0 || rate > 100 {
		return domain.Vendor{}, ErrInvalidCommissionRate
	}

	vendor, err := s.repo.UpdateCommissionRate(ctx, vendorID, rate)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return domain.Vendor{}, ErrVendorNotFound
		}

		return domain.Vendor{}, fmt.Errorf("s.repo.UpdateCommissionRate -> %w", err)
	}

	return vendor, nil
}
