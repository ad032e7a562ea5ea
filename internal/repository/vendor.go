package repository

import (
	"context"
	"fmt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository/dao"
)

var ErrVendorNotFound = dao.ErrVendorNotFound

type VendorDAO interface {
	Insert(ctx context.Context, vendor dao.Vendor) (dao.Vendor, error)
	FindByID(ctx context.Context, id uint) (dao.Vendor, error)
	FindByUserID(ctx context.Context, userID uint) (dao.Vendor, error)
	UpdateCommissionRate(ctx context.Context, id uint, rate float64) (dao.Vendor, error)
}

type VendorRepository struct {
	dao VendorDAO
}

func NewVendorRepository(dao VendorDAO) *VendorRepository {
	return &VendorRepository{
		dao: dao,
	}
}

func (r *VendorRepository) vendorDomainToDao(v domain.Vendor) dao.Vendor {
	return dao.Vendor{
		ID:             v.ID,
		UserID:         v.UserID,
		Name:           v.Name,
		CommissionRate: v.CommissionRate,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func (r *VendorRepository) vendorDaoToDomain(v dao.Vendor) domain.Vendor {
	return domain.Vendor{
		ID:             v.ID,
		UserID:         v.UserID,
		Name:           v.Name,
		CommissionRate: v.CommissionRate,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func (r *VendorRepository) Create(ctx context.Context, vendor domain.Vendor) (domain.Vendor, error) {
	created, err := r.dao.Insert(ctx, r.vendorDomainToDao(vendor))
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.vendorDaoToDomain(created), nil
}

func (r *VendorRepository) FindByID(ctx context.Context, id uint) (domain.Vendor, error) {
	vendor, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.vendorDaoToDomain(vendor), nil
}

func (r *VendorRepository) FindByUserID(ctx context.Context, userID uint) (domain.Vendor, error) {
	vendor, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.vendorDaoToDomain(vendor), nil
}

func (r *VendorRepository) UpdateCommissionRate(ctx context.Context, id uint, rate float64) (domain.Vendor, error) {
	vendor, err := r.dao.UpdateCommissionRate(ctx, id, rate)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("r.dao.UpdateCommissionRate -> %w", err)
	}

	return r.vendorDaoToDomain(vendor), nil
}
