package repository

import (
	"context"
	"fmt"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository/dao"
)

var ErrAvailabilityNotFound = dao.ErrAvailabilityNotFound

// Reapproval instructs the DAO to flag the parent tour for re-review
// alongside the availability write. A nil pointer means no flagging.
type Reapproval struct {
	Note string
}

type AvailabilityDAO interface {
	InsertForTour(ctx context.Context, records []dao.Availability, flag *dao.TourReapproval) ([]dao.Availability, error)
	FindByID(ctx context.Context, id uint) (dao.Availability, error)
	FindByTourID(ctx context.Context, tourID uint) ([]dao.Availability, error)
	DeleteByID(ctx context.Context, availability dao.Availability, flag *dao.TourReapproval) error
	DeleteByTourID(ctx context.Context, tourID uint, flag *dao.TourReapproval) (int64, error)
}

type AvailabilityRepository struct {
	dao AvailabilityDAO
}

func NewAvailabilityRepository(dao AvailabilityDAO) *AvailabilityRepository {
	return &AvailabilityRepository{
		dao: dao,
	}
}

func (r *AvailabilityRepository) availabilityDomainToDao(a domain.Availability) dao.Availability {
	discounts := make([]dao.Discount, len(a.Discounts))
	for i, discount := range a.Discounts {
		discounts[i] = dao.Discount{
			ID:                 discount.ID,
			AvailabilityID:     a.ID,
			MinUsers:           discount.MinUsers,
			DiscountPercentage: discount.DiscountPercentage,
		}
	}

	return dao.Availability{
		ID:        a.ID,
		TourID:    a.TourID,
		Date:      a.Date,
		RoomTypes: roomTypesDomainToDao(a.RoomTypes),
		Discounts: discounts,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *AvailabilityRepository) availabilityDaoToDomain(a dao.Availability) domain.Availability {
	discounts := make([]domain.Discount, len(a.Discounts))
	for i, discount := range a.Discounts {
		discounts[i] = domain.Discount{
			ID:                 discount.ID,
			MinUsers:           discount.MinUsers,
			DiscountPercentage: discount.DiscountPercentage,
		}
	}
	if len(discounts) == 0 {
		discounts = nil
	}

	return domain.Availability{
		ID:        a.ID,
		TourID:    a.TourID,
		Date:      a.Date,
		RoomTypes: roomTypesDaoToDomain(a.RoomTypes),
		Discounts: discounts,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *AvailabilityRepository) reapprovalToDao(flag *Reapproval) *dao.TourReapproval {
	if flag == nil {
		return nil
	}

	return &dao.TourReapproval{Note: flag.Note}
}

func (r *AvailabilityRepository) CreateForTour(ctx context.Context, records []domain.Availability, flag *Reapproval) ([]domain.Availability, error) {
	daoRecords := make([]dao.Availability, len(records))
	for i, record := range records {
		daoRecords[i] = r.availabilityDomainToDao(record)
	}

	created, err := r.dao.InsertForTour(ctx, daoRecords, r.reapprovalToDao(flag))
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertForTour -> %w", err)
	}

	domainRecords := make([]domain.Availability, len(created))
	for i, record := range created {
		domainRecords[i] = r.availabilityDaoToDomain(record)
	}

	return domainRecords, nil
}

func (r *AvailabilityRepository) FindByID(ctx context.Context, id uint) (domain.Availability, error) {
	availability, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.availabilityDaoToDomain(availability), nil
}

func (r *AvailabilityRepository) FindByTourID(ctx context.Context, tourID uint) ([]domain.Availability, error) {
	availabilities, err := r.dao.FindByTourID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTourID -> %w", err)
	}

	domainRecords := make([]domain.Availability, len(availabilities))
	for i, record := range availabilities {
		domainRecords[i] = r.availabilityDaoToDomain(record)
	}

	return domainRecords, nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, availability domain.Availability, flag *Reapproval) error {
	if err := r.dao.DeleteByID(ctx, r.availabilityDomainToDao(availability), r.reapprovalToDao(flag)); err != nil {
		return fmt.Errorf("r.dao.DeleteByID -> %w", err)
	}

	return nil
}

func (r *AvailabilityRepository) DeleteByTourID(ctx context.Context, tourID uint, flag *Reapproval) (int64, error) {
	deleted, err := r.dao.DeleteByTourID(ctx, tourID, r.reapprovalToDao(flag))
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteByTourID -> %w", err)
	}

	return deleted, nil
}
