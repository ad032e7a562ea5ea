package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/voyago/tour-booking-api/internal/domain"
	"github.com/voyago/tour-booking-api/internal/repository/dao"
)

var ErrTourNotFound = dao.ErrTourNotFound

type TourDAO interface {
	Insert(ctx context.Context, tour dao.Tour) (dao.Tour, error)
	FindByID(ctx context.Context, id uint) (dao.Tour, error)
	Find(ctx context.Context, filter dao.TourFilter) ([]dao.Tour, error)
	Update(ctx context.Context, tour dao.Tour) (dao.Tour, error)
	UpdateStatus(ctx context.Context, id uint, status, note string) (dao.Tour, error)
}

type TourFilter struct {
	VendorID uint
	Status   domain.TourStatus
}

type TourRepository struct {
	dao TourDAO
}

func NewTourRepository(dao TourDAO) *TourRepository {
	return &TourRepository{
		dao: dao,
	}
}

func (r *TourRepository) tourDomainToDao(t domain.Tour) dao.Tour {
	blackouts := make([]dao.TourBlackoutDay, 0, len(t.Window.BlackoutDays))
	for _, day := range t.Window.BlackoutDays {
		blackouts = append(blackouts, dao.TourBlackoutDay{
			TourID: t.ID,
			Date:   day,
		})
	}

	return dao.Tour{
		ID:            t.ID,
		VendorID:      t.VendorID,
		Name:          t.Name,
		Description:   t.Description,
		Status:        string(t.Status),
		Note:          t.Note,
		AvailableFrom: t.Window.From,
		AvailableTo:   t.Window.To,
		RatingAverage: t.RatingAverage,
		RatingCount:   t.RatingCount,
		RoomTypes:     roomTypesDomainToDao(t.RoomTypes),
		BlackoutDays:  blackouts,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TourRepository) tourDaoToDomain(t dao.Tour) domain.Tour {
	blackouts := make([]time.Time, 0, len(t.BlackoutDays))
	for _, day := range t.BlackoutDays {
		blackouts = append(blackouts, day.Date)
	}
	if len(blackouts) == 0 {
		blackouts = nil
	}

	return domain.Tour{
		ID:          t.ID,
		VendorID:    t.VendorID,
		Name:        t.Name,
		Description: t.Description,
		Status:      domain.TourStatus(t.Status),
		Note:        t.Note,
		Window: domain.AvailabilityWindow{
			From:         t.AvailableFrom,
			To:           t.AvailableTo,
			BlackoutDays: blackouts,
		},
		RoomTypes:     roomTypesDaoToDomain(t.RoomTypes),
		RatingAverage: t.RatingAverage,
		RatingCount:   t.RatingCount,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func roomTypesDomainToDao(roomTypes []domain.RoomType) []dao.RoomType {
	daoRoomTypes := make([]dao.RoomType, len(roomTypes))
	for i, rt := range roomTypes {
		daoRoomTypes[i] = dao.RoomType{
			ID:             rt.ID,
			Name:           rt.Name,
			NetPrice:       rt.NetPrice,
			DerivedPrice:   rt.DerivedPrice,
			AdultOccupancy: rt.AdultOccupancy,
			ChildOccupancy: rt.ChildOccupancy,
		}
	}
	return daoRoomTypes
}

func roomTypesDaoToDomain(roomTypes []dao.RoomType) []domain.RoomType {
	domainRoomTypes := make([]domain.RoomType, len(roomTypes))
	for i, rt := range roomTypes {
		domainRoomTypes[i] = domain.RoomType{
			ID:             rt.ID,
			Name:           rt.Name,
			NetPrice:       rt.NetPrice,
			DerivedPrice:   rt.DerivedPrice,
			AdultOccupancy: rt.AdultOccupancy,
			ChildOccupancy: rt.ChildOccupancy,
		}
	}
	return domainRoomTypes
}

func (r *TourRepository) Create(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	created, err := r.dao.Insert(ctx, r.tourDomainToDao(tour))
	if err != nil {
		return domain.Tour{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.tourDaoToDomain(created), nil
}

func (r *TourRepository) FindByID(ctx context.Context, id uint) (domain.Tour, error) {
	tour, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.tourDaoToDomain(tour), nil
}

func (r *TourRepository) Find(ctx context.Context, filter TourFilter) ([]domain.Tour, error) {
	tours, err := r.dao.Find(ctx, dao.TourFilter{
		VendorID: filter.VendorID,
		Status:   string(filter.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	domainTours := make([]domain.Tour, len(tours))
	for i, t := range tours {
		domainTours[i] = r.tourDaoToDomain(t)
	}

	return domainTours, nil
}

func (r *TourRepository) Update(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	updated, err := r.dao.Update(ctx, r.tourDomainToDao(tour))
	if err != nil {
		return domain.Tour{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.tourDaoToDomain(updated), nil
}

func (r *TourRepository) UpdateStatus(ctx context.Context, id uint, status domain.TourStatus, note string) (domain.Tour, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status), note)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.tourDaoToDomain(updated), nil
}
