package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTourNotFound = errors.New("tour not found")

type Tour struct {
	ID       uint `gorm:"primaryKey"`
	VendorID uint `gorm:"not null;index"`

	Name        string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:pending"`
	Note        string

	AvailableFrom time.Time
	AvailableTo   time.Time

	RatingAverage float64 `gorm:"not null;default:0"`
	RatingCount   int     `gorm:"not null;default:0"`

	RoomTypes    []RoomType        `gorm:"foreignKey:TourID"`
	BlackoutDays []TourBlackoutDay `gorm:"foreignKey:TourID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TourBlackoutDay is a single non-bookable calendar date inside a tour's
// availability window.
type TourBlackoutDay struct {
	ID     uint      `gorm:"primaryKey"`
	TourID uint      `gorm:"not null;index"`
	Date   time.Time `gorm:"not null"`
}

// RoomType rows belong to either a tour (the catalog definition) or a
// single availability record (the dated inventory override). Exactly one
// of the two parents is set.
type RoomType struct {
	ID             uint  `gorm:"primaryKey"`
	TourID         *uint `gorm:"index"`
	AvailabilityID *uint `gorm:"index"`

	Name           string  `gorm:"not null"`
	NetPrice       float64 `gorm:"not null"`
	DerivedPrice   float64 `gorm:"not null"`
	AdultOccupancy int     `gorm:"not null;default:0"`
	ChildOccupancy int     `gorm:"not null;default:0"`
}

type TourFilter struct {
	VendorID uint
	Status   string
}

type TourDAO struct {
	db *gorm.DB
}

func NewTourDAO(db *gorm.DB) *TourDAO {
	return &TourDAO{
		db: db,
	}
}

func (d *TourDAO) Insert(ctx context.Context, tour Tour) (Tour, error) {
	result := d.db.WithContext(ctx).Create(&tour)
	if result.Error != nil {
		return Tour{}, result.Error
	}

	return tour, nil
}

func (d *TourDAO) FindByID(ctx context.Context, id uint) (Tour, error) {
	var tour Tour

	result := d.db.WithContext(ctx).
		Preload("RoomTypes").
		Preload("BlackoutDays").
		First(&tour, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tour{}, ErrTourNotFound
		}

		return Tour{}, result.Error
	}

	return tour, nil
}

func (d *TourDAO) Find(ctx context.Context, filter TourFilter) ([]Tour, error) {
	query := d.db.WithContext(ctx).
		Preload("RoomTypes").
		Preload("BlackoutDays")

	if filter.VendorID != 0 {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var tours []Tour
	result := query.Find(&tours)
	if result.Error != nil {
		return nil, result.Error
	}

	return tours, nil
}

// Update rewrites a tour's own columns and replaces its room types and
// blackout days with the given sets, all in one transaction.
func (d *TourDAO) Update(ctx context.Context, tour Tour) (Tour, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Tour
		if err := tx.First(&existing, tour.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTourNotFound
			}

			return err
		}

		updates := map[string]interface{}{
			"name":           tour.Name,
			"description":    tour.Description,
			"available_from": tour.AvailableFrom,
			"available_to":   tour.AvailableTo,
		}
		if err := tx.Model(&Tour{}).Where("id = ?", tour.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("tour_id = ?", tour.ID).Delete(&RoomType{}).Error; err != nil {
			return err
		}
		for i := range tour.RoomTypes {
			tour.RoomTypes[i].ID = 0
			tour.RoomTypes[i].TourID = &tour.ID
		}
		if len(tour.RoomTypes) > 0 {
			if err := tx.Create(&tour.RoomTypes).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("tour_id = ?", tour.ID).Delete(&TourBlackoutDay{}).Error; err != nil {
			return err
		}
		for i := range tour.BlackoutDays {
			tour.BlackoutDays[i].ID = 0
			tour.BlackoutDays[i].TourID = tour.ID
		}
		if len(tour.BlackoutDays) > 0 {
			if err := tx.Create(&tour.BlackoutDays).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Tour{}, err
	}

	return d.FindByID(ctx, tour.ID)
}

// UpdateStatus is the admin approval path. Accepting a tour clears any
// re-approval note left by earlier availability changes.
func (d *TourDAO) UpdateStatus(ctx context.Context, id uint, status, note string) (Tour, error) {
	result := d.db.WithContext(ctx).Model(&Tour{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"status":     status,
			"note":       note,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return Tour{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Tour{}, ErrTourNotFound
	}

	return d.FindByID(ctx, id)
}
