package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrAvailabilityNotFound = errors.New("availability not found")

type Availability struct {
	ID     uint      `gorm:"primaryKey"`
	TourID uint      `gorm:"not null;index"`
	Date   time.Time `gorm:"not null"`

	RoomTypes []RoomType `gorm:"foreignKey:AvailabilityID"`
	Discounts []Discount `gorm:"foreignKey:AvailabilityID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Discount struct {
	ID             uint `gorm:"primaryKey"`
	AvailabilityID uint `gorm:"not null;index"`

	MinUsers           int     `gorm:"not null"`
	DiscountPercentage float64 `gorm:"not null"`
}

// TourReapproval is the side effect applied to an accepted tour whose
// availability set changed: the note explains what happened and the
// status drops back to pending so an admin looks at it again. The write
// only touches these columns, so it cannot be blocked by validation of
// unrelated tour fields.
type TourReapproval struct {
	Note string
}

func (f *TourReapproval) apply(tx *gorm.DB, tourID uint) error {
	return tx.Model(&Tour{}).Where("id = ?", tourID).
		UpdateColumns(map[string]interface{}{
			"note":       f.Note,
			"status":     "pending",
			"updated_at": time.Now(),
		}).Error
}

type AvailabilityDAO struct {
	db *gorm.DB
}

func NewAvailabilityDAO(db *gorm.DB) *AvailabilityDAO {
	return &AvailabilityDAO{
		db: db,
	}
}

// InsertForTour persists one availability record per date and, when the
// tour needs re-approval, flags it, all in a single transaction so a
// failed flag write rolls the whole batch back.
func (d *AvailabilityDAO) InsertForTour(ctx context.Context, records []Availability, flag *TourReapproval) ([]Availability, error) {
	if len(records) == 0 {
		return nil, nil
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&records).Error; err != nil {
			return err
		}

		if flag != nil {
			return flag.apply(tx, records[0].TourID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (d *AvailabilityDAO) FindByID(ctx context.Context, id uint) (Availability, error) {
	var availability Availability

	result := d.db.WithContext(ctx).
		Preload("RoomTypes").
		Preload("Discounts").
		First(&availability, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Availability{}, ErrAvailabilityNotFound
		}

		return Availability{}, result.Error
	}

	return availability, nil
}

func (d *AvailabilityDAO) FindByTourID(ctx context.Context, tourID uint) ([]Availability, error) {
	var availabilities []Availability

	result := d.db.WithContext(ctx).
		Preload("RoomTypes").
		Preload("Discounts").
		Where("tour_id = ?", tourID).
		Order("date ASC").
		Find(&availabilities)
	if result.Error != nil {
		return nil, result.Error
	}

	return availabilities, nil
}

// DeleteByID removes a single availability record with its owned rows
// and applies the re-approval flag in the same transaction.
func (d *AvailabilityDAO) DeleteByID(ctx context.Context, availability Availability, flag *TourReapproval) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteOwnedRows(tx, []uint{availability.ID}); err != nil {
			return err
		}

		result := tx.Delete(&Availability{}, availability.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAvailabilityNotFound
		}

		if flag != nil {
			return flag.apply(tx, availability.TourID)
		}

		return nil
	})
}

// DeleteByTourID removes every availability record of a tour. Returns
// how many records went away.
func (d *AvailabilityDAO) DeleteByTourID(ctx context.Context, tourID uint, flag *TourReapproval) (int64, error) {
	var deleted int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&Availability{}).
			Where("tour_id = ?", tourID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		if err := deleteOwnedRows(tx, ids); err != nil {
			return err
		}

		result := tx.Where("tour_id = ?", tourID).Delete(&Availability{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		if flag != nil {
			return flag.apply(tx, tourID)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func deleteOwnedRows(tx *gorm.DB, availabilityIDs []uint) error {
	if err := tx.Where("availability_id IN ?", availabilityIDs).Delete(&RoomType{}).Error; err != nil {
		return err
	}

	return tx.Where("availability_id IN ?", availabilityIDs).Delete(&Discount{}).Error
}
