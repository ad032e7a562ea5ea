package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrVendorNotFound = errors.New("vendor not found")

type Vendor struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`

	Name           string  `gorm:"not null"`
	CommissionRate float64 `gorm:"not null;default:15"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type VendorDAO struct {
	db *gorm.DB
}

func NewVendorDAO(db *gorm.DB) *VendorDAO {
	return &VendorDAO{
		db: db,
	}
}

func (d *VendorDAO) Insert(ctx context.Context, vendor Vendor) (Vendor, error) {
	result := d.db.WithContext(ctx).Create(&vendor)
	if result.Error != nil {
		return Vendor{}, result.Error
	}

	return vendor, nil
}

func (d *VendorDAO) FindByID(ctx context.Context, id uint) (Vendor, error) {
	var vendor Vendor

	result := d.db.WithContext(ctx).First(&vendor, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vendor{}, ErrVendorNotFound
		}

		return Vendor{}, result.Error
	}

	return vendor, nil
}

func (d *VendorDAO) FindByUserID(ctx context.Context, userID uint) (Vendor, error) {
	var vendor Vendor

	result := d.db.WithContext(ctx).First(&vendor, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vendor{}, ErrVendorNotFound
		}

		return Vendor{}, result.Error
	}

	return vendor, nil
}

func (d *VendorDAO) UpdateCommissionRate(ctx context.Context, id uint, rate float64) (Vendor, error) {
	var vendor Vendor

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vendor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}

			return err
		}

		vendor.CommissionRate = rate

		return tx.Model(&vendor).Update("commission_rate", rate).Error
	})
	if err != nil {
		return Vendor{}, err
	}

	return vendor, nil
}
