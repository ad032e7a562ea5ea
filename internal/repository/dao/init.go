package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Vendor{},
		&Tour{},
		&TourBlackoutDay{},
		&RoomType{},
		&Availability{},
		&Discount{},
		&Review{},
	)
}
