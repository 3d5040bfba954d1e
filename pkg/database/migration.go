package database

import (
	"github.com/Payphone-Digital/dashboard/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Article{},
		&model.Coupon{},
		&model.Address{},
	)
}
