package database

import (
	"errors"

	"github.com/Payphone-Digital/dashboard/config"
	"github.com/Payphone-Digital/dashboard/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates initial data for the database
func Seed(db *gorm.DB, admin config.AdminConfig) error {
	return SeedAdmin(db, admin)
}

// SeedAdmin creates the admin account if its email is not taken yet.
func SeedAdmin(db *gorm.DB, admin config.AdminConfig) error {
	var existing model.User
	result := db.Where("email = ?", admin.Email).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&model.User{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: string(hashedPassword),
		Status:   model.StatusEnabled,
		IsAdmin:  true,
	}).Error
}
