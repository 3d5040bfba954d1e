package model

import (
	"time"

	"gorm.io/gorm"
)

// User statuses
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

type User struct {
	gorm.Model
	Name      string     `gorm:"column:name;size:50;not null;index"`
	Email     string     `gorm:"column:email;size:255;uniqueIndex;not null"`
	Password  string     `gorm:"column:password;not null"`
	Status    int        `gorm:"column:status;default:1;not null;index"`
	IsAdmin   bool       `gorm:"column:is_admin;default:false;not null"`
	LastLogin *time.Time `gorm:"column:last_login"`
}
