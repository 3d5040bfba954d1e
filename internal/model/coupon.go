package model

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	gorm.Model
	Type       string     `gorm:"column:type;size:32;default:coupon;not null"`
	Code       string     `gorm:"column:code;size:64;uniqueIndex;not null"`
	Name       string     `gorm:"column:name;size:100;not null;index"`
	Amount     int64      `gorm:"column:amount;not null;default:0"`
	OverAmount int64      `gorm:"column:over_amount;not null;default:0"`
	Status     int        `gorm:"column:status;default:1;not null;index"`
	UserID     *uint      `gorm:"column:user_id;index"`
	StartTime  time.Time  `gorm:"column:start_time;not null;index"`
	ExpireTime time.Time  `gorm:"column:expire_time;not null;index"`
	RedeemedAt *time.Time `gorm:"column:redeemed_at"`
}

// Available reports whether the coupon can be redeemed at t.
func (c *Coupon) Available(t time.Time) bool {
	return c.Status == StatusEnabled &&
		c.UserID == nil &&
		!t.Before(c.StartTime) &&
		t.Before(c.ExpireTime)
}
