package constants

import "time"

// Coupon batch settings
const (
	DefaultCouponQuantity = 1
	MaxCouponQuantity     = 1000
	DefaultCouponValidity = 72 * time.Hour
	CouponType            = "coupon"
)
