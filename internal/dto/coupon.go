package dto

import "time"

type CreateCouponRequest struct {
	Type       string     `json:"type" binding:"omitempty,oneof=coupon"`
	Name       string     `json:"name" binding:"required,min=1,max=100"`
	Amount     int64      `json:"amount" binding:"gte=0"`
	OverAmount int64      `json:"over_amount" binding:"gte=0"`
	Status     *int       `json:"status" binding:"omitempty,oneof=0 1"`
	Quantity   int        `json:"quantity" binding:"omitempty,min=1,max=1000"`
	StartTime  *time.Time `json:"start_time"`
	ExpireTime *time.Time `json:"expire_time"`
}

type UpdateCouponRequest struct {
	Name       string     `json:"name" binding:"omitempty,min=1,max=100"`
	Amount     *int64     `json:"amount" binding:"omitempty,gte=0"`
	OverAmount *int64     `json:"over_amount" binding:"omitempty,gte=0"`
	Status     *int       `json:"status" binding:"omitempty,oneof=0 1"`
	StartTime  *time.Time `json:"start_time"`
	ExpireTime *time.Time `json:"expire_time"`
}

type CouponResponse struct {
	ID         uint       `json:"id"`
	Type       string     `json:"type"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	Amount     int64      `json:"amount"`
	OverAmount int64      `json:"over_amount"`
	Status     int        `json:"status"`
	UserID     *uint      `json:"user_id,omitempty"`
	StartTime  time.Time  `json:"start_time"`
	ExpireTime time.Time  `json:"expire_time"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
