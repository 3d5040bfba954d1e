package dto

import "time"

type CreateAddressRequest struct {
	Consignee string `json:"consignee" binding:"required,min=1,max=50"`
	Phone     string `json:"phone" binding:"required,min=5,max=32"`
	Province  string `json:"province" binding:"omitempty,max=50"`
	City      string `json:"city" binding:"omitempty,max=50"`
	Area      string `json:"area" binding:"omitempty,max=50"`
	Address   string `json:"address" binding:"required,min=1,max=255"`
	Zip       string `json:"zip" binding:"omitempty,max=16"`
	Status    *int   `json:"status" binding:"omitempty,oneof=0 1"`
	UserID    *uint  `json:"user_id"`
}

type UpdateAddressRequest struct {
	Consignee string `json:"consignee" binding:"omitempty,min=1,max=50"`
	Phone     string `json:"phone" binding:"omitempty,min=5,max=32"`
	Province  string `json:"province" binding:"omitempty,max=50"`
	City      string `json:"city" binding:"omitempty,max=50"`
	Area      string `json:"area" binding:"omitempty,max=50"`
	Address   string `json:"address" binding:"omitempty,min=1,max=255"`
	Zip       string `json:"zip" binding:"omitempty,max=16"`
	Status    *int   `json:"status" binding:"omitempty,oneof=0 1"`
}

type AddressResponse struct {
	ID        uint      `json:"id"`
	Consignee string    `json:"consignee"`
	Phone     string    `json:"phone"`
	Province  string    `json:"province"`
	City      string    `json:"city"`
	Area      string    `json:"area"`
	Address   string    `json:"address"`
	Zip       string    `json:"zip"`
	Status    int       `json:"status"`
	UserID    *uint     `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
