package model

import "gorm.io/gorm"

type Address struct {
	gorm.Model
	Consignee string `gorm:"column:consignee;size:50;not null;index"`
	Phone     string `gorm:"column:phone;size:32;not null"`
	Province  string `gorm:"column:province;size:50"`
	City      string `gorm:"column:city;size:50"`
	Area      string `gorm:"column:area;size:50"`
	Address   string `gorm:"column:address;size:255;not null"`
	Zip       string `gorm:"column:zip;size:16"`
	Status    int    `gorm:"column:status;default:1;not null"`
	UserID    *uint  `gorm:"column:user_id;index"`
}
