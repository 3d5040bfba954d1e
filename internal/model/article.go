package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Article struct {
	gorm.Model
	Title       string         `gorm:"column:title;size:200;not null;index"`
	Slug        string         `gorm:"column:slug;size:220;uniqueIndex;not null"`
	CategoryID  *uint          `gorm:"column:category_id;index"`
	UserID      uint           `gorm:"column:user_id;index"`
	Status      int            `gorm:"column:status;default:0;not null;index"`
	Description string         `gorm:"column:description;size:500"`
	Content     string         `gorm:"column:content;type:text"`
	Tags        datatypes.JSON `gorm:"column:tags"`
}
