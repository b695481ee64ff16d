package model

import (
	"time"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	Slug       string `gorm:"type:varchar(64);primary_key"`
	ShopSlug   string `gorm:"type:varchar(64);not null;index"`
	Name       string `gorm:"type:varchar(100);not null"`
	PriceCents int64  `gorm:"not null"`
	Available  int    `gorm:"not null;default:0"`
	Sold       int    `gorm:"not null;default:0"`
	Details    string `gorm:"type:text"`
	Picture    string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
