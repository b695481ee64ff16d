package model

import (
	"time"
)

// ShopModel mirrors the 'shops' table.
type ShopModel struct {
	Slug       string `gorm:"type:varchar(64);primary_key"`
	Name       string `gorm:"type:varchar(100);not null"`
	Color      string `gorm:"type:varchar(6)"`
	Logo       string `gorm:"type:text"`
	OwnerEmail string `gorm:"type:varchar(255);not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Products []ProductModel `gorm:"foreignKey:ShopSlug;references:Slug;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ShopModel) TableName() string {
	return "shops"
}
