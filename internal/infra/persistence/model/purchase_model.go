package model

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseModel mirrors the 'purchases' table. Product and purchaser columns
// null out on deletion so sales history outlives both sides.
type PurchaseModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProductSlug    *string   `gorm:"type:varchar(64);index"`
	PurchaserEmail *string   `gorm:"type:varchar(255);index"`
	Amount         int       `gorm:"not null"`
	PaidCents      int64     `gorm:"not null"`
	Time           time.Time `gorm:"not null"`

	Product   *ProductModel `gorm:"foreignKey:ProductSlug;references:Slug;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Purchaser *UserModel    `gorm:"foreignKey:PurchaserEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (PurchaseModel) TableName() string {
	return "purchases"
}
