package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The email address is the primary key;
// everything that refers to an account refers to it by email.
type UserModel struct {
	Email        string `gorm:"type:varchar(255);primary_key"`
	Name         string `gorm:"type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Admin        bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Sessions []SessionModel `gorm:"foreignKey:OwnerEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Shops    []ShopModel    `gorm:"foreignKey:OwnerEmail;references:Email;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
