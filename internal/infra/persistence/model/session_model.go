package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. The unique constraint on the
// token column is what makes token collisions loud instead of silent.
type SessionModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OwnerEmail string    `gorm:"type:varchar(255);not null;index"`
	Token      string    `gorm:"type:varchar(128);unique;not null"`
	CreatedAt  time.Time
	LastUsedAt *time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
