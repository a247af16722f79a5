package entity

import (
	"time"

	"github.com/google/uuid"
)

type OneTimeCode struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`

	CodeHash  string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
}

func (c OneTimeCode) ActiveAt(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}
