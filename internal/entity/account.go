package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleLocalPerson Role = "LocalPerson"
	RoleLawyer      Role = "Lawyer"
	RoleAdmin       Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleLocalPerson, RoleLawyer, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(value string) (Role, bool) {
	role := Role(value)
	return role, role.Valid()
}

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         Role      `gorm:"type:account_role;not null"`

	Name        *string `gorm:"type:varchar(200)"`
	PhoneNumber *string `gorm:"type:varchar(50)"`
	City        *string `gorm:"type:varchar(100)"`

	EmailVerified bool `gorm:"not null;default:false"`
	Active        bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	LawyerProfile *LawyerProfile `gorm:"foreignKey:AccountID"`
}
