package entity

import (
	"time"

	"github.com/google/uuid"
)

type LawyerStatus string

const (
	LawyerPending  LawyerStatus = "Pending"
	LawyerApproved LawyerStatus = "Approved"
	LawyerRejected LawyerStatus = "Rejected"
)

type LawyerProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	PhotoURL              *string   `gorm:"type:text"`
	FullName              string    `gorm:"type:varchar(200);not null"`
	Address               string    `gorm:"type:text;not null"`
	PhoneNumber           string    `gorm:"type:varchar(50);not null"`
	City                  string    `gorm:"type:varchar(100);not null"`
	CNIC                  string    `gorm:"column:cnic;type:varchar(30);not null"`
	DateOfBirth           time.Time `gorm:"type:date;not null"`
	LawDegreeName         string    `gorm:"type:varchar(200);not null"`
	University            string    `gorm:"type:varchar(200);not null"`
	GraduationYear        int       `gorm:"not null"`
	Specialization        string    `gorm:"type:varchar(200);not null"`
	YearsOfExperience     int       `gorm:"not null"`
	CurrentFirmOrPractice string    `gorm:"type:varchar(200);not null"`
	VideoIntroURL         *string   `gorm:"type:text"`

	Verified        bool         `gorm:"not null;default:false"`
	Status          LawyerStatus `gorm:"type:lawyer_status;not null;default:'Pending'"`
	RejectionReason *string      `gorm:"type:text"`
	VerifiedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Approve moves the profile to Approved. Approved and Verified always change together.
func (p *LawyerProfile) Approve(now time.Time) {
	p.Status = LawyerApproved
	p.Verified = true
	p.RejectionReason = nil
	p.VerifiedAt = &now
}

func (p *LawyerProfile) Reject(reason string) {
	p.Status = LawyerRejected
	p.Verified = false
	p.RejectionReason = &reason
	p.VerifiedAt = nil
}
