package service

import (
	"time"

	"legalplatform/internal/entity"

	"github.com/google/uuid"
)

type RegisterLocalPersonInput struct {
	Name        string
	Email       string
	PhoneNumber string
	City        string
	Password    string
	IPAddress   *string
}

type LawyerProfileInput struct {
	PhotoURL              *string
	FullName              string
	Address               string
	PhoneNumber           string
	City                  string
	CNIC                  string
	DateOfBirth           time.Time
	LawDegreeName         string
	University            string
	GraduationYear        int
	Specialization        string
	YearsOfExperience     int
	CurrentFirmOrPractice string
	VideoIntroURL         *string
}

type RegisterLawyerInput struct {
	Email     string
	Password  string
	Profile   LawyerProfileInput
	IPAddress *string
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress *string
}

type RegisterResult struct {
	AccountID uuid.UUID
	Message   string
}

type VerifyResult struct {
	AccountID uuid.UUID
	Active    bool
	Message   string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	AccountID   uuid.UUID
	Role        entity.Role
}
