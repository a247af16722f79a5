package dto

import (
	"time"

	"legalplatform/internal/entity"
)

// LawyerProfileRequest carries the self-declared profile fields. DateOfBirth
// is a calendar date, YYYY-MM-DD.
type LawyerProfileRequest struct {
	PhotoURL              *string `json:"photoUrl" validate:"omitempty,url"`
	FullName              string  `json:"fullName" validate:"required,max=200"`
	Address               string  `json:"address" validate:"required"`
	PhoneNumber           string  `json:"phoneNumber" validate:"required,max=50"`
	City                  string  `json:"city" validate:"required,max=100"`
	CNIC                  string  `json:"cnic" validate:"required,max=30"`
	DateOfBirth           string  `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	LawDegreeName         string  `json:"lawDegreeName" validate:"required,max=200"`
	University            string  `json:"university" validate:"required,max=200"`
	GraduationYear        int     `json:"graduationYear" validate:"required,gte=1900,lte=2100"`
	Specialization        string  `json:"specialization" validate:"required,max=200"`
	YearsOfExperience     int     `json:"yearsOfExperience" validate:"gte=0,lte=80"`
	CurrentFirmOrPractice string  `json:"currentFirmOrPractice" validate:"required,max=200"`
	VideoIntroURL         *string `json:"videoIntroUrl" validate:"omitempty,url"`
}

type RejectLawyerRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

type LawyerProfileResponse struct {
	AccountID             string     `json:"accountId"`
	PhotoURL              *string    `json:"photoUrl,omitempty"`
	FullName              string     `json:"fullName"`
	Address               string     `json:"address"`
	PhoneNumber           string     `json:"phoneNumber"`
	City                  string     `json:"city"`
	CNIC                  string     `json:"cnic"`
	DateOfBirth           string     `json:"dateOfBirth"`
	LawDegreeName         string     `json:"lawDegreeName"`
	University            string     `json:"university"`
	GraduationYear        int        `json:"graduationYear"`
	Specialization        string     `json:"specialization"`
	YearsOfExperience     int        `json:"yearsOfExperience"`
	CurrentFirmOrPractice string     `json:"currentFirmOrPractice"`
	VideoIntroURL         *string    `json:"videoIntroUrl,omitempty"`
	Verified              bool       `json:"verified"`
	Status                string     `json:"status"`
	RejectionReason       *string    `json:"rejectionReason,omitempty"`
	VerifiedAt            *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
}

// LawyerSummary is the public directory entry. Identity document numbers and
// addresses stay out of it.
type LawyerSummary struct {
	AccountID             string  `json:"accountId"`
	PhotoURL              *string `json:"photoUrl,omitempty"`
	FullName              string  `json:"fullName"`
	City                  string  `json:"city"`
	Specialization        string  `json:"specialization"`
	YearsOfExperience     int     `json:"yearsOfExperience"`
	CurrentFirmOrPractice string  `json:"currentFirmOrPractice"`
	VideoIntroURL         *string `json:"videoIntroUrl,omitempty"`
}

func LawyerProfileResponseFromEntity(profile *entity.LawyerProfile) LawyerProfileResponse {
	return LawyerProfileResponse{
		AccountID:             profile.AccountID.String(),
		PhotoURL:              profile.PhotoURL,
		FullName:              profile.FullName,
		Address:               profile.Address,
		PhoneNumber:           profile.PhoneNumber,
		City:                  profile.City,
		CNIC:                  profile.CNIC,
		DateOfBirth:           profile.DateOfBirth.Format(time.DateOnly),
		LawDegreeName:         profile.LawDegreeName,
		University:            profile.University,
		GraduationYear:        profile.GraduationYear,
		Specialization:        profile.Specialization,
		YearsOfExperience:     profile.YearsOfExperience,
		CurrentFirmOrPractice: profile.CurrentFirmOrPractice,
		VideoIntroURL:         profile.VideoIntroURL,
		Verified:              profile.Verified,
		Status:                string(profile.Status),
		RejectionReason:       profile.RejectionReason,
		VerifiedAt:            profile.VerifiedAt,
		CreatedAt:             profile.CreatedAt,
	}
}

func LawyerProfileResponsesFromEntities(profiles []entity.LawyerProfile) []LawyerProfileResponse {
	responses := make([]LawyerProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, LawyerProfileResponseFromEntity(&profiles[i]))
	}
	return responses
}

func LawyerSummariesFromEntities(profiles []entity.LawyerProfile) []LawyerSummary {
	summaries := make([]LawyerSummary, 0, len(profiles))
	for _, profile := range profiles {
		summaries = append(summaries, LawyerSummary{
			AccountID:             profile.AccountID.String(),
			PhotoURL:              profile.PhotoURL,
			FullName:              profile.FullName,
			City:                  profile.City,
			Specialization:        profile.Specialization,
			YearsOfExperience:     profile.YearsOfExperience,
			CurrentFirmOrPractice: profile.CurrentFirmOrPractice,
			VideoIntroURL:         profile.VideoIntroURL,
		})
	}
	return summaries
}
