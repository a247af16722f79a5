package dto

import (
	"time"

	"legalplatform/internal/entity"
)

type SignupLocalRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=50"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Password    string `json:"password" validate:"required,min=8"`
}

type SignupLawyerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	LawyerProfileRequest
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type ResendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SignupResponse struct {
	AccountID string `json:"accountId"`
	Message   string `json:"message"`
}

type VerifyOtpResponse struct {
	AccountID string `json:"accountId"`
	Active    bool   `json:"active"`
	Message   string `json:"message"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	AccountID   string `json:"accountId"`
	Role        string `json:"role"`
}

type AccountResponse struct {
	ID            string                 `json:"id"`
	Email         string                 `json:"email"`
	Role          string                 `json:"role"`
	Name          *string                `json:"name,omitempty"`
	PhoneNumber   *string                `json:"phoneNumber,omitempty"`
	City          *string                `json:"city,omitempty"`
	EmailVerified bool                   `json:"emailVerified"`
	Active        bool                   `json:"active"`
	CreatedAt     time.Time              `json:"createdAt"`
	LawyerProfile *LawyerProfileResponse `json:"lawyerProfile,omitempty"`
}

func AccountResponseFromEntity(account *entity.Account) AccountResponse {
	response := AccountResponse{
		ID:            account.ID.String(),
		Email:         account.Email,
		Role:          string(account.Role),
		Name:          account.Name,
		PhoneNumber:   account.PhoneNumber,
		City:          account.City,
		EmailVerified: account.EmailVerified,
		Active:        account.Active,
		CreatedAt:     account.CreatedAt,
	}
	if account.LawyerProfile != nil {
		profile := LawyerProfileResponseFromEntity(account.LawyerProfile)
		response.LawyerProfile = &profile
	}
	return response
}
