package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"legalplatform/internal/dto"
	"legalplatform/internal/entity"
	"legalplatform/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type IdentityService interface {
	RegisterLocalPerson(ctx context.Context, input service.RegisterLocalPersonInput) (*service.RegisterResult, error)
	RegisterLawyer(ctx context.Context, input service.RegisterLawyerInput) (*service.RegisterResult, error)
	VerifyOtp(ctx context.Context, email string, code string) (*service.VerifyResult, error)
	ResendOtp(ctx context.Context, email string) (string, error)
	Login(ctx context.Context, input service.LoginInput) (*service.LoginResult, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
}

type IdentityHandler struct {
	Service  IdentityService
	Validate *validator.Validate
}

func NewIdentityHandler(svc IdentityService, validate *validator.Validate) *IdentityHandler {
	return &IdentityHandler{Service: svc, Validate: validate}
}

func (h *IdentityHandler) SignupLocal(c echo.Context) error {
	var req dto.SignupLocalRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.RegisterLocalPerson(c.Request().Context(), service.RegisterLocalPersonInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		City:        req.City,
		Password:    req.Password,
		IPAddress:   stringPtr(c.RealIP()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.SignupResponse{AccountID: result.AccountID.String(), Message: result.Message})
}

func (h *IdentityHandler) SignupLawyer(c echo.Context) error {
	var req dto.SignupLawyerRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	profile, err := profileInput(req.LawyerProfileRequest)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.RegisterLawyer(c.Request().Context(), service.RegisterLawyerInput{
		Email:     req.Email,
		Password:  req.Password,
		Profile:   profile,
		IPAddress: stringPtr(c.RealIP()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.SignupResponse{AccountID: result.AccountID.String(), Message: result.Message})
}

func (h *IdentityHandler) VerifyOtp(c echo.Context) error {
	var req dto.VerifyOtpRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.VerifyOtp(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.VerifyOtpResponse{
		AccountID: result.AccountID.String(),
		Active:    result.Active,
		Message:   result.Message,
	})
}

func (h *IdentityHandler) ResendOtp(c echo.Context) error {
	var req dto.ResendOtpRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	message, err := h.Service.ResendOtp(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, dto.MessageResponse{Message: message})
}

func (h *IdentityHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.Login(c.Request().Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: stringPtr(c.RealIP()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
		AccountID:   result.AccountID.String(),
		Role:        string(result.Role),
	})
}

func (h *IdentityHandler) Me(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	account, err := h.Service.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AccountResponseFromEntity(account))
}

func profileInput(req dto.LawyerProfileRequest) (service.LawyerProfileInput, error) {
	dateOfBirth, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return service.LawyerProfileInput{}, errors.New("dateOfBirth must be YYYY-MM-DD")
	}
	return service.LawyerProfileInput{
		PhotoURL:              req.PhotoURL,
		FullName:              req.FullName,
		Address:               req.Address,
		PhoneNumber:           req.PhoneNumber,
		City:                  req.City,
		CNIC:                  req.CNIC,
		DateOfBirth:           dateOfBirth,
		LawDegreeName:         req.LawDegreeName,
		University:            req.University,
		GraduationYear:        req.GraduationYear,
		Specialization:        req.Specialization,
		YearsOfExperience:     req.YearsOfExperience,
		CurrentFirmOrPractice: req.CurrentFirmOrPractice,
		VideoIntroURL:         req.VideoIntroURL,
	}, nil
}
