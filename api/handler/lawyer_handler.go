package handler

import (
	"context"
	"net/http"

	"legalplatform/internal/dto"
	"legalplatform/internal/entity"
	"legalplatform/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type LawyerService interface {
	ListApproved(ctx context.Context) ([]entity.LawyerProfile, error)
	ListPending(ctx context.Context) ([]entity.LawyerProfile, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input service.LawyerProfileInput) (*entity.LawyerProfile, error)
}

type LawyerHandler struct {
	Service  LawyerService
	Validate *validator.Validate
}

func NewLawyerHandler(svc LawyerService, validate *validator.Validate) *LawyerHandler {
	return &LawyerHandler{Service: svc, Validate: validate}
}

// Directory lists approved lawyers. It is public.
func (h *LawyerHandler) Directory(c echo.Context) error {
	profiles, err := h.Service.ListApproved(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LawyerSummariesFromEntities(profiles))
}

func (h *LawyerHandler) UpdateMyProfile(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	var req dto.LawyerProfileRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input, err := profileInput(req)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	profile, err := h.Service.UpdateProfile(c.Request().Context(), accountID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LawyerProfileResponseFromEntity(profile))
}
