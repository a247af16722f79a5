package handler

import (
	"context"
	"net/http"

	"legalplatform/internal/dto"
	"legalplatform/internal/entity"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type LawyerReviewer interface {
	ApproveLawyer(ctx context.Context, accountID uuid.UUID) error
	RejectLawyer(ctx context.Context, accountID uuid.UUID, reason string) error
}

type PendingLawyers interface {
	ListPending(ctx context.Context) ([]entity.LawyerProfile, error)
}

type AdminHandler struct {
	Reviewer LawyerReviewer
	Pending  PendingLawyers
	Validate *validator.Validate
}

func NewAdminHandler(reviewer LawyerReviewer, pending PendingLawyers, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{Reviewer: reviewer, Pending: pending, Validate: validate}
}

func (h *AdminHandler) ListPending(c echo.Context) error {
	profiles, err := h.Pending.ListPending(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LawyerProfileResponsesFromEntities(profiles))
}

func (h *AdminHandler) Approve(c echo.Context) error {
	accountID, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Reviewer.ApproveLawyer(c.Request().Context(), accountID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Lawyer approved"})
}

func (h *AdminHandler) Reject(c echo.Context) error {
	accountID, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.RejectLawyerRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validate(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Reviewer.RejectLawyer(c.Request().Context(), accountID, req.Reason); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Lawyer rejected"})
}
