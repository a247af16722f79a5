package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"legalplatform/api/middleware"
	"legalplatform/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	errUnauthorized        = errors.New("unauthorized")
	errInvalidConversation = errors.New("invalid conversation_id")
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func validate(v *validator.Validate, payload any) error {
	if v == nil {
		return nil
	}
	return v.Struct(payload)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidOrExpiredCode):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailNotVerified), errors.Is(err, service.ErrAccountNotActive),
		errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUnknownAccount), errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNotALawyer):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrAssistantUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		return writeError(c, status, errors.New("internal server error"))
	}
	return writeError(c, status, err)
}

func currentAccountID(c echo.Context) (uuid.UUID, bool) {
	return middleware.AccountIDFromContext(c)
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
