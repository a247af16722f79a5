package service

import (
	"errors"

	"legalplatform/internal/utils"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrUnknownAccount       = errors.New("unknown account")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrAccountNotActive     = errors.New("account not active")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrNotALawyer           = errors.New("account is not a lawyer")
	ErrUnknownRole          = errors.New("unknown role")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
	ErrDecryptionFailed     = utils.ErrDecryptionFailed
)

var outcomes = []error{
	ErrInvalidInput,
	ErrDuplicateEmail,
	ErrUnknownAccount,
	ErrInvalidOrExpiredCode,
	ErrInvalidCredentials,
	ErrEmailNotVerified,
	ErrAccountNotActive,
	ErrNotFound,
	ErrForbidden,
	ErrNotALawyer,
	ErrUnknownRole,
	ErrAssistantUnavailable,
	ErrDecryptionFailed,
}

// outcome turns an operation result into a bounded metric label.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	for _, known := range outcomes {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal"
}
