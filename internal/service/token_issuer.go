package service

import (
	"errors"
	"time"

	"legalplatform/internal/entity"
	"legalplatform/internal/utils"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(account entity.Account, ttl time.Duration) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, errors.New("jwt manager not configured")
	}
	return j.Manager.IssueAccessToken(account.ID.String(), string(account.Role), account.Email, ttl)
}
