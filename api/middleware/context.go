package middleware

import (
	"legalplatform/internal/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextAccountIDKey = "auth_account_id"
	contextRoleKey      = "auth_role"
	contextEmailKey     = "auth_email"
)

func SetAuthContext(c echo.Context, accountID uuid.UUID, role entity.Role, email string) {
	c.Set(contextAccountIDKey, accountID)
	c.Set(contextRoleKey, role)
	c.Set(contextEmailKey, email)
}

func AccountIDFromContext(c echo.Context) (uuid.UUID, bool) {
	accountID, ok := c.Get(contextAccountIDKey).(uuid.UUID)
	return accountID, ok
}

func RoleFromContext(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(contextRoleKey).(entity.Role)
	return role, ok
}

func EmailFromContext(c echo.Context) (string, bool) {
	email, ok := c.Get(contextEmailKey).(string)
	return email, ok
}
