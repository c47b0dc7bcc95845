package auth

import (
	"github.com/labstack/echo/v4"

	apperrors "dogbook/internal/errors"
	"dogbook/internal/model"
)

// ContextUserKey is the echo context key holding the authenticated user.
const ContextUserKey = "currentUser"

// CurrentUser returns the authenticated user attached to the request, or
// nil when the request is anonymous.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

// RequireUser rejects anonymous requests. The identity filter itself never
// rejects; this is the fail-closed half of the two-layer design.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return apperrors.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
