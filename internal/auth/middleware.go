package auth

import (
	jwtv5 "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"dogbook/internal/repository"
)

// Identity returns the fail-open JWT filter. A valid bearer token attaches
// the subject's user to the request context; a missing, malformed or
// expired token is swallowed and the request proceeds unauthenticated.
// Rejection is left entirely to endpoint guards (RequireUser).
func Identity(jwtService *JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             jwtService.Secret(),
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			// fail open: invalid tokens never abort the request
			return nil
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwtv5.MapClaims)
			if !ok {
				return
			}
			rawID, ok := claims["userId"].(float64)
			if !ok {
				return
			}
			if c.Get(ContextUserKey) != nil {
				return
			}
			// An identity whose user row no longer resolves stays anonymous.
			user, err := users.FindByID(c.Request().Context(), uint(rawID))
			if err != nil {
				return
			}
			c.Set(ContextUserKey, user)
		},
	})
}
