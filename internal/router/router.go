package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"dogbook/internal/auth"
	"dogbook/internal/config"
	"dogbook/internal/handler"
	"dogbook/internal/repository"
)

// Register wires routes and middleware. In owner mode the post mutation
// routes require an authenticated user; in password mode they are public
// and the per-post password carried in the body is what gates mutation.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	users repository.UserRepository,
	ageHandler *handler.AgeHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	// Fail-open identity filter: attaches the user when a valid token is
	// present, never rejects on its own.
	api.Use(auth.Identity(jwtService, users))

	api.GET("/ages/all", ageHandler.ListAges)

	api.POST("/users/register", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.POST("/users/refresh", userHandler.Refresh)
	api.POST("/users/logout", userHandler.Logout)
	api.GET("/users/me", userHandler.Me, auth.RequireUser())

	api.GET("/posts/all", postHandler.ListPosts)
	api.GET("/posts/:id", postHandler.GetPost)

	var mutation []echo.MiddlewareFunc
	if cfg.AuthMode == config.AuthModeOwner {
		mutation = append(mutation, auth.RequireUser())
	}
	api.POST("/posts", postHandler.CreatePost, mutation...)
	api.PUT("/posts/:id", postHandler.UpdatePost, mutation...)
	api.DELETE("/posts/:id", postHandler.DeletePost, mutation...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
