package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Kind classifies a domain error for HTTP translation.
type Kind int

const (
	// KindValidation means client input violates a declared constraint.
	KindValidation Kind = iota
	// KindInvalidReference means a foreign key target is missing.
	KindInvalidReference
	// KindNotFound means the requested entity is absent.
	KindNotFound
	// KindForbidden means an ownership check failed.
	KindForbidden
	// KindWrongCredential means a per-post password mismatch.
	KindWrongCredential
	// KindDuplicate means a unique-key violation.
	KindDuplicate
	// KindUnauthenticated means no valid identity is attached to the request.
	KindUnauthenticated
)

// Error is a typed domain error carrying the field the client should
// associate the failure with.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrPostNotFound is returned when a post does not exist.
	ErrPostNotFound = &Error{Kind: KindNotFound, Field: "id", Message: "post not found"}
	// ErrInvalidAge is returned when a post references a missing age.
	ErrInvalidAge = &Error{Kind: KindInvalidReference, Field: "ageId", Message: "invalid age id"}
	// ErrNotOwner is returned when the acting user does not own the post.
	ErrNotOwner = &Error{Kind: KindForbidden, Field: "authorization", Message: "no permission to perform this operation"}
	// ErrWrongPostPassword is returned when the per-post password does not match.
	ErrWrongPostPassword = &Error{Kind: KindWrongCredential, Field: "authorization", Message: "wrong post password"}
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = &Error{Kind: KindDuplicate, Field: "email", Message: "email address already in use"}
	// ErrUnauthenticated is returned when authentication is required but absent.
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Field: "authorization", Message: "authentication required"}
	// ErrInvalidLogin is returned when email or password is incorrect.
	ErrInvalidLogin = &Error{Kind: KindUnauthenticated, Field: "authorization", Message: "invalid email or password"}
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = &Error{Kind: KindUnauthenticated, Field: "authorization", Message: "invalid or expired refresh token"}
)

// Validation builds a single-field validation error.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// FieldError is one entry of the uniform error response body. Every error,
// single or not, is rendered as an ordered list of these.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func statusOf(k Kind) int {
	switch k {
	case KindValidation, KindInvalidReference, KindDuplicate:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden, KindWrongCredential:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// NewHTTPErrorHandler returns the central echo error handler. Handlers and
// services never shape error responses themselves; everything funnels here.
// Unexpected errors are logged in full and the client only sees a generic
// server entry.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *Error
		var fieldErrs validator.ValidationErrors
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &appErr):
			_ = c.JSON(statusOf(appErr.Kind), []FieldError{{Field: appErr.Field, Message: appErr.Message}})

		case errors.As(err, &fieldErrs):
			body := make([]FieldError, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				body = append(body, FieldError{Field: jsonField(fe.Field()), Message: constraintMessage(fe)})
			}
			_ = c.JSON(http.StatusBadRequest, body)

		case errors.As(err, &echoErr):
			// Router misses and bind failures land here.
			msg := "invalid request"
			if s, ok := echoErr.Message.(string); ok {
				msg = s
			}
			_ = c.JSON(echoErr.Code, []FieldError{{Field: "request", Message: msg}})

		default:
			log.Error("unexpected error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
			_ = c.JSON(http.StatusInternalServerError, []FieldError{{Field: "server", Message: "unexpected error"}})
		}
	}
}

// jsonField maps a Go struct field name to its JSON name.
func jsonField(name string) string {
	switch name {
	case "AgeID":
		return "ageId"
	case "ImageURL":
		return "imageUrl"
	case "UserName":
		return "userName"
	case "RefreshToken":
		return "refreshToken"
	default:
		if name == "" {
			return name
		}
		return string(name[0]|0x20) + name[1:]
	}
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}
