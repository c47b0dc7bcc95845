package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func translate(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zap.NewNop())(err, c)
	return rec
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "not found",
			err:            ErrPostNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `[{"field":"id","message":"post not found"}]`,
		},
		{
			name:           "invalid age reference",
			err:            ErrInvalidAge,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `[{"field":"ageId","message":"invalid age id"}]`,
		},
		{
			name:           "forbidden ownership",
			err:            ErrNotOwner,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `[{"field":"authorization","message":"no permission to perform this operation"}]`,
		},
		{
			name:           "wrong post password",
			err:            ErrWrongPostPassword,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `[{"field":"authorization","message":"wrong post password"}]`,
		},
		{
			name:           "duplicate email",
			err:            ErrDuplicateEmail,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `[{"field":"email","message":"email address already in use"}]`,
		},
		{
			name:           "unauthenticated",
			err:            ErrUnauthenticated,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `[{"field":"authorization","message":"authentication required"}]`,
		},
		{
			name:           "wrapped domain error still translates",
			err:            fmt.Errorf("update post: %w", ErrNotOwner),
			expectedStatus: http.StatusForbidden,
			expectedBody:   `[{"field":"authorization","message":"no permission to perform this operation"}]`,
		},
		{
			name:           "single-field validation error",
			err:            Validation("password", "is required"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `[{"field":"password","message":"is required"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := translate(t, tt.err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler_ValidatorErrors(t *testing.T) {
	type registerForm struct {
		UserName string `validate:"required,max=20"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	err := validator.New().Struct(registerForm{Email: "not-an-email", Password: "short"})
	rec := translate(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `[
		{"field":"userName","message":"is required"},
		{"field":"email","message":"is not a valid email address"},
		{"field":"password","message":"must be at least 8 characters"}
	]`, rec.Body.String())
}

func TestHTTPErrorHandler_UnexpectedErrorNeverLeaks(t *testing.T) {
	rec := translate(t, fmt.Errorf("dial tcp 10.0.0.5:3306: connect: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `[{"field":"server","message":"unexpected error"}]`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestHTTPErrorHandler_EchoErrors(t *testing.T) {
	rec := translate(t, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `[{"field":"request","message":"invalid request body"}]`, rec.Body.String())
}

func TestJSONFieldMapping(t *testing.T) {
	tests := map[string]string{
		"AgeID":        "ageId",
		"ImageURL":     "imageUrl",
		"UserName":     "userName",
		"RefreshToken": "refreshToken",
		"Title":        "title",
		"Email":        "email",
	}
	for goName, jsonName := range tests {
		assert.Equal(t, jsonName, jsonField(goName))
	}
}
