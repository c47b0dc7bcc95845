package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "dogbook/internal/errors"
	"dogbook/internal/model"
)

// stubUserRepo serves a fixed set of users by ID.
type stubUserRepo struct {
	users map[uint]*model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	return err == nil, nil
}

func newIdentityTestServer(t *testing.T) (*echo.Echo, *JWTService) {
	t.Helper()
	jwtService := NewJWTService("test-secret")
	repo := &stubUserRepo{users: map[uint]*model.User{
		7: {ID: 7, UserName: "alice", Email: "alice@example.com"},
	}}

	e := echo.New()
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(zap.NewNop())
	e.Use(Identity(jwtService, repo))

	e.GET("/public", func(c echo.Context) error {
		if user := CurrentUser(c); user != nil {
			return c.String(http.StatusOK, user.Email)
		}
		return c.String(http.StatusOK, "anonymous")
	})
	e.GET("/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).Email)
	}, RequireUser())

	return e, jwtService
}

func TestIdentity_FailOpen(t *testing.T) {
	e, jwtService := newIdentityTestServer(t)
	validToken, err := jwtService.GenerateAccessToken(7, "alice@example.com")
	assert.NoError(t, err)
	foreignToken, err := NewJWTService("other-secret").GenerateAccessToken(7, "alice@example.com")
	assert.NoError(t, err)
	deletedUserToken, err := jwtService.GenerateAccessToken(99, "gone@example.com")
	assert.NoError(t, err)

	tests := []struct {
		name         string
		authHeader   string
		expectedBody string
	}{
		{name: "no token proceeds anonymous", authHeader: "", expectedBody: "anonymous"},
		{name: "malformed token proceeds anonymous", authHeader: "Bearer garbage", expectedBody: "anonymous"},
		{name: "token signed with another key proceeds anonymous", authHeader: "Bearer " + foreignToken, expectedBody: "anonymous"},
		{name: "token for a deleted user proceeds anonymous", authHeader: "Bearer " + deletedUserToken, expectedBody: "anonymous"},
		{name: "valid token attaches the user", authHeader: "Bearer " + validToken, expectedBody: "alice@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/public", nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestRequireUser_FailClosed(t *testing.T) {
	e, jwtService := newIdentityTestServer(t)
	validToken, err := jwtService.GenerateAccessToken(7, "alice@example.com")
	assert.NoError(t, err)

	t.Run("anonymous request is rejected with the uniform body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `[{"field":"authorization","message":"authentication required"}]`, rec.Body.String())
	})

	t.Run("invalid token never grants access", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+validToken)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice@example.com", rec.Body.String())
	})
}
