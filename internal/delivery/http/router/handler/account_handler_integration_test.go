package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"purposepay/internal/delivery/http/validator"
	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
	"purposepay/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// stubAccountUsecase drives handler tests with canned usecase behavior.
type stubAccountUsecase struct {
	usecase.AccountUsecase

	registerFn func(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error)
	loginFn    func(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error)
}

func (s *stubAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	return s.loginFn(ctx, input)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAccountHandler_Register_Integration(t *testing.T) {
	stub := &stubAccountUsecase{
		registerFn: func(_ context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "Ada", input.Name)
			assert.True(t, input.Vendor)

			return &usecase.AuthOutput{
				User: &entity.User{
					ID:    uuid.New(),
					Name:  input.Name,
					Email: input.Email,
					Roles: entity.Roles{entity.RoleCustomer, entity.RoleVendor},
				},
				Token: "raw-session-token",
			}, nil
		},
	}

	handler := &AccountHandler{
		accountUC: stub,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"correct horse","vendor":true}`)

	assert.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "raw-session-token")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "vendor")
}

func TestAccountHandler_Register_ShortPassword(t *testing.T) {
	handler := &AccountHandler{
		accountUC: &stubAccountUsecase{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"short"}`)

	assert.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestAccountHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAccountUsecase{
		loginFn: func(_ context.Context, _ *usecase.LoginInput) (*usecase.AuthOutput, error) {
			return nil, domainerrors.ErrInvalidCredentials
		},
	}

	handler := &AccountHandler{
		accountUC: stub,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ada@example.com","password":"wrong password"}`)

	assert.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "INVALID_CREDENTIALS")
	assert.NotContains(t, body, "raw-session-token")
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	assert.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
