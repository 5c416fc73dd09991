// Package handler contains the HTTP handlers of the API server.
package handler

import (
	"log/slog"
	"net/http"

	"purposepay/internal/delivery/http/middleware"
	"purposepay/internal/delivery/http/response"
	"purposepay/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AccountHandler holds dependencies for account and session handlers
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Vendor   bool   `json:"vendor"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountRequest represents the request body for updating the account
type UpdateAccountRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Email  string `json:"email" validate:"omitempty,email"`
	Vendor *bool  `json:"vendor"`
}

// Register handles account creation. The response carries the raw session
// token; it is never shown again.
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Vendor:   req.Vendor,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"user":  output.User,
		"token": output.Token,
	})
}

// Login handles credential verification and session token replacement
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user":  output.User,
		"token": output.Token,
	})
}

// Logout revokes the caller's session token
func (h *AccountHandler) Logout(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	if err := h.accountUC.Logout(c.Request().Context(), identity); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// GetMe returns the calling account
func (h *AccountHandler) GetMe(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	user, err := h.accountUC.GetAccount(c.Request().Context(), identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// UpdateMe modifies the calling account
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.accountUC.UpdateAccount(c.Request().Context(), identity, &usecase.UpdateAccountInput{
		Name:   req.Name,
		Email:  req.Email,
		Vendor: req.Vendor,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// HealthCheck reports service liveness
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
