package handler

import (
	"log/slog"
	"net/http"

	"purposepay/internal/delivery/http/middleware"
	"purposepay/internal/delivery/http/response"
	"purposepay/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// PayoutHandlerParams holds dependencies for PayoutHandler, injected by Fx.
type PayoutHandlerParams struct {
	fx.In

	PayoutUC usecase.PayoutUsecase
	Logger   *slog.Logger
}

// PayoutHandler holds dependencies for payout ledger handlers
type PayoutHandler struct {
	payoutUC usecase.PayoutUsecase
	logger   *slog.Logger
}

// NewPayoutHandler is the constructor for PayoutHandler
func NewPayoutHandler(params PayoutHandlerParams) *PayoutHandler {
	return &PayoutHandler{
		payoutUC: params.PayoutUC,
		logger:   params.Logger,
	}
}

// RequestPayoutRequest represents the request body for a payout request.
// Amount travels as a decimal string so no precision is lost in transit.
type RequestPayoutRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// RequestPayout handles a vendor's withdrawal request
func (h *PayoutHandler) RequestPayout(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	var req RequestPayoutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payout input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return response.BadRequest(c, "INVALID_AMOUNT", "Amount must be a decimal number")
	}

	output, err := h.payoutUC.RequestPayout(c.Request().Context(), identity, &usecase.RequestPayoutInput{
		Amount: amount,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"payout":  output.Payout,
		"balance": output.Balance,
	})
}

// ListPayouts returns the caller's payout history
func (h *PayoutHandler) ListPayouts(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)

	payouts, err := h.payoutUC.ListPayouts(c.Request().Context(), identity)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payouts)
}
