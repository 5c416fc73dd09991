package usecase

import (
	"context"

	"purposepay/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// RequestPayoutInput defines the data for a payout request.
type RequestPayoutInput struct {
	Amount decimal.Decimal
}

// PayoutOutput returns the decided payout request together with the
// vendor's balance after the decision.
type PayoutOutput struct {
	Payout  *entity.PayoutRequest
	Balance decimal.Decimal
}

// PayoutUsecase defines the interface for the payout ledger.
type PayoutUsecase interface {
	// RequestPayout atomically checks and debits the caller's balance and
	// records the accepted request. The balance can never go negative,
	// regardless of how many requests race against the same profile.
	RequestPayout(ctx context.Context, identity *entity.User, input *RequestPayoutInput) (*PayoutOutput, error)

	// ListPayouts returns the caller's payout history, newest first.
	ListPayouts(ctx context.Context, identity *entity.User) ([]*entity.PayoutRequest, error)
}
