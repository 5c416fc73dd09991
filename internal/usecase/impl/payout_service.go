package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "purposepay/internal/delivery/context"
	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
	"purposepay/internal/domain/policy"
	"purposepay/internal/domain/repository"
	"purposepay/internal/domain/service"
	"purposepay/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// payoutService implements the PayoutUsecase interface.
type payoutService struct {
	txManager  repository.TransactionManager
	vendorRepo repository.VendorRepository
	payoutRepo repository.PayoutRepository
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// PayoutServiceParams holds dependencies for payoutService, injected by Fx.
type PayoutServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	VendorRepo repository.VendorRepository
	PayoutRepo repository.PayoutRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewPayoutService is the constructor for payoutService.
func NewPayoutService(params PayoutServiceParams) usecase.PayoutUsecase {
	return &payoutService{
		txManager:  params.TxManager,
		vendorRepo: params.VendorRepo,
		payoutRepo: params.PayoutRepo,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *payoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RequestPayout debits the balance and records the accepted request in one
// transaction. The debit is a conditional update whose WHERE clause carries
// the approval and funds checks, so of two racing requests that together
// exceed the balance exactly one succeeds and the balance never goes
// negative.
func (srv *payoutService) RequestPayout(ctx context.Context, identity *entity.User, input *usecase.RequestPayoutInput) (*usecase.PayoutOutput, error) {
	if identity == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	profile, err := srv.vendorRepo.FindByUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("no vendor profile for this account")
		}

		return nil, err
	}

	if err := policy.Authorize(identity, policy.OpPayoutRequest, policy.Resource{
		OwnerID:     profile.UserID.String(),
		VendorState: profile.State,
	}); err != nil {
		return nil, err
	}

	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	now := time.Now().UTC()
	payout := &entity.PayoutRequest{
		VendorProfileID: profile.ID,
		Amount:          input.Amount,
		Status:          entity.PayoutAccepted,
		DecidedAt:       &now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		vendorRepo := repoFactory.VendorRepo()

		if err := vendorRepo.DecrementBalance(ctx, profile.ID, input.Amount); err != nil {
			if errors.Is(err, repository.ErrBalanceConflict) {
				// The conditional update cannot tell an unapproved
				// profile from a short balance; one re-read can.
				current, readErr := vendorRepo.FindByID(ctx, profile.ID)
				if readErr != nil {
					return errors.Wrap(readErr, "failed to reload vendor profile after rejected debit")
				}
				if current.State != entity.StateApproved {
					return domainerrors.ErrVendorNotApproved
				}

				return domainerrors.ErrInsufficientBalance
			}

			return err
		}

		if err := repoFactory.PayoutRepo().Create(ctx, payout); err != nil {
			return errors.Wrap(err, "failed to record payout request")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Payout request failed",
			slog.Any("profileID", profile.ID),
			slog.String("amount", input.Amount.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	settled, err := srv.vendorRepo.FindByID(ctx, profile.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload vendor profile after payout")
	}

	srv.log(ctx).Info("Payout settled",
		slog.Any("profileID", profile.ID),
		slog.Any("payoutID", payout.ID),
		slog.String("amount", input.Amount.String()),
		slog.String("balance", settled.Balance.String()),
	)

	srv.publishSettled(ctx, settled, payout)

	return &usecase.PayoutOutput{Payout: payout, Balance: settled.Balance}, nil
}

// ListPayouts returns the caller's payout history, newest first.
func (srv *payoutService) ListPayouts(ctx context.Context, identity *entity.User) ([]*entity.PayoutRequest, error) {
	if identity == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	profile, err := srv.vendorRepo.FindByUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("no vendor profile for this account")
		}

		return nil, err
	}

	if err := policy.Authorize(identity, policy.OpPayoutList, policy.Resource{OwnerID: profile.UserID.String()}); err != nil {
		return nil, err
	}

	return srv.payoutRepo.FindByVendorProfileID(ctx, profile.ID)
}

// publishSettled emits the settlement event. Failures are logged and
// swallowed: the ledger already committed.
func (srv *payoutService) publishSettled(ctx context.Context, profile *entity.VendorProfile, payout *entity.PayoutRequest) {
	event := &service.VendorEvent{
		RequestID:       deliverycontext.GetRequestIDFromContext(ctx),
		Type:            service.EventPayoutSettled,
		VendorProfileID: profile.ID.String(),
		BusinessName:    profile.BusinessName,
		PayoutRequestID: payout.ID.String(),
		Amount:          payout.Amount.String(),
		Balance:         profile.Balance.String(),
	}

	if err := srv.publisher.PublishVendorEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish payout event",
			slog.Any("payoutID", payout.ID),
			slog.Any("error", err),
		)
	}
}
