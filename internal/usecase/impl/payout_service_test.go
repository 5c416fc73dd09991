package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
	"purposepay/internal/domain/repository"
	"purposepay/internal/domain/service"
	"purposepay/internal/mocks"
	"purposepay/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// payoutServiceFixtures holds all test dependencies for payout service tests.
type payoutServiceFixtures struct {
	service    usecase.PayoutUsecase
	vendorRepo *mocks.MockVendorRepository
	payoutRepo *mocks.MockPayoutRepository
	publisher  *mocks.MockEventPublisher
}

func createTestPayoutService(t *testing.T) payoutServiceFixtures {
	vendorRepo := mocks.NewMockVendorRepository(t)
	payoutRepo := mocks.NewMockPayoutRepository(t)
	publisher := mocks.NewMockEventPublisher(t)

	svc := NewPayoutService(PayoutServiceParams{
		TxManager: &mocks.StubTransactionManager{
			Factory: &mocks.StubRepositoryFactory{Vendors: vendorRepo, Payouts: payoutRepo},
		},
		VendorRepo: vendorRepo,
		PayoutRepo: payoutRepo,
		Publisher:  publisher,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return payoutServiceFixtures{
		service:    svc,
		vendorRepo: vendorRepo,
		payoutRepo: payoutRepo,
		publisher:  publisher,
	}
}

func approvedProfile(owner *entity.User, balance string) *entity.VendorProfile {
	return &entity.VendorProfile{
		ID:           uuid.New(),
		UserID:       owner.ID,
		BusinessName: "Corner Pharmacy",
		Category:     entity.CategoryPharmacy,
		State:        entity.StateApproved,
		Balance:      decimal.RequireFromString(balance),
	}
}

func TestPayoutService_RequestPayout_Success(t *testing.T) {
	fx := createTestPayoutService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := approvedProfile(identity, "100.00")
	amount := decimal.RequireFromString("60.00")

	settled := *profile
	settled.Balance = decimal.RequireFromString("40.00")

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)
	fx.vendorRepo.On("DecrementBalance", ctx, profile.ID, amount).Return(nil)
	fx.payoutRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.PayoutRequest) bool {
		return p.VendorProfileID == profile.ID &&
			p.Amount.Equal(amount) &&
			p.Status == entity.PayoutAccepted &&
			p.DecidedAt != nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.PayoutRequest).ID = uuid.New()
	}).Return(nil)
	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(&settled, nil)
	fx.publisher.On("PublishVendorEvent", ctx, mock.MatchedBy(func(ev *service.VendorEvent) bool {
		return ev.Type == service.EventPayoutSettled &&
			ev.Amount == "60" &&
			ev.Balance == "40"
	})).Return(nil)

	out, err := fx.service.RequestPayout(ctx, identity, &usecase.RequestPayoutInput{Amount: amount})

	require.NoError(t, err)
	assert.Equal(t, entity.PayoutAccepted, out.Payout.Status)
	assert.NotNil(t, out.Payout.DecidedAt)
	assert.True(t, out.Balance.Equal(decimal.RequireFromString("40.00")))
}

func TestPayoutService_RequestPayout_InsufficientBalance(t *testing.T) {
	fx := createTestPayoutService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := approvedProfile(identity, "0")
	amount := decimal.RequireFromString("25.00")

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)
	fx.vendorRepo.On("DecrementBalance", ctx, profile.ID, amount).Return(repository.ErrBalanceConflict)
	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)

	_, err := fx.service.RequestPayout(ctx, identity, &usecase.RequestPayoutInput{Amount: amount})

	assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
	fx.payoutRepo.AssertNotCalled(t, "Create")
}

func TestPayoutService_RequestPayout_UnapprovedVendor(t *testing.T) {
	fx := createTestPayoutService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := approvedProfile(identity, "100.00")
	profile.State = entity.StatePending
	amount := decimal.RequireFromString("25.00")

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)
	fx.vendorRepo.On("DecrementBalance", ctx, profile.ID, amount).Return(repository.ErrBalanceConflict)
	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)

	_, err := fx.service.RequestPayout(ctx, identity, &usecase.RequestPayoutInput{Amount: amount})

	assert.ErrorIs(t, err, domainerrors.ErrVendorNotApproved)
}

func TestPayoutService_RequestPayout_RejectsNonPositiveAmount(t *testing.T) {
	fx := createTestPayoutService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := approvedProfile(identity, "100.00")

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)

	_, err := fx.service.RequestPayout(ctx, identity, &usecase.RequestPayoutInput{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = fx.service.RequestPayout(ctx, identity, &usecase.RequestPayoutInput{Amount: decimal.RequireFromString("-10")})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	fx.vendorRepo.AssertNotCalled(t, "DecrementBalance")
}

func TestPayoutService_RequestPayout_NoProfile(t *testing.T) {
	fx := createTestPayoutService(t)
	ctx := context.Background()
	identity := vendorIdentity()

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(nil, repository.ErrVendorNotFound)

	_, err := fx.service.RequestPayout(ctx, identity, &usecase.RequestPayoutInput{
		Amount: decimal.RequireFromString("10.00"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPayoutService_ListPayouts(t *testing.T) {
	fx := createTestPayoutService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := approvedProfile(identity, "40.00")

	history := []*entity.PayoutRequest{
		{ID: uuid.New(), VendorProfileID: profile.ID, Amount: decimal.RequireFromString("60.00"), Status: entity.PayoutAccepted},
	}

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)
	fx.payoutRepo.On("FindByVendorProfileID", ctx, profile.ID).Return(history, nil)

	got, err := fx.service.ListPayouts(ctx, identity)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// ledgerVendorRepo is an in-memory vendor repository that honors the
// conditional debit contract under concurrent callers. Only the methods the
// payout flow touches are implemented.
type ledgerVendorRepo struct {
	repository.VendorRepository

	mu      sync.Mutex
	profile entity.VendorProfile
}

func (r *ledgerVendorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.VendorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.profile.UserID != userID {
		return nil, repository.ErrVendorNotFound
	}

	snapshot := r.profile

	return &snapshot, nil
}

func (r *ledgerVendorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.VendorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.profile.ID != id {
		return nil, repository.ErrVendorNotFound
	}

	snapshot := r.profile

	return &snapshot, nil
}

func (r *ledgerVendorRepo) DecrementBalance(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.profile.ID != id ||
		r.profile.State != entity.StateApproved ||
		r.profile.Balance.LessThan(amount) {
		return repository.ErrBalanceConflict
	}

	r.profile.Balance = r.profile.Balance.Sub(amount)

	return nil
}

// ledgerPayoutRepo records created payouts in memory.
type ledgerPayoutRepo struct {
	repository.PayoutRepository

	mu      sync.Mutex
	payouts []*entity.PayoutRequest
}

func (r *ledgerPayoutRepo) Create(_ context.Context, payout *entity.PayoutRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	payout.ID = uuid.New()
	r.payouts = append(r.payouts, payout)

	return nil
}

// silentPublisher drops events.
type silentPublisher struct{}

func (silentPublisher) PublishVendorEvent(context.Context, *service.VendorEvent) error { return nil }
func (silentPublisher) Close() error                                                   { return nil }

func TestPayoutService_RequestPayout_ConcurrentRequestsNeverOverdraw(t *testing.T) {
	identity := vendorIdentity()
	vendorRepo := &ledgerVendorRepo{profile: *approvedProfile(identity, "100.00")}
	payoutRepo := &ledgerPayoutRepo{}

	svc := NewPayoutService(PayoutServiceParams{
		TxManager: &mocks.StubTransactionManager{
			Factory: &mocks.StubRepositoryFactory{Vendors: vendorRepo, Payouts: payoutRepo},
		},
		VendorRepo: vendorRepo,
		PayoutRepo: payoutRepo,
		Publisher:  silentPublisher{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	amount := decimal.RequireFromString("60.00")
	errs := make(chan error, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.RequestPayout(context.Background(), identity, &usecase.RequestPayoutInput{Amount: amount})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, shortfalls int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance):
			shortfalls++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, shortfalls)

	vendorRepo.mu.Lock()
	defer vendorRepo.mu.Unlock()
	assert.True(t, vendorRepo.profile.Balance.Equal(decimal.RequireFromString("40.00")))
	assert.Len(t, payoutRepo.payouts, 1)
}
