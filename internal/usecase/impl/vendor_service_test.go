package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

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

// vendorServiceFixtures holds all test dependencies for vendor service tests.
type vendorServiceFixtures struct {
	service    usecase.VendorUsecase
	vendorRepo *mocks.MockVendorRepository
	publisher  *mocks.MockEventPublisher
}

func createTestVendorService(t *testing.T) vendorServiceFixtures {
	vendorRepo := mocks.NewMockVendorRepository(t)
	publisher := mocks.NewMockEventPublisher(t)

	svc := NewVendorService(VendorServiceParams{
		VendorRepo: vendorRepo,
		Publisher:  publisher,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return vendorServiceFixtures{
		service:    svc,
		vendorRepo: vendorRepo,
		publisher:  publisher,
	}
}

func vendorIdentity() *entity.User {
	return &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleCustomer, entity.RoleVendor}}
}

func staffIdentity() *entity.User {
	return &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleStaff}}
}

func draftProfile(owner *entity.User) *entity.VendorProfile {
	return &entity.VendorProfile{
		ID:           uuid.New(),
		UserID:       owner.ID,
		BusinessName: "Corner Pharmacy",
		Category:     entity.CategoryPharmacy,
		State:        entity.StateDraft,
		Balance:      decimal.Zero,
	}
}

func TestVendorService_CreateProfile_Success(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	identity := vendorIdentity()

	fx.vendorRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.VendorProfile) bool {
		return p.UserID == identity.ID && p.State == entity.StateDraft && p.Balance.IsZero()
	})).Return(nil)

	profile, err := fx.service.CreateProfile(ctx, identity, &usecase.CreateVendorInput{
		BusinessName: "Corner Pharmacy",
		Category:     entity.CategoryPharmacy,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StateDraft, profile.State)
	assert.True(t, profile.Balance.IsZero())
}

func TestVendorService_CreateProfile_RequiresVendorRole(t *testing.T) {
	fx := createTestVendorService(t)

	customer := &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleCustomer}}

	_, err := fx.service.CreateProfile(context.Background(), customer, &usecase.CreateVendorInput{
		BusinessName: "Nope",
		Category:     entity.CategoryOther,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestVendorService_CreateProfile_UnknownCategory(t *testing.T) {
	fx := createTestVendorService(t)

	_, err := fx.service.CreateProfile(context.Background(), vendorIdentity(), &usecase.CreateVendorInput{
		BusinessName: "Corner Pharmacy",
		Category:     entity.VendorCategory("restaurant"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestVendorService_Submit_Success(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := draftProfile(identity)

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)
	fx.vendorRepo.On("UpdateState", ctx, profile.ID, entity.StateDraft, entity.StatePending,
		(*uuid.UUID)(nil), mock.Anything).Return(nil)

	updated, err := fx.service.Submit(ctx, identity)

	require.NoError(t, err)
	assert.Equal(t, entity.StatePending, updated.State)
}

func TestVendorService_Submit_FromPendingRefused(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := draftProfile(identity)
	profile.State = entity.StatePending

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)

	_, err := fx.service.Submit(ctx, identity)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	fx.vendorRepo.AssertNotCalled(t, "UpdateState")
}

func TestVendorService_Submit_ConcurrentDecisionLoses(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := draftProfile(identity)

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)
	// Another request moved the row between the read and the write.
	fx.vendorRepo.On("UpdateState", ctx, profile.ID, entity.StateDraft, entity.StatePending,
		(*uuid.UUID)(nil), mock.Anything).Return(repository.ErrStateConflict)

	_, err := fx.service.Submit(ctx, identity)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestVendorService_Approve_Success(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	staff := staffIdentity()
	owner := vendorIdentity()
	profile := draftProfile(owner)
	profile.State = entity.StatePending

	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	fx.vendorRepo.On("UpdateState", ctx, profile.ID, entity.StatePending, entity.StateApproved,
		mock.MatchedBy(func(id *uuid.UUID) bool { return id != nil && *id == staff.ID }),
		mock.MatchedBy(func(at *time.Time) bool { return at != nil })).Return(nil)
	fx.publisher.On("PublishVendorEvent", ctx, mock.MatchedBy(func(ev *service.VendorEvent) bool {
		return ev.Type == service.EventVendorApproved && ev.VendorProfileID == profile.ID.String()
	})).Return(nil)

	approved, err := fx.service.Approve(ctx, staff, profile.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.StateApproved, approved.State)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, staff.ID, *approved.ReviewedBy)
	assert.NotNil(t, approved.ApprovedAt)
}

func TestVendorService_Approve_RequiresStaff(t *testing.T) {
	fx := createTestVendorService(t)

	_, err := fx.service.Approve(context.Background(), vendorIdentity(), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestVendorService_Approve_AlreadyDecided(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	staff := staffIdentity()
	owner := vendorIdentity()
	profile := draftProfile(owner)
	profile.State = entity.StateApproved

	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)

	_, err := fx.service.Approve(ctx, staff, profile.ID)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestVendorService_Reject_NoApprovalTimestamp(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	staff := staffIdentity()
	owner := vendorIdentity()
	profile := draftProfile(owner)
	profile.State = entity.StatePending

	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	fx.vendorRepo.On("UpdateState", ctx, profile.ID, entity.StatePending, entity.StateRejected,
		mock.Anything, mock.Anything).Return(nil)
	fx.publisher.On("PublishVendorEvent", ctx, mock.MatchedBy(func(ev *service.VendorEvent) bool {
		return ev.Type == service.EventVendorRejected
	})).Return(nil)

	rejected, err := fx.service.Reject(ctx, staff, profile.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.StateRejected, rejected.State)
	assert.Nil(t, rejected.ApprovedAt)
	require.NotNil(t, rejected.ReviewedBy)
	assert.Equal(t, staff.ID, *rejected.ReviewedBy)
}

func TestVendorService_UpdateOwnProfile_PendingIsEditable(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := draftProfile(identity)
	profile.State = entity.StatePending

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)
	fx.vendorRepo.On("Update", ctx, mock.MatchedBy(func(p *entity.VendorProfile) bool {
		return p.BusinessName == "Renamed Pharmacy"
	})).Return(nil)

	updated, err := fx.service.UpdateOwnProfile(ctx, identity, &usecase.UpdateVendorInput{
		BusinessName: "Renamed Pharmacy",
		Category:     entity.CategoryPharmacy,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed Pharmacy", updated.BusinessName)
}

func TestVendorService_UpdateOwnProfile_ApprovedIsLocked(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := draftProfile(identity)
	profile.State = entity.StateApproved

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)

	_, err := fx.service.UpdateOwnProfile(ctx, identity, &usecase.UpdateVendorInput{
		BusinessName: "Renamed Pharmacy",
		Category:     entity.CategoryPharmacy,
	})

	assert.ErrorIs(t, err, domainerrors.ErrProfileLocked)
	fx.vendorRepo.AssertNotCalled(t, "Update")
}

func TestVendorService_AddDocument_LockedAfterApproval(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	identity := vendorIdentity()
	profile := draftProfile(identity)
	profile.State = entity.StateApproved

	fx.vendorRepo.On("FindByUserID", ctx, identity.ID).Return(profile, nil)

	_, err := fx.service.AddDocument(ctx, identity, &usecase.AddDocumentInput{
		Title:     "Business license",
		Reference: "docs/license.pdf",
	})

	assert.ErrorIs(t, err, domainerrors.ErrProfileLocked)
}

func TestVendorService_GetPublic_HidesUnapproved(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	owner := vendorIdentity()
	viewer := &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleCustomer}}
	profile := draftProfile(owner)
	profile.State = entity.StatePending

	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)

	_, err := fx.service.GetPublic(ctx, viewer, profile.ID)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVendorService_GetPublic_ApprovedProjection(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	owner := vendorIdentity()
	viewer := &entity.User{ID: uuid.New(), Roles: entity.Roles{entity.RoleCustomer}}
	profile := draftProfile(owner)
	profile.State = entity.StateApproved
	profile.Balance = decimal.RequireFromString("250.00")
	profile.Locations = []entity.BusinessLocation{{Label: "Main branch", Address: "1 High St"}}

	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)

	public, err := fx.service.GetPublic(ctx, viewer, profile.ID)

	require.NoError(t, err)
	assert.Equal(t, profile.BusinessName, public.BusinessName)
	assert.Len(t, public.Locations, 1)
}

func TestVendorService_AdminUpdate_ApprovedProfileStaysEditableForStaff(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	staff := staffIdentity()
	owner := vendorIdentity()
	profile := draftProfile(owner)
	profile.State = entity.StateApproved

	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	fx.vendorRepo.On("Update", ctx, mock.MatchedBy(func(p *entity.VendorProfile) bool {
		return p.BusinessName == "Corrected Name"
	})).Return(nil)

	updated, err := fx.service.AdminUpdate(ctx, staff, profile.ID, &usecase.UpdateVendorInput{
		BusinessName: "Corrected Name",
		Category:     entity.CategoryPharmacy,
	})

	require.NoError(t, err)
	assert.Equal(t, "Corrected Name", updated.BusinessName)
}

func TestVendorService_AdminUpdate_RequiresStaff(t *testing.T) {
	fx := createTestVendorService(t)

	_, err := fx.service.AdminUpdate(context.Background(), vendorIdentity(), uuid.New(), &usecase.UpdateVendorInput{
		BusinessName: "Corrected Name",
		Category:     entity.CategoryPharmacy,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestVendorService_Credit_Success(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	staff := staffIdentity()
	owner := vendorIdentity()
	profile := draftProfile(owner)
	profile.State = entity.StateApproved
	profile.Balance = decimal.RequireFromString("150.00")

	amount := decimal.RequireFromString("50.00")

	fx.vendorRepo.On("CreditBalance", ctx, profile.ID, amount).Return(nil)
	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)

	credited, err := fx.service.Credit(ctx, staff, profile.ID, amount)

	require.NoError(t, err)
	assert.True(t, credited.Balance.Equal(decimal.RequireFromString("150.00")))
}

func TestVendorService_Credit_RejectsNonPositiveAmount(t *testing.T) {
	fx := createTestVendorService(t)

	_, err := fx.service.Credit(context.Background(), staffIdentity(), uuid.New(), decimal.Zero)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = fx.service.Credit(context.Background(), staffIdentity(), uuid.New(), decimal.RequireFromString("-5"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestVendorService_PublishFailureDoesNotFailDecision(t *testing.T) {
	fx := createTestVendorService(t)
	ctx := context.Background()
	staff := staffIdentity()
	owner := vendorIdentity()
	profile := draftProfile(owner)
	profile.State = entity.StatePending

	fx.vendorRepo.On("FindByID", ctx, profile.ID).Return(profile, nil)
	fx.vendorRepo.On("UpdateState", ctx, profile.ID, entity.StatePending, entity.StateApproved,
		mock.Anything, mock.Anything).Return(nil)
	fx.publisher.On("PublishVendorEvent", ctx, mock.Anything).
		Return(domainerrors.ErrInternalError)

	approved, err := fx.service.Approve(ctx, staff, profile.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.StateApproved, approved.State)
}
