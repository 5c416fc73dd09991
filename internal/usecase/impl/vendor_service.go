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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	vendorRepo repository.VendorRepository
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// VendorServiceParams holds dependencies for vendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	VendorRepo repository.VendorRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewVendorService is the constructor for vendorService.
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	return &vendorService{
		vendorRepo: params.VendorRepo,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProfile opens a draft profile for the calling vendor.
func (srv *vendorService) CreateProfile(ctx context.Context, identity *entity.User, input *usecase.CreateVendorInput) (*entity.VendorProfile, error) {
	if err := policy.Authorize(identity, policy.OpVendorCreate, policy.Resource{}); err != nil {
		return nil, err
	}

	if !input.Category.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown vendor category")
	}

	profile := &entity.VendorProfile{
		UserID:              identity.ID,
		BusinessName:        input.BusinessName,
		Category:            input.Category,
		State:               entity.StateDraft,
		Balance:             decimal.Zero,
		PayoutAccountNumber: input.PayoutAccountNumber,
		PayoutBankName:      input.PayoutBankName,
	}

	if err := srv.vendorRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Vendor profile created",
		slog.Any("profileID", profile.ID),
		slog.Any("userID", identity.ID),
	)

	return profile, nil
}

// GetOwnProfile returns the caller's profile in any state.
func (srv *vendorService) GetOwnProfile(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error) {
	profile, err := srv.findOwnProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(identity, policy.OpVendorRead, ownerResource(profile)); err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateOwnProfile modifies the caller's profile while it is editable.
// Approval freezes the profile; an approved vendor must go through staff.
func (srv *vendorService) UpdateOwnProfile(ctx context.Context, identity *entity.User, input *usecase.UpdateVendorInput) (*entity.VendorProfile, error) {
	profile, err := srv.findOwnProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(identity, policy.OpVendorUpdate, ownerResource(profile)); err != nil {
		return nil, err
	}

	if !profile.State.Editable() {
		return nil, domainerrors.ErrProfileLocked
	}

	if !input.Category.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown vendor category")
	}

	profile.BusinessName = input.BusinessName
	profile.Category = input.Category
	profile.PayoutAccountNumber = input.PayoutAccountNumber
	profile.PayoutBankName = input.PayoutBankName

	if err := srv.vendorRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Vendor profile updated", slog.Any("profileID", profile.ID))

	return profile, nil
}

// Submit moves the caller's draft profile to pending review.
func (srv *vendorService) Submit(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error) {
	return srv.ownerTransition(ctx, identity, entity.ActionSubmit, policy.OpVendorSubmit)
}

// Reopen returns the caller's rejected profile to draft for another attempt.
func (srv *vendorService) Reopen(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error) {
	return srv.ownerTransition(ctx, identity, entity.ActionReopen, policy.OpVendorReopen)
}

// ownerTransition runs an owner-initiated state machine action. The state
// change is a conditional update keyed on the expected source state, so a
// concurrent staff decision cannot be overwritten.
func (srv *vendorService) ownerTransition(ctx context.Context, identity *entity.User, action entity.TransitionAction, op policy.Operation) (*entity.VendorProfile, error) {
	profile, err := srv.findOwnProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(identity, op, ownerResource(profile)); err != nil {
		return nil, err
	}

	next, ok := action.Next(profile.State)
	if !ok {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			"cannot " + string(action) + " a profile in state " + profile.State.String())
	}

	if err := srv.vendorRepo.UpdateState(ctx, profile.ID, profile.State, next, nil, nil); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, domainerrors.ErrInvalidTransition
		}

		return nil, err
	}

	srv.log(ctx).Info("Vendor profile transitioned",
		slog.Any("profileID", profile.ID),
		slog.String("action", string(action)),
		slog.String("from", profile.State.String()),
		slog.String("to", next.String()),
	)

	profile.State = next

	return profile, nil
}

// AddDocument attaches a verification document while the profile is editable.
func (srv *vendorService) AddDocument(ctx context.Context, identity *entity.User, input *usecase.AddDocumentInput) (*entity.VerificationDocument, error) {
	profile, err := srv.editableOwnProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	doc := &entity.VerificationDocument{
		VendorProfileID: profile.ID,
		Title:           input.Title,
		Reference:       input.Reference,
	}

	if err := srv.vendorRepo.AddDocument(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// RemoveDocument detaches a verification document while the profile is editable.
func (srv *vendorService) RemoveDocument(ctx context.Context, identity *entity.User, docID uuid.UUID) error {
	profile, err := srv.editableOwnProfile(ctx, identity)
	if err != nil {
		return err
	}

	if err := srv.vendorRepo.DeleteDocument(ctx, profile.ID, docID); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return domainerrors.ErrNotFound.WithDetails("verification document not found")
		}

		return err
	}

	return nil
}

// AddLocation attaches a business location while the profile is editable.
func (srv *vendorService) AddLocation(ctx context.Context, identity *entity.User, input *usecase.AddLocationInput) (*entity.BusinessLocation, error) {
	profile, err := srv.editableOwnProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	loc := &entity.BusinessLocation{
		VendorProfileID: profile.ID,
		Label:           input.Label,
		Address:         input.Address,
	}

	if err := srv.vendorRepo.AddLocation(ctx, loc); err != nil {
		return nil, err
	}

	return loc, nil
}

// RemoveLocation detaches a business location while the profile is editable.
func (srv *vendorService) RemoveLocation(ctx context.Context, identity *entity.User, locID uuid.UUID) error {
	profile, err := srv.editableOwnProfile(ctx, identity)
	if err != nil {
		return err
	}

	if err := srv.vendorRepo.DeleteLocation(ctx, profile.ID, locID); err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return domainerrors.ErrNotFound.WithDetails("business location not found")
		}

		return err
	}

	return nil
}

// ListPublic returns the customer-facing view of all approved vendors.
func (srv *vendorService) ListPublic(ctx context.Context, identity *entity.User) ([]*usecase.PublicVendor, error) {
	if identity == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	approved := entity.StateApproved
	profiles, err := srv.vendorRepo.List(ctx, repository.VendorListFilter{State: &approved})
	if err != nil {
		return nil, err
	}

	public := make([]*usecase.PublicVendor, 0, len(profiles))
	for _, p := range profiles {
		public = append(public, toPublicVendor(p))
	}

	return public, nil
}

// GetPublic returns the customer-facing view of one approved vendor.
func (srv *vendorService) GetPublic(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*usecase.PublicVendor, error) {
	if identity == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	profile, err := srv.vendorRepo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}

	if err := policy.Authorize(identity, policy.OpVendorPublicRead, policy.Resource{VendorState: profile.State}); err != nil {
		return nil, err
	}

	return toPublicVendor(profile), nil
}

// AdminList returns full profiles matching the filter. Staff only.
func (srv *vendorService) AdminList(ctx context.Context, identity *entity.User, input *usecase.AdminListInput) ([]*entity.VendorProfile, error) {
	if err := policy.Authorize(identity, policy.OpVendorAdminRead, policy.Resource{}); err != nil {
		return nil, err
	}

	filter := repository.VendorListFilter{}
	if input != nil && input.State != nil {
		if !input.State.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown verification state")
		}
		filter.State = input.State
	}

	return srv.vendorRepo.List(ctx, filter)
}

// AdminGet returns one full profile in any state. Staff only.
func (srv *vendorService) AdminGet(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*entity.VendorProfile, error) {
	if err := policy.Authorize(identity, policy.OpVendorAdminRead, policy.Resource{}); err != nil {
		return nil, err
	}

	profile, err := srv.vendorRepo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}

	return profile, nil
}

// AdminUpdate modifies a profile's business fields regardless of its state.
// Staff is the escape hatch for approved profiles, which their owners can no
// longer edit.
func (srv *vendorService) AdminUpdate(ctx context.Context, identity *entity.User, profileID uuid.UUID, input *usecase.UpdateVendorInput) (*entity.VendorProfile, error) {
	if err := policy.Authorize(identity, policy.OpVendorAdminUpdate, policy.Resource{}); err != nil {
		return nil, err
	}

	if !input.Category.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown vendor category")
	}

	profile, err := srv.vendorRepo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}

	profile.BusinessName = input.BusinessName
	profile.Category = input.Category
	profile.PayoutAccountNumber = input.PayoutAccountNumber
	profile.PayoutBankName = input.PayoutBankName

	if err := srv.vendorRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Vendor profile updated by staff",
		slog.Any("profileID", profile.ID),
		slog.Any("staffID", identity.ID),
	)

	return profile, nil
}

// Approve moves a pending profile to approved and records the decision.
func (srv *vendorService) Approve(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*entity.VendorProfile, error) {
	return srv.staffDecision(ctx, identity, profileID, entity.ActionApprove, policy.OpVendorApprove, service.EventVendorApproved)
}

// Reject moves a pending profile to rejected and records the decision.
func (srv *vendorService) Reject(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*entity.VendorProfile, error) {
	return srv.staffDecision(ctx, identity, profileID, entity.ActionReject, policy.OpVendorReject, service.EventVendorRejected)
}

// staffDecision runs a staff review transition and publishes the outcome.
// The conditional update guarantees a profile is decided at most once even
// when two staff members race on the same submission.
func (srv *vendorService) staffDecision(ctx context.Context, identity *entity.User, profileID uuid.UUID, action entity.TransitionAction, op policy.Operation, eventType string) (*entity.VendorProfile, error) {
	if err := policy.Authorize(identity, op, policy.Resource{}); err != nil {
		return nil, err
	}

	profile, err := srv.vendorRepo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}

	next, ok := action.Next(profile.State)
	if !ok {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(
			"cannot " + string(action) + " a profile in state " + profile.State.String())
	}

	reviewedBy := identity.ID
	var approvedAt *time.Time
	if next == entity.StateApproved {
		now := time.Now().UTC()
		approvedAt = &now
	}

	if err := srv.vendorRepo.UpdateState(ctx, profile.ID, profile.State, next, &reviewedBy, approvedAt); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, domainerrors.ErrInvalidTransition
		}

		return nil, err
	}

	srv.log(ctx).Info("Vendor review decision recorded",
		slog.Any("profileID", profile.ID),
		slog.String("action", string(action)),
		slog.Any("reviewedBy", reviewedBy),
	)

	profile.State = next
	profile.ReviewedBy = &reviewedBy
	profile.ApprovedAt = approvedAt

	srv.publishEvent(ctx, eventType, profile, nil)

	return profile, nil
}

// Credit adds settled funds to a vendor's balance. Staff only.
func (srv *vendorService) Credit(ctx context.Context, identity *entity.User, profileID uuid.UUID, amount decimal.Decimal) (*entity.VendorProfile, error) {
	if err := policy.Authorize(identity, policy.OpVendorCredit, policy.Resource{}); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, domainerrors.ErrInvalidAmount
	}

	if err := srv.vendorRepo.CreditBalance(ctx, profileID, amount); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, err
	}

	profile, err := srv.vendorRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload vendor profile after credit")
	}

	srv.log(ctx).Info("Vendor balance credited",
		slog.Any("profileID", profileID),
		slog.String("amount", amount.String()),
		slog.String("balance", profile.Balance.String()),
	)

	return profile, nil
}

// --- helpers ---

// findOwnProfile loads the caller's profile. A caller without the vendor
// role or without a profile gets the same not found answer.
func (srv *vendorService) findOwnProfile(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error) {
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

	return profile, nil
}

// editableOwnProfile loads the caller's profile and checks both the update
// permission and the editable state gate.
func (srv *vendorService) editableOwnProfile(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error) {
	profile, err := srv.findOwnProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(identity, policy.OpVendorUpdate, ownerResource(profile)); err != nil {
		return nil, err
	}

	if !profile.State.Editable() {
		return nil, domainerrors.ErrProfileLocked
	}

	return profile, nil
}

// publishEvent emits a vendor event. Publishing failures are logged and
// swallowed: the state change already committed and the consumer side is
// expected to reconcile from the store.
func (srv *vendorService) publishEvent(ctx context.Context, eventType string, profile *entity.VendorProfile, payout *entity.PayoutRequest) {
	event := &service.VendorEvent{
		RequestID:       deliverycontext.GetRequestIDFromContext(ctx),
		Type:            eventType,
		VendorProfileID: profile.ID.String(),
		BusinessName:    profile.BusinessName,
	}
	if payout != nil {
		event.PayoutRequestID = payout.ID.String()
		event.Amount = payout.Amount.String()
		event.Balance = profile.Balance.String()
	}

	if err := srv.publisher.PublishVendorEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish vendor event",
			slog.String("type", eventType),
			slog.Any("profileID", profile.ID),
			slog.Any("error", err),
		)
	}
}

func ownerResource(profile *entity.VendorProfile) policy.Resource {
	return policy.Resource{
		OwnerID:     profile.UserID.String(),
		VendorState: profile.State,
	}
}

func toPublicVendor(p *entity.VendorProfile) *usecase.PublicVendor {
	return &usecase.PublicVendor{
		ID:           p.ID,
		BusinessName: p.BusinessName,
		Category:     p.Category,
		Locations:    p.Locations,
	}
}
