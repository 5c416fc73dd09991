package usecase

import (
	"context"

	"purposepay/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// CreateVendorInput defines the data required to open a vendor profile.
type CreateVendorInput struct {
	BusinessName        string
	Category            entity.VendorCategory
	PayoutAccountNumber string
	PayoutBankName      string
}

// UpdateVendorInput defines the mutable business fields of a profile.
type UpdateVendorInput struct {
	BusinessName        string
	Category            entity.VendorCategory
	PayoutAccountNumber string
	PayoutBankName      string
}

// AddDocumentInput defines the data for attaching a verification document.
type AddDocumentInput struct {
	Title     string
	Reference string
}

// AddLocationInput defines the data for attaching a business location.
type AddLocationInput struct {
	Label   string
	Address string
}

// AdminListInput narrows the staff vendor listing.
type AdminListInput struct {
	State *entity.VerificationState
}

// --- Output DTOs ---

// PublicVendor is the customer-facing projection of an approved profile.
// Balance, payout details and review metadata never leave the admin surface.
type PublicVendor struct {
	ID           uuid.UUID
	BusinessName string
	Category     entity.VendorCategory
	Locations    []entity.BusinessLocation
}

// VendorUsecase defines the interface for vendor lifecycle operations.
type VendorUsecase interface {
	// CreateProfile opens a draft profile for the calling vendor.
	CreateProfile(ctx context.Context, identity *entity.User, input *CreateVendorInput) (*entity.VendorProfile, error)

	// GetOwnProfile returns the caller's profile in any state.
	GetOwnProfile(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error)

	// UpdateOwnProfile modifies the caller's profile while it is editable.
	UpdateOwnProfile(ctx context.Context, identity *entity.User, input *UpdateVendorInput) (*entity.VendorProfile, error)

	// Submit moves the caller's draft profile to pending review.
	Submit(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error)

	// Reopen returns the caller's rejected profile to draft.
	Reopen(ctx context.Context, identity *entity.User) (*entity.VendorProfile, error)

	// AddDocument attaches a verification document while the profile is editable.
	AddDocument(ctx context.Context, identity *entity.User, input *AddDocumentInput) (*entity.VerificationDocument, error)

	// RemoveDocument detaches a verification document while the profile is editable.
	RemoveDocument(ctx context.Context, identity *entity.User, docID uuid.UUID) error

	// AddLocation attaches a business location while the profile is editable.
	AddLocation(ctx context.Context, identity *entity.User, input *AddLocationInput) (*entity.BusinessLocation, error)

	// RemoveLocation detaches a business location while the profile is editable.
	RemoveLocation(ctx context.Context, identity *entity.User, locID uuid.UUID) error

	// ListPublic returns the customer-facing view of all approved vendors.
	ListPublic(ctx context.Context, identity *entity.User) ([]*PublicVendor, error)

	// GetPublic returns the customer-facing view of one approved vendor.
	// Profiles in any other state report not found.
	GetPublic(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*PublicVendor, error)

	// AdminList returns full profiles matching the filter. Staff only.
	AdminList(ctx context.Context, identity *entity.User, input *AdminListInput) ([]*entity.VendorProfile, error)

	// AdminGet returns one full profile in any state. Staff only.
	AdminGet(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*entity.VendorProfile, error)

	// AdminUpdate modifies a profile's business fields regardless of its
	// state. Staff only.
	AdminUpdate(ctx context.Context, identity *entity.User, profileID uuid.UUID, input *UpdateVendorInput) (*entity.VendorProfile, error)

	// Approve moves a pending profile to approved and records the decision. Staff only.
	Approve(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*entity.VendorProfile, error)

	// Reject moves a pending profile to rejected and records the decision. Staff only.
	Reject(ctx context.Context, identity *entity.User, profileID uuid.UUID) (*entity.VendorProfile, error)

	// Credit adds settled funds to a vendor's balance. Staff only.
	Credit(ctx context.Context, identity *entity.User, profileID uuid.UUID, amount decimal.Decimal) (*entity.VendorProfile, error)
}
