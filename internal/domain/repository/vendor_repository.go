// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"purposepay/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for vendor persistence.
var (
	// ErrVendorNotFound is returned when a vendor profile cannot be located.
	ErrVendorNotFound = errors.New("vendor profile not found")
	// ErrDocumentNotFound is returned when a verification document cannot be located.
	ErrDocumentNotFound = errors.New("verification document not found")
	// ErrLocationNotFound is returned when a business location cannot be located.
	ErrLocationNotFound = errors.New("business location not found")
	// ErrStateConflict is returned when a conditional state update matched no
	// row because the profile was not in the expected state.
	ErrStateConflict = errors.New("vendor profile state precondition failed")
	// ErrBalanceConflict is returned when a conditional balance decrement
	// matched no row: the profile was not approved or the balance was short.
	ErrBalanceConflict = errors.New("vendor balance precondition failed")
)

// VendorListFilter narrows vendor listings.
type VendorListFilter struct {
	// State restricts the listing to profiles in one verification state.
	State *entity.VerificationState
}

// VendorRepository defines the operations for vendor profile persistence.
// State and balance are never written directly: both go through conditional
// update primitives so concurrent requests against the same profile are
// serialized by the database row, while different vendors proceed in parallel.
type VendorRepository interface {
	// Create persists a new vendor profile.
	Create(ctx context.Context, profile *entity.VendorProfile) error

	// FindByID retrieves a vendor profile by its ID, with documents and locations.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorProfile, error)

	// FindByUserID retrieves the vendor profile owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorProfile, error)

	// Update modifies the mutable business fields of a profile. It does not
	// touch state or balance.
	Update(ctx context.Context, profile *entity.VendorProfile) error

	// List returns vendor profiles matching the filter, newest first.
	List(ctx context.Context, filter VendorListFilter) ([]*entity.VendorProfile, error)

	// UpdateState performs the conditional transition "set state = to where
	// state = from". Returns ErrStateConflict when no row matched, which the
	// caller reports as an invalid transition. reviewedBy and approvedAt are
	// recorded for staff decisions.
	UpdateState(ctx context.Context, id uuid.UUID, from, to entity.VerificationState, reviewedBy *uuid.UUID, approvedAt *time.Time) error

	// DecrementBalance performs the conditional update "balance = balance -
	// amount where state = approved and balance >= amount". Returns
	// ErrBalanceConflict when no row matched; the caller re-reads the profile
	// to tell an unapproved vendor from an insufficient balance.
	DecrementBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	// CreditBalance adds funds to a vendor's balance. Used by the settlement
	// side of the house; payouts never call it.
	CreditBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	// AddDocument attaches a verification document to a profile.
	AddDocument(ctx context.Context, doc *entity.VerificationDocument) error

	// DeleteDocument removes a verification document from a profile.
	DeleteDocument(ctx context.Context, profileID, docID uuid.UUID) error

	// AddLocation attaches a business location to a profile.
	AddLocation(ctx context.Context, loc *entity.BusinessLocation) error

	// DeleteLocation removes a business location from a profile.
	DeleteLocation(ctx context.Context, profileID, locID uuid.UUID) error
}
