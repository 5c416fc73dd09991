// Package policy implements the access policy gate: a pure decision
// function mapping (identity, operation, resource) to allow or deny.
// It keeps no state and performs no I/O; every sensitive operation in the
// usecase layer consults it before touching the store.
package policy

import (
	"purposepay/internal/domain/entity"
	domainerrors "purposepay/internal/domain/errors"
)

// Operation names an action subject to authorization.
type Operation string

const (
	// OpAccountRead reads the caller's own account.
	OpAccountRead Operation = "account.read"
	// OpAccountUpdate updates the caller's own account.
	OpAccountUpdate Operation = "account.update"

	// OpVendorCreate creates a vendor profile for the caller.
	OpVendorCreate Operation = "vendor.create"
	// OpVendorRead reads a vendor profile in any state (owner or staff).
	OpVendorRead Operation = "vendor.read"
	// OpVendorUpdate mutates a vendor profile's business fields (owner).
	OpVendorUpdate Operation = "vendor.update"
	// OpVendorSubmit submits a draft profile for review (owner).
	OpVendorSubmit Operation = "vendor.submit"
	// OpVendorReopen returns a rejected profile to draft (owner).
	OpVendorReopen Operation = "vendor.reopen"
	// OpVendorPublicRead reads an approved profile (any authenticated identity).
	OpVendorPublicRead Operation = "vendor.public_read"

	// OpVendorApprove approves a pending profile (staff).
	OpVendorApprove Operation = "vendor.approve"
	// OpVendorReject rejects a pending profile (staff).
	OpVendorReject Operation = "vendor.reject"
	// OpVendorAdminRead reads any vendor profile (staff).
	OpVendorAdminRead Operation = "vendor.admin_read"
	// OpVendorAdminUpdate updates any vendor profile (staff).
	OpVendorAdminUpdate Operation = "vendor.admin_update"
	// OpVendorCredit credits funds to a vendor balance (staff).
	OpVendorCredit Operation = "vendor.credit"

	// OpPayoutRequest creates a payout request against an owned profile.
	OpPayoutRequest Operation = "payout.request"
	// OpPayoutList lists payout requests of a profile (owner or staff).
	OpPayoutList Operation = "payout.list"
)

// Resource carries the attributes of the target the gate decides on.
// The zero value is used for operations without a concrete target.
type Resource struct {
	OwnerID     string                   // Owning user ID, empty when not applicable.
	VendorState entity.VerificationState // Verification state, empty when not applicable.
}

// staffOnly operations require the staff role regardless of ownership.
var staffOnly = map[Operation]bool{
	OpVendorApprove:     true,
	OpVendorReject:      true,
	OpVendorAdminRead:   true,
	OpVendorAdminUpdate: true,
	OpVendorCredit:      true,
}

// ownerOnly operations require the caller to own the resource. Staff does
// not get a pass here: approving your own paperwork is a different
// operation from editing it.
var ownerOnly = map[Operation]bool{
	OpVendorRead:    true,
	OpVendorUpdate:  true,
	OpVendorSubmit:  true,
	OpVendorReopen:  true,
	OpPayoutRequest: true,
}

// Authorize decides whether identity may perform op on res. A nil error
// means allow. Denials carry the domain error taxonomy: Unauthenticated
// for missing identities, Forbidden for role failures, and NotFound for
// non-owned non-public resources so their existence is not leaked.
func Authorize(identity *entity.User, op Operation, res Resource) error {
	// Registration and login never reach the gate; everything else needs
	// a resolved identity.
	if identity == nil {
		return domainerrors.ErrUnauthenticated
	}

	if staffOnly[op] {
		if !identity.IsStaff() {
			return domainerrors.ErrForbidden
		}

		return nil
	}

	switch op {
	case OpAccountRead, OpAccountUpdate:
		if res.OwnerID != "" && res.OwnerID != identity.ID.String() {
			return domainerrors.ErrForbidden
		}

		return nil

	case OpVendorCreate:
		if !identity.IsVendor() {
			return domainerrors.ErrForbidden
		}

		return nil

	case OpVendorPublicRead:
		if res.VendorState != entity.StateApproved {
			return domainerrors.ErrNotFound
		}

		return nil

	case OpPayoutList:
		if identity.IsStaff() || res.OwnerID == identity.ID.String() {
			return nil
		}

		return domainerrors.ErrNotFound
	}

	if ownerOnly[op] {
		if res.OwnerID != identity.ID.String() {
			// An approved profile is publicly visible, so reads of it may
			// honestly report Forbidden. Anything else stays invisible.
			if op == OpVendorRead && res.VendorState == entity.StateApproved {
				return domainerrors.ErrForbidden
			}

			return domainerrors.ErrNotFound
		}

		return nil
	}

	return domainerrors.ErrForbidden
}
