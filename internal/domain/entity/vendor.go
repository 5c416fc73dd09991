// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VerificationState is the lifecycle stage of a vendor profile.
type VerificationState string

const (
	// StateDraft is the initial state: the owner is still assembling the profile.
	StateDraft VerificationState = "draft"
	// StatePending means the profile has been submitted and awaits staff review.
	StatePending VerificationState = "pending"
	// StateApproved means staff verified the vendor; payouts become possible.
	StateApproved VerificationState = "approved"
	// StateRejected means staff declined the vendor; the owner may reopen to draft.
	StateRejected VerificationState = "rejected"
)

// String returns the string representation of the state.
func (s VerificationState) String() string {
	return string(s)
}

// IsValid checks if the state is a known value.
func (s VerificationState) IsValid() bool {
	switch s {
	case StateDraft, StatePending, StateApproved, StateRejected:
		return true
	default:
		return false
	}
}

// Editable reports whether profile fields, documents and locations may be
// mutated by the owner in this state. Approval freezes the profile so a
// verification decision cannot be silently invalidated.
func (s VerificationState) Editable() bool {
	return s == StateDraft || s == StatePending
}

// TransitionAction names a state machine transition on a vendor profile.
type TransitionAction string

const (
	// ActionSubmit moves draft to pending. Owner only.
	ActionSubmit TransitionAction = "submit"
	// ActionApprove moves pending to approved. Staff only.
	ActionApprove TransitionAction = "approve"
	// ActionReject moves pending to rejected. Staff only.
	ActionReject TransitionAction = "reject"
	// ActionReopen moves rejected back to draft. Owner only.
	ActionReopen TransitionAction = "reopen"
)

// transitionTable is the complete verification state machine.
// Each action is legal from exactly one state.
var transitionTable = map[TransitionAction]struct {
	From VerificationState
	To   VerificationState
}{
	ActionSubmit:  {From: StateDraft, To: StatePending},
	ActionApprove: {From: StatePending, To: StateApproved},
	ActionReject:  {From: StatePending, To: StateRejected},
	ActionReopen:  {From: StateRejected, To: StateDraft},
}

// Next resolves the target state for an action against the current state.
// It returns false when the action is not legal from the current state.
func (a TransitionAction) Next(current VerificationState) (VerificationState, bool) {
	t, ok := transitionTable[a]
	if !ok || t.From != current {
		return current, false
	}

	return t.To, true
}

// VendorCategory classifies the vendor's line of business.
type VendorCategory string

const (
	// CategoryPharmacy is a pharmacy vendor.
	CategoryPharmacy VendorCategory = "pharmacy"
	// CategorySchool is a school vendor.
	CategorySchool VendorCategory = "school"
	// CategoryHardware is a hardware store vendor.
	CategoryHardware VendorCategory = "hardware"
	// CategoryOther is any other vendor type.
	CategoryOther VendorCategory = "other"
)

// IsValid checks if the category is a known value.
func (c VendorCategory) IsValid() bool {
	switch c {
	case CategoryPharmacy, CategorySchool, CategoryHardware, CategoryOther:
		return true
	default:
		return false
	}
}

// VendorProfile is a vendor's business record, owned by exactly one user
// carrying the vendor role. Its balance is only ever mutated through the
// payout ledger's conditional update primitives, never by direct writes.
type VendorProfile struct {
	ID                  uuid.UUID              // The unique identifier of the profile.
	UserID              uuid.UUID              // The owning user. One profile per user.
	BusinessName        string                 // Official business name, unique across vendors.
	Category            VendorCategory         // Line of business.
	State               VerificationState      // Current verification lifecycle stage.
	Balance             decimal.Decimal        // Available funds. Never negative.
	PayoutAccountNumber string                 // Account number used for payout disbursement.
	PayoutBankName      string                 // Bank used for payout disbursement.
	ApprovedAt          *time.Time             // When staff approved the profile, if ever.
	ReviewedBy          *uuid.UUID             // Staff user who made the last review decision.
	Documents           []VerificationDocument // Supporting documents, mutable while editable.
	Locations           []BusinessLocation     // Business locations, mutable while editable.
	CreatedAt           time.Time              // Timestamp of profile creation.
	UpdatedAt           time.Time              // Timestamp of the last modification.
}

// VerificationDocument is a supporting document attached to a vendor profile.
// The document payload itself lives in external storage; only the reference
// is kept here.
type VerificationDocument struct {
	ID              uuid.UUID // The unique identifier of the document record.
	VendorProfileID uuid.UUID // The owning vendor profile.
	Title           string    // Human-readable document title.
	Reference       string    // Pointer into the external document store.
	CreatedAt       time.Time // Timestamp of when the document was attached.
}

// BusinessLocation is a physical location of a vendor's business.
type BusinessLocation struct {
	ID              uuid.UUID // The unique identifier of the location record.
	VendorProfileID uuid.UUID // The owning vendor profile.
	Label           string    // Short display label, e.g. "Main branch".
	Address         string    // Full street address.
	CreatedAt       time.Time // Timestamp of when the location was added.
}
