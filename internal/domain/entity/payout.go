// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutStatus is the decision state of a payout request.
type PayoutStatus string

const (
	// PayoutSubmitted means the request was created but not yet decided.
	PayoutSubmitted PayoutStatus = "submitted"
	// PayoutAccepted means the request settled and the amount left the balance.
	PayoutAccepted PayoutStatus = "accepted"
	// PayoutDeclined means the request was refused; the balance is untouched.
	PayoutDeclined PayoutStatus = "declined"
)

// String returns the string representation of the status.
func (s PayoutStatus) String() string {
	return string(s)
}

// PayoutRequest is a vendor's request to withdraw funds from their balance.
// A request is immutable once decided.
type PayoutRequest struct {
	ID              uuid.UUID       // The unique identifier of the request.
	VendorProfileID uuid.UUID       // The vendor profile the funds are drawn from.
	Amount          decimal.Decimal // Requested amount. Always positive.
	Status          PayoutStatus    // Decision state.
	CreatedAt       time.Time       // When the vendor created the request.
	DecidedAt       *time.Time      // When the request was accepted or declined.
}
