// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"purposepay/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPayoutNotFound is returned when a payout request cannot be located.
var ErrPayoutNotFound = errors.New("payout request not found")

// PayoutRepository defines the operations for payout request persistence.
// Requests are append-only: once decided they are never modified.
type PayoutRepository interface {
	// Create persists a new payout request.
	Create(ctx context.Context, payout *entity.PayoutRequest) error

	// FindByID retrieves a payout request by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutRequest, error)

	// FindByVendorProfileID lists a vendor's payout requests, newest first.
	FindByVendorProfileID(ctx context.Context, profileID uuid.UUID) ([]*entity.PayoutRequest, error)
}
