// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"purposepay/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	// Vendor requests the vendor role at registration. The customer role
	// is always granted; staff is never self-assignable.
	Vendor bool
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateAccountInput defines the mutable account fields. Email left empty
// keeps the current address. Vendor left nil keeps the current role set;
// the staff role is never reachable from here.
type UpdateAccountInput struct {
	Name   string
	Email  string
	Vendor *bool
}

// --- Output DTOs ---

// AuthOutput returns the account and its freshly issued session token.
// Token is the raw opaque token; it is shown to the caller exactly once
// and only its hash is ever stored.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// AccountUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Register creates a new account and issues its first session token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies credentials and replaces the account's live session
	// token. Any previously issued token stops resolving.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Authenticate resolves a raw opaque token to the account it belongs
	// to. Unknown or revoked tokens yield ErrUnauthenticated.
	Authenticate(ctx context.Context, rawToken string) (*entity.User, error)

	// Logout revokes the caller's live session token. Idempotent.
	Logout(ctx context.Context, identity *entity.User) error

	// GetAccount returns the caller's own account.
	GetAccount(ctx context.Context, identity *entity.User) (*entity.User, error)

	// UpdateAccount modifies the caller's own account.
	UpdateAccount(ctx context.Context, identity *entity.User, input *UpdateAccountInput) (*entity.User, error)
}
