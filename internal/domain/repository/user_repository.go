// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"purposepay/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for identity persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrUserNotFound is returned when a user cannot be located.
	ErrUserNotFound = errors.New("user not found")
	// ErrCredentialNotFound is returned when a user has no stored credential.
	ErrCredentialNotFound = errors.New("credential not found")
)

// UserRepository defines the standard operations for identity persistence.
type UserRepository interface {
	// Create persists a new user account.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update modifies an existing user account.
	Update(ctx context.Context, user *entity.User) error

	// CreateCredential persists the email/password credential of a user.
	CreateCredential(ctx context.Context, cred *entity.Credential) error

	// FindCredentialByUserID retrieves the stored credential of a user.
	FindCredentialByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error)
}
