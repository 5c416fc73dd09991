// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"purposepay/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session matches the given token hash.
var ErrSessionNotFound = errors.New("session token not found")

// SessionRepository persists the single live session token of each user.
type SessionRepository interface {
	// Replace stores the session token for its user, superseding any prior
	// token for the same user in one atomic write. Concurrent logins for the
	// same user race, but exactly one token survives.
	Replace(ctx context.Context, token *entity.SessionToken) error

	// FindByTokenHash resolves a stored session by the hash of its raw token.
	FindByTokenHash(ctx context.Context, hash string) (*entity.SessionToken, error)

	// DeleteByUserID revokes the user's current session. Deleting when no
	// session exists is a no-op, not an error.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
