// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken represents the single live bearer credential of a user.
// The system keeps at most one live token per user: issuing a new token
// always supersedes the previous one, and a revoked token must never
// resolve again. Only a SHA-256 hash of the raw opaque token is stored.
type SessionToken struct {
	UserID    uuid.UUID // The owning user. Unique: one live token per user.
	TokenHash string    // SHA-256 hex digest of the raw opaque token.
	IssuedAt  time.Time // When this token was issued.
}
