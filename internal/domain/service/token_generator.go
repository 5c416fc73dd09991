// Package service defines interfaces for domain services that require
// infrastructure support.
package service

// SessionTokenGenerator produces the opaque bearer credentials used as
// session tokens. The raw token is returned to the caller exactly once;
// only its hash is ever persisted.
type SessionTokenGenerator interface {
	// Generate returns a new cryptographically random raw token and the
	// hash under which it is stored.
	Generate() (raw string, hash string, err error)

	// HashToken computes the storage hash of a raw token presented by a
	// caller, for lookup against the persisted session.
	HashToken(raw string) string
}
