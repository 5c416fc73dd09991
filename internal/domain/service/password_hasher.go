// Package service defines interfaces for domain services that require
// infrastructure support, such as hashing and token generation.
package service

// PasswordHasher defines the interface for password hashing operations.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool
}
