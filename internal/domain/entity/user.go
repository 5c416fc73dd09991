// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a registered account.
// Capabilities are carried as an explicit role set rather than loose boolean
// flags, so an account can never end up with an undefined combination.
type User struct {
	ID        uuid.UUID // The unique identifier for the user.
	Email     string    // The user's login identifier, unique across the system.
	Name      string    // The user's display name.
	Roles     Roles     // The capability set assigned to this account.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}

// IsVendor reports whether the account may own a vendor profile.
func (u *User) IsVendor() bool {
	return u.Roles.Contains(RoleVendor)
}

// IsStaff reports whether the account carries administrative capabilities.
func (u *User) IsStaff() bool {
	return u.Roles.Contains(RoleStaff)
}

// Credential is the email/password login method attached to a User.
// It is stored separately from the identity so the password hash never
// travels with the user entity.
type Credential struct {
	UserID       uuid.UUID // Links this credential to the User it belongs to.
	PasswordHash string    // The bcrypt hash of the user's password.
	CreatedAt    time.Time // Timestamp of when this credential was set.
}
