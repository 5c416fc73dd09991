// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents a capability a user account carries in the system.
type Role string

const (
	// RoleCustomer indicates a regular customer account that can spend funds.
	RoleCustomer Role = "customer"
	// RoleVendor indicates an account that may own a vendor profile.
	RoleVendor Role = "vendor"
	// RoleStaff indicates an administrative account that reviews vendors.
	RoleStaff Role = "staff"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleStaff:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// With returns the role set including role. Adding a role the set already
// carries returns it unchanged.
func (rs Roles) With(role Role) Roles {
	if rs.Contains(role) {
		return rs
	}

	return append(slices.Clone(rs), role)
}

// Without returns the role set excluding role.
func (rs Roles) Without(role Role) Roles {
	result := make(Roles, 0, len(rs))
	for _, r := range rs {
		if r != role {
			result = append(result, r)
		}
	}

	return result
}

// ToStrings converts Roles to []string for persistence compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
