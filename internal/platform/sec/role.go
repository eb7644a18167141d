// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization label granted to an account.
//
// # Design
//
// Roles are a closed set compared by membership, not by hierarchy.
// A route declares the exact roles it accepts; there is no implicit
// "admin can do everything" inheritance.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "Admin"

	// Can manage the catalogue and staff-facing dashboard content
	RoleManager UserRole = "Manager"

	// Can upload and manage their own publications
	RoleArtist UserRole = "Artist"

	// Default role for standard registered users
	RoleUser UserRole = "User"
)

// AllRoles is the closed set of valid role labels.
var AllRoles = []UserRole{RoleAdmin, RoleManager, RoleArtist, RoleUser}

// ParseRole maps a stored string onto the closed role set.
//
// Unknown labels degrade to [RoleUser] so that a corrupted row can never
// grant elevated access.
func ParseRole(value string) UserRole {
	for _, role := range AllRoles {
		if string(role) == value {
			return role
		}
	}
	return RoleUser
}

// In reports whether the role is a member of the allowed set.
func (r UserRole) In(allowed ...UserRole) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}
