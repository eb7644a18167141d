// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and access management layer.

It defines the account entity and the logic for registration, email
verification, password recovery, two-factor authentication, and social
sign-in.

# Architecture

This layer is the "Truth" of the system. The account row is the single
credential store: verification and reset tokens live on the row itself and
are consumed by conditional updates, so a token can only ever be redeemed
once regardless of how many requests race for it.
*/
package auth

import (
	"time"

	"github.com/taibuivan/kaminari/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Kaminari platform.
//
// PasswordHash is a pointer because social-only accounts have no password;
// such accounts can never authenticate through the password login path.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash *string      `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	Credits      int          `json:"credits"`
	IsVerified   bool         `json:"is_verified"`

	// Single-use email verification token, valid until VerificationExpires.
	VerificationToken   *string    `json:"-"`
	VerificationExpires *time.Time `json:"-"`

	// Single-use password reset token, valid until ResetExpires.
	ResetToken   *string    `json:"-"`
	ResetExpires *time.Time `json:"-"`

	// Base32 TOTP secret. Present but unconfirmed until TwoFactorEnabled.
	TwoFactorSecret  *string `json:"-"`
	TwoFactorEnabled bool    `json:"two_factor_enabled"`

	// Linked social identities.
	GoogleID   *string `json:"-"`
	FacebookID *string `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HasPassword reports whether the account can use the password login path.
func (user *User) HasPassword() bool {
	return user.PasswordHash != nil && *user.PasswordHash != ""
}

// PublicUser is the projection of an account that is safe to return to clients.
type PublicUser struct {
	ID       string       `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Role     sec.UserRole `json:"role"`
	Credits  int          `json:"credits"`
}

// Public returns the client-safe projection of the account.
func (user *User) Public() PublicUser {
	return PublicUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Credits:  user.Credits,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
	FieldCode     = "code"
	FieldUserID   = "user_id"
	FieldMessage  = "message"
)
