// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account exposes the authenticated user's own profile.

It backs the front end's session check: on every page load the browser asks
"who am I right now" and renders the header (username, credits, staff menu)
from the answer.

# Architecture

  - Domain: depends on the auth package for the account entity.
  - Security: every endpoint requires an authenticated session.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/kaminari/internal/users/auth"
)

// # Domain Entities

// Profile is the private self-view of an account. Richer than the public
// projection (it includes security posture) but still free of secrets.
type Profile struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	Credits          int        `json:"credits"`
	TwoFactorEnabled bool       `json:"two_factor_enabled"`
	HasPassword      bool       `json:"has_password"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// # Repository Contracts

// AccountRepository defines the persistence contract for profile lookups.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)
}
