// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// CurrentUser is the request-scoped identity attached by the
// authentication middleware after the bearer token has been verified AND
// the backing account row has been confirmed to exist and be verified.
//
// # Scope
//
// This is a public projection: it never carries the password hash, the
// single-use tokens, or the two-factor secret.
type CurrentUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Credits  int      `json:"credits"`
}
