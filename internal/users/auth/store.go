// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Token consumption methods (ConsumeVerificationToken, ConsumeResetToken)
// must be atomic: implementations perform the expiry check and the clearing
// of the token as one conditional write, so concurrent redeemers cannot
// both succeed.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindBySocialID returns the account linked to the given provider identity.

		Parameters:
		  - context: context.Context
		  - provider: string ("google" or "facebook")
		  - providerUserID: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindBySocialID(context context.Context, provider, providerUserID string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate email/username, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		SetVerificationToken stores a fresh verification token and its expiry
		on the account row, replacing any previous one.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetVerificationToken(context context.Context, userID, token string, expiresAt time.Time) error

	/*
		ConsumeVerificationToken atomically redeems a verification token:
		the account is marked verified and the token cleared in one
		conditional update. A token that is expired, already consumed, or
		never issued consumes zero rows.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: ID of the verified account
		  - error: apperr.InvalidOrExpiredToken when no row matched
	*/
	ConsumeVerificationToken(context context.Context, token string) (string, error)

	/*
		SetResetToken stores a fresh password reset token and its expiry on
		the account row, replacing any previous one.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string
		  - expiresAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	SetResetToken(context context.Context, userID, token string, expiresAt time.Time) error

	/*
		FindByResetToken returns the account holding the given unexpired
		reset token without consuming it.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.InvalidOrExpiredToken when absent or expired
	*/
	FindByResetToken(context context.Context, token string) (*User, error)

	/*
		ConsumeResetToken atomically redeems a reset token: the new password
		hash is written and the token cleared in one conditional update.
		Exactly one of any number of racing calls can succeed.

		Parameters:
		  - context: context.Context
		  - token: string
		  - newPasswordHash: string

		Returns:
		  - string: ID of the updated account
		  - error: apperr.InvalidOrExpiredToken when no row matched
	*/
	ConsumeResetToken(context context.Context, token, newPasswordHash string) (string, error)

	/*
		RecordLogin stamps lastloginat for the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - at: time.Time

		Returns:
		  - error: Persistence failures
	*/
	RecordLogin(context context.Context, userID string, at time.Time) error

	/*
		SetTwoFactorSecret stores an unconfirmed TOTP secret on the account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - secretBase32: string

		Returns:
		  - error: Persistence failures
	*/
	SetTwoFactorSecret(context context.Context, userID, secretBase32 string) error

	/*
		EnableTwoFactor flips twofactorenabled once the secret is confirmed.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	EnableTwoFactor(context context.Context, userID string) error

	/*
		DisableTwoFactor clears both the secret and the enabled flag.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	DisableTwoFactor(context context.Context, userID string) error

	/*
		LinkSocialAccount records a provider identity on an existing account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - provider: string ("google" or "facebook")
		  - providerUserID: string

		Returns:
		  - error: Persistence failures
	*/
	LinkSocialAccount(context context.Context, userID, provider, providerUserID string) error
}

// # Brute-Force Throttle

// ThrottleRepository counts failed login attempts inside a sliding window.
type ThrottleRepository interface {

	/*
		Hit increments the failure counter for the key, starting the window
		on the first hit.

		Parameters:
		  - context: context.Context
		  - key: string (email+IP pair)
		  - window: time.Duration

		Returns:
		  - int: Attempts recorded inside the current window, including this one
		  - error: Storage failures
	*/
	Hit(context context.Context, key string, window time.Duration) (int, error)

	/*
		Reset clears the failure counter after a successful login.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Storage failures
	*/
	Reset(context context.Context, key string) error
}
