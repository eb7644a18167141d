// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the auth storage contracts.
//
// # Architecture
//
// The repository is strictly separated from domain logic. It implements the
// domain-defined [UserRepository] interface using the [pgxpool.Pool]
// connection manager.
//
// # Token Consumption
//
// Single-use tokens are redeemed with conditional UPDATE statements whose
// WHERE clause carries both the token equality and the expiry check. The
// row count tells us whether this caller won; there is no read-then-write
// window for a concurrent redeemer to slip through.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/dberr"
)

// # User Repository

// accountColumns is the canonical select list for hydrating a [User].
const accountColumns = `
	id, username, email, passwordhash, role, credits, isverified,
	verificationtoken, verificationexpires, resettoken, resetexpires,
	twofactorsecret, twofactorenabled, googleid, facebookid,
	lastloginat, createdat, updatedat`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// scanUser hydrates a full account entity from a row using accountColumns order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Credits,
		&user.IsVerified,
		&user.VerificationToken,
		&user.VerificationExpires,
		&user.ResetToken,
		&user.ResetExpires,
		&user.TwoFactorSecret,
		&user.TwoFactorEnabled,
		&user.GoogleID,
		&user.FacebookID,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists the account, relying on the unique indexes on
email and username to reject duplicates atomically.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate identity, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, role, credits, isverified,
			verificationtoken, verificationexpires,
			twofactorenabled, googleid, facebookid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Credits,
		user.IsVerified,
		user.VerificationToken,
		user.VerificationExpires,
		user.TwoFactorEnabled,
		user.GoogleID,
		user.FacebookID,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err, "uq_account_email") {
			return apperr.Conflict("Email is already registered")
		}
		if dberr.IsUniqueViolation(err, "uq_account_username") {
			return apperr.Conflict("Username is already taken")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE email = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE username = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindBySocialID retrieves the account linked to a given provider identity.

Parameters:
  - context: context.Context
  - provider: string ("google" or "facebook")
  - providerUserID: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindBySocialID(context context.Context, provider, providerUserID string) (*User, error) {
	column, err := socialColumn(provider)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + accountColumns + ` FROM users.account WHERE ` + column + ` = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_social_failed: %w", err)
	}

	return user, nil
}

/*
SetVerificationToken stores a fresh verification token on the account row.

Parameters:
  - context: context.Context
  - userID: string
  - token: string
  - expiresAt: time.Time

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) SetVerificationToken(context context.Context, userID, token string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET verificationtoken = $2, verificationexpires = $3, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, token, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_verification_token_failed: %w", err)
	}

	return nil
}

/*
ConsumeVerificationToken atomically redeems a verification token.

Description: A single conditional UPDATE marks the account verified and
clears the token. The WHERE clause enforces both token equality and expiry,
so an expired, consumed, or never-issued token matches zero rows.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: ID of the now-verified account
  - error: apperr.InvalidOrExpiredToken when no row matched
*/
func (repository *PostgresUserRepository) ConsumeVerificationToken(context context.Context, token string) (string, error) {
	const query = `
		UPDATE users.account
		SET isverified = TRUE, verificationtoken = NULL, verificationexpires = NULL, updatedat = NOW()
		WHERE verificationtoken = $1 AND verificationexpires > NOW()
		RETURNING id`

	var userID string
	err := repository.pool.QueryRow(context, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.InvalidOrExpiredToken()
		}
		return "", fmt.Errorf("postgres_user_repo_consume_verification_token_failed: %w", err)
	}

	return userID, nil
}

/*
SetResetToken stores a fresh password reset token on the account row.

Parameters:
  - context: context.Context
  - userID: string
  - token: string
  - expiresAt: time.Time

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) SetResetToken(context context.Context, userID, token string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET resettoken = $2, resetexpires = $3, updatedat = $4
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, token, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_reset_token_failed: %w", err)
	}

	return nil
}

/*
FindByResetToken returns the account holding an unexpired reset token.

Description: Read-only existence check used by the reset-form preflight.
The token is left untouched.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.InvalidOrExpiredToken when absent or expired
*/
func (repository *PostgresUserRepository) FindByResetToken(context context.Context, token string) (*User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE resettoken = $1 AND resetexpires > NOW()`

	user, err := scanUser(repository.pool.QueryRow(context, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.InvalidOrExpiredToken()
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_reset_token_failed: %w", err)
	}

	return user, nil
}

/*
ConsumeResetToken atomically redeems a reset token.

Description: Writes the new password hash and clears the token in one
conditional UPDATE. When several requests race with the same token, the row
count guarantees exactly one winner.

Parameters:
  - context: context.Context
  - token: string
  - newPasswordHash: string

Returns:
  - string: ID of the updated account
  - error: apperr.InvalidOrExpiredToken when no row matched
*/
func (repository *PostgresUserRepository) ConsumeResetToken(context context.Context, token, newPasswordHash string) (string, error) {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, resettoken = NULL, resetexpires = NULL, updatedat = NOW()
		WHERE resettoken = $1 AND resetexpires > NOW()
		RETURNING id`

	var userID string
	err := repository.pool.QueryRow(context, query, token, newPasswordHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.InvalidOrExpiredToken()
		}
		return "", fmt.Errorf("postgres_user_repo_consume_reset_token_failed: %w", err)
	}

	return userID, nil
}

/*
RecordLogin stamps lastloginat for the account.

Parameters:
  - context: context.Context
  - userID: string
  - at: time.Time

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) RecordLogin(context context.Context, userID string, at time.Time) error {
	const query = "UPDATE users.account SET lastloginat = $2 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, at)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_record_login_failed: %w", err)
	}

	return nil
}

/*
SetTwoFactorSecret stores an unconfirmed TOTP secret on the account.

Parameters:
  - context: context.Context
  - userID: string
  - secretBase32: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) SetTwoFactorSecret(context context.Context, userID, secretBase32 string) error {
	const query = `
		UPDATE users.account
		SET twofactorsecret = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, secretBase32, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_twofactor_secret_failed: %w", err)
	}

	return nil
}

/*
EnableTwoFactor flips twofactorenabled once the secret has been confirmed.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) EnableTwoFactor(context context.Context, userID string) error {
	const query = "UPDATE users.account SET twofactorenabled = TRUE, updatedat = $2 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_enable_twofactor_failed: %w", err)
	}

	return nil
}

/*
DisableTwoFactor clears both the secret and the enabled flag.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) DisableTwoFactor(context context.Context, userID string) error {
	const query = `
		UPDATE users.account
		SET twofactorsecret = NULL, twofactorenabled = FALSE, updatedat = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_disable_twofactor_failed: %w", err)
	}

	return nil
}

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
func (repository *PostgresUserRepository) LinkSocialAccount(context context.Context, userID, provider, providerUserID string) error {
	column, err := socialColumn(provider)
	if err != nil {
		return err
	}

	query := `UPDATE users.account SET ` + column + ` = $2, updatedat = $3 WHERE id = $1`

	_, err = repository.pool.Exec(context, query, userID, providerUserID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_link_social_failed: %w", err)
	}

	return nil
}

// socialColumn maps a provider name onto its column. The provider value is
// never interpolated into SQL directly; only this closed mapping is.
func socialColumn(provider string) (string, error) {
	switch provider {
	case ProviderGoogle:
		return "googleid", nil
	case ProviderFacebook:
		return "facebookid", nil
	default:
		return "", fmt.Errorf("postgres_user_repo_unknown_provider: %q", provider)
	}
}
