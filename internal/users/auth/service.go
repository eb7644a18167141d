// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Core identity and access management service.

It handles registration with email verification, password login with
brute-force throttling and an optional second factor, and the full
forgot/reset password loop.

Architecture:

  - Service: Orchestrates business logic (Register, Login, recovery flows).
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis (throttle).
  - Security: bcrypt password hashing, HS256 session tokens, single-use
    opaque tokens consumed by conditional updates.

Sessions are stateless: a signed token is the entire session, nothing is
persisted and nothing can be revoked before expiry.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/ctxutil"
	"github.com/taibuivan/kaminari/internal/platform/mail"
	"github.com/taibuivan/kaminari/internal/platform/sec"
	"github.com/taibuivan/kaminari/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting signed session tokens.
type TokenIssuer interface {
	// Issue creates a signed session token for the given account.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed token string, or an err if signing fails.
	Issue(userID string, role sec.UserRole, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, token
// consumption, or login logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	throttle       ThrottleRepository
	tokenIssuer    TokenIssuer
	mailer         mail.Sender
	now            func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	throttleRepo ThrottleRepository,
	issuer TokenIssuer,
	mailer mail.Sender,
) *Service {
	return &Service{
		userRepository: userRepo,
		throttle:       throttleRepo,
		tokenIssuer:    issuer,
		mailer:         mailer,
		now:            time.Now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enforces the password strength policy, hashes the password,
and persists the account together with its first verification token.
Duplicate identity is rejected by the unique indexes, not by a prior read,
so two racing registrations cannot both slip through.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists), WeakPassword, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Enforce the strength policy before any expensive hashing work
	if !sec.EvaluatePassword(input.Password).IsValid {
		return nil, apperr.WeakPassword()
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Mint the single-use verification token that gates first login
	verificationToken, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_verification_token_failed: %w", err)
	}
	verificationExpires := service.now().Add(VerificationTokenTTL)

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:                  uuid.New(),
		Username:            input.Username,
		Email:               normalizeEmail(input.Email),
		PasswordHash:        &hashedPassword,
		Role:                sec.RoleUser,
		Credits:             0,
		IsVerified:          false,
		VerificationToken:   &verificationToken,
		VerificationExpires: &verificationExpires,
	}

	// Persist the user; unique indexes surface duplicates as Conflict
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Email dispatch is a side effect: a delivery failure is logged but the
	// account stays created, the resend path recovers from it.
	service.dispatchVerificationEmail(context, user.Email, verificationToken)

	return user, nil
}

/*
VerifyEmail confirms a user's email address using a single-use token.

Description: The repository redeems the token atomically; a token that is
expired, already consumed, or never issued fails identically.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - err: apperr.InvalidOrExpiredToken or storage errors
*/
func (service *Service) VerifyEmail(context context.Context, token string) error {
	_, err := service.userRepository.ConsumeVerificationToken(context, token)
	return err
}

/*
ResendVerification re-issues the verification token for an unverified account.

Description: Replaces any previous token on the row (old links die) and
dispatches a fresh verification email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: NotFound for unknown email, Conflict for already-verified accounts
*/
func (service *Service) ResendVerification(context context.Context, email string) error {

	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		return err
	}

	if user.IsVerified {
		return apperr.Conflict("Email is already verified")
	}

	token, err := sec.GenerateSecureToken(VerificationTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_resend_token_failed: %w", err)
	}

	expiresAt := service.now().Add(VerificationTokenTTL)
	if err := service.userRepository.SetVerificationToken(context, user.ID, token, expiresAt); err != nil {
		return err
	}

	service.dispatchVerificationEmail(context, user.Email, token)
	return nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	Remember  bool
	IPAddress string
}

// LoginResult represents the outcome of a credential check.
//
// When the account has two-factor enabled, Token is empty and
// TwoFactorRequired is set: the session is only issued once the code is
// validated through the 2FA path.
type LoginResult struct {
	Token             string      `json:"token,omitempty"`
	TwoFactorRequired bool        `json:"two_factor_required,omitempty"`
	UserID            string      `json:"user_id,omitempty"`
	User              *PublicUser `json:"user,omitempty"`
}

/*
Login validates user credentials and issues a session token.

Description: Applies the brute-force throttle before any hashing work,
performs constant-time password comparison, enforces email verification,
and defers token issuance to the 2FA path when a second factor is enabled.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Session token or two-factor challenge
  - err: InvalidCredentials, EmailNotVerified, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	email := normalizeEmail(input.Email)
	throttleKey := email + ":" + input.IPAddress

	// Count this attempt before doing any work; a flood of wrong guesses
	// must not get free bcrypt comparisons.
	attempts, err := service.throttle.Hit(context, throttleKey, LoginThrottleWindow)
	if err != nil {
		// A throttle outage must not lock everyone out
		ctxutil.GetLogger(context).WarnContext(context, "login_throttle_unavailable", slog.String("error", err.Error()))
	} else if attempts > LoginThrottleLimit {
		return nil, apperr.RateLimited(int(LoginThrottleWindow.Seconds()))
	}

	// Unknown email and wrong password produce the identical response so
	// the endpoint cannot be used to enumerate accounts.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	if !user.HasPassword() || !sec.CheckPasswordHash(input.Password, *user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	// Correct password on an unverified account gets the specific nudge
	if !user.IsVerified {
		return nil, apperr.EmailNotVerified()
	}

	// Success clears the failure counter for this pair
	_ = service.throttle.Reset(context, throttleKey)

	// Second factor pending: hand back a challenge instead of a session
	if user.TwoFactorEnabled {
		return &LoginResult{
			TwoFactorRequired: true,
			UserID:            user.ID,
		}, nil
	}

	return service.issueSession(context, user, input.Remember)
}

// issueSession mints the session token and stamps the login time.
func (service *Service) issueSession(context context.Context, user *User, remember bool) (*LoginResult, error) {

	timeToLive := SessionTokenTTL
	if remember {
		timeToLive = RememberedSessionTTL
	}

	token, err := service.tokenIssuer.Issue(user.ID, user.Role, timeToLive)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Best effort; a failed stamp must not fail the login
	if err := service.userRepository.RecordLogin(context, user.ID, service.now()); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_stamp_failed", slog.String("error", err.Error()))
	}

	public := user.Public()
	return &LoginResult{
		Token: token,
		User:  &public,
	}, nil
}

// # Password Recovery

/*
ForgotPassword initiates the forgot-password flow.

Description: Issues a fresh single-use reset token on the account row and
dispatches the reset email. Unknown emails are reported as NotFound.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: NotFound for unknown email, or generation/storage errors
*/
func (service *Service) ForgotPassword(context context.Context, email string) error {

	user, err := service.userRepository.FindByEmail(context, normalizeEmail(email))
	if err != nil {
		return err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	expiresAt := service.now().Add(ResetTokenTTL)
	if err := service.userRepository.SetResetToken(context, user.ID, token, expiresAt); err != nil {
		return err
	}

	// Email dispatch is a side effect; the token stays valid either way
	if err := service.mailer.SendPasswordReset(context, user.Email, token); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "email_dispatch_failed",
			slog.String("kind", "password_reset"),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

/*
ValidateResetToken checks a reset token without consuming it.

Description: Read-only preflight used by the reset form before the user
types a new password.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - err: apperr.InvalidOrExpiredToken when absent or expired
*/
func (service *Service) ValidateResetToken(context context.Context, token string) error {
	_, err := service.userRepository.FindByResetToken(context, token)
	return err
}

/*
ResetPassword completes the forgot-password flow.

Description: Enforces the strength policy, then redeems the token and
writes the new hash in one atomic repository call. Two racing submissions
with the same token produce exactly one winner.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: WeakPassword, InvalidOrExpiredToken, or storage errors
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	if !sec.EvaluatePassword(newPassword).IsValid {
		return apperr.WeakPassword()
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	_, err = service.userRepository.ConsumeResetToken(context, token, hashedPassword)
	return err
}

// # Identity Resolution

/*
LoadCurrentUser resolves a session token subject into a live account snapshot.

Description: Backs the authentication middleware. A deleted account and an
unverified account both fail closed with 401 so a stale token can never
outlive the account state it was issued against.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *sec.CurrentUser: Client-safe identity snapshot
  - err: apperr.Unauthorized or apperr.EmailNotVerified
*/
func (service *Service) LoadCurrentUser(context context.Context, userID string) (*sec.CurrentUser, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	if !user.IsVerified {
		return nil, apperr.EmailNotVerified()
	}

	return &sec.CurrentUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Credits:  user.Credits,
	}, nil
}

// # Helpers

// dispatchVerificationEmail sends the verification link, logging failures
// without surfacing them: the account state change already happened.
func (service *Service) dispatchVerificationEmail(context context.Context, recipient, token string) {
	if err := service.mailer.SendVerification(context, recipient, token); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "email_dispatch_failed",
			slog.String("kind", "verification"),
			slog.String("error", err.Error()),
		)
	}
}

// normalizeEmail lowercases and trims an email for storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
