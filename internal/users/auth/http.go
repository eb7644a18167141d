// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle — from account
creation through email verification to password recovery.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Stateless bearer-token sessions; no cookies, no server state.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kaminari/internal/platform/request"
	"github.com/taibuivan/kaminari/internal/platform/respond"
	"github.com/taibuivan/kaminari/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Verification, Password Recovery).
type Handler struct {
	authService   *Service
	socialService *SocialService

	// frontendCallbackURL is where social callbacks land the browser.
	frontendCallbackURL string
}

// NewHandler constructs a new [Handler] with its service dependencies.
func NewHandler(service *Service, socialService *SocialService) *Handler {
	return &Handler{
		authService:   service,
		socialService: socialService,
	}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// All endpoints here are public: they are the way in, sessions do not exist
// yet when they are called.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/verify-email", handler.verifyEmail)
	router.Post("/resend-verification", handler.resendVerification)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/validate-reset-token", handler.validateResetToken)
	router.Post("/reset-password", handler.resetPassword)

	// Social sign-in entry points and provider redirects
	router.Get("/google", handler.socialRedirect(ProviderGoogle))
	router.Get("/google/callback", handler.socialCallback(ProviderGoogle))
	router.Get("/facebook", handler.socialRedirect(ProviderFacebook))
	router.Get("/facebook/callback", handler.socialCallback(ProviderFacebook))

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, enforces the password policy, and persists a
new unverified account. A verification email is dispatched as a side effect.

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: PublicUser: Created account profile
  - 400: ErrInvalidJSON / PASSWORD_TOO_WEAK: Bad input or weak password
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 32).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user.Public())
}

/*
Login authenticates a user and establishes a stateless session.

POST /api/v1/auth/login

Description: Verifies credentials and either returns a signed session token
or, for two-factor accounts, a challenge that must be completed through
POST /2fa/validate.

Request:
  - Body: loginRequest (Email, Password, Remember)

Response:
  - 200: LoginResult: Token + profile, or two-factor challenge
  - 401: ErrUnauthorized: Invalid credentials or unverified email
  - 429: RATE_LIMITED: Too many failed attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:     input.Email,
		Password:  input.Password,
		Remember:  input.Remember,
		IPAddress: requestutil.ClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
VerifyEmail confirms a user's email ownership.

POST /api/v1/auth/verify-email

Description: Redeems a single-use verification token and activates the account.

Request:
  - Body: tokenRequest (Token)

Response:
  - 200: Success: Email verified
  - 400: INVALID_OR_EXPIRED_TOKEN: Token expired, consumed, or unknown
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Token == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "is required"))
		return
	}

	if err := handler.authService.VerifyEmail(request.Context(), input.Token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Email verified successfully",
	})
}

/*
ResendVerification re-issues the verification email.

POST /api/v1/auth/resend-verification

Description: Replaces the pending verification token with a fresh one and
sends it again. Older links stop working.

Request:
  - Body: emailRequest (Email)

Response:
  - 200: Success: Email dispatched
  - 404: NOT_FOUND: Unknown email
  - 409: CONFLICT: Account already verified
*/
func (handler *Handler) resendVerification(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResendVerification(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Verification email sent",
	})
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/v1/auth/forgot-password

Description: Issues a reset token and emails the reset link.

Request:
  - Body: emailRequest (Email)

Response:
  - 200: Success: Reset link sent
  - 404: NOT_FOUND: Unknown email
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input emailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password reset email sent",
	})
}

/*
ValidateResetToken checks a reset token before showing the reset form.

POST /api/v1/auth/validate-reset-token

Description: Read-only preflight; the token stays redeemable.

Request:
  - Body: tokenRequest (Token)

Response:
  - 200: Success: Token is valid
  - 400: INVALID_OR_EXPIRED_TOKEN: Token expired, consumed, or unknown
*/
func (handler *Handler) validateResetToken(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Token == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "is required"))
		return
	}

	if err := handler.authService.ValidateResetToken(request.Context(), input.Token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Token is valid",
	})
}

/*
ResetPassword completes the password recovery flow.

POST /api/v1/auth/reset-password

Description: Redeems the reset token and installs the new password. The
token dies with this call whether or not it is the first submission.

Request:
  - Body: resetPasswordRequest (Token, Password)

Response:
  - 200: Success: Password updated
  - 400: INVALID_OR_EXPIRED_TOKEN / PASSWORD_TOO_WEAK
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}
