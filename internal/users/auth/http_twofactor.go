// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/kaminari/internal/platform/request"
	"github.com/taibuivan/kaminari/internal/platform/respond"
	"github.com/taibuivan/kaminari/internal/platform/validate"
)

// # Two-Factor Endpoints

// TwoFactorHandler implements the 2FA lifecycle HTTP endpoints.
//
// # Mounting
//
// The enrollment routes (enable/verify/disable) sit behind the
// authentication gate. The mid-login validation step stays public, since
// by definition it runs before a session token exists.
type TwoFactorHandler struct {
	authService *Service
}

// NewTwoFactorHandler constructs a new [TwoFactorHandler].
func NewTwoFactorHandler(service *Service) *TwoFactorHandler {
	return &TwoFactorHandler{authService: service}
}

// Routes returns the 2FA router. The authenticate middleware guards the
// enrollment routes only.
func (handler *TwoFactorHandler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public: second step of a password login with 2FA armed.
	router.Post("/validate", handler.validate)

	// Enrollment management requires a live session.
	router.Group(func(gated chi.Router) {
		gated.Use(authenticate)

		gated.Post("/enable", handler.enable)
		gated.Post("/verify", handler.verify)
		gated.Post("/disable", handler.disable)
	})

	return router
}

// # Request Payloads

type codeRequest struct {
	Code string `json:"code"`
}

type validateRequest struct {
	UserID   string `json:"user_id"`
	Code     string `json:"code"`
	Remember bool   `json:"remember"`
}

/*
Enable starts two-factor enrollment for the authenticated user.

POST /api/v1/2fa/enable

Description: Generates an unconfirmed TOTP secret and returns the
provisioning material (secret, otpauth:// URI, QR code image).

Response:
  - 200: TwoFactorSetup
  - 409: CONFLICT: Already enabled
*/
func (handler *TwoFactorHandler) enable(writer http.ResponseWriter, request *http.Request) {
	currentUser, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setup, err := handler.authService.EnableTwoFactor(request.Context(), currentUser.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, setup)
}

/*
Verify confirms the enrollment with the first authenticator code.

POST /api/v1/2fa/verify

Description: The code must match the current step exactly; on success the
second factor becomes mandatory for every future login.

Request:
  - Body: codeRequest (Code)

Response:
  - 200: Success: Two-factor enabled
  - 400: INVALID_CODE
*/
func (handler *TwoFactorHandler) verify(writer http.ResponseWriter, request *http.Request) {
	currentUser, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input codeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Code == "" {
		respond.Error(writer, request, validate.RequiredError(FieldCode, "is required"))
		return
	}

	if err := handler.authService.ConfirmTwoFactor(request.Context(), currentUser.ID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Two-factor authentication enabled",
	})
}

/*
Validate completes a two-factor challenged login.

POST /api/v1/2fa/validate

Description: Unauthenticated: the caller presents the user_id returned by
the password step plus a current authenticator code, and receives the
session token the login withheld.

Request:
  - Body: validateRequest (UserID, Code, Remember)

Response:
  - 200: LoginResult: Session token + profile
  - 400: INVALID_CODE
  - 401: ErrUnauthorized: Unknown user
*/
func (handler *TwoFactorHandler) validate(writer http.ResponseWriter, request *http.Request) {
	var input validateRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldUserID, input.UserID).
		Required(FieldCode, input.Code)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.ValidateTwoFactor(request.Context(), TwoFactorLoginInput{
		UserID:   input.UserID,
		Code:     input.Code,
		Remember: input.Remember,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Disable turns off the second factor for the authenticated user.

POST /api/v1/2fa/disable

Description: Requires a fresh valid code; a session alone is not enough.

Request:
  - Body: codeRequest (Code)

Response:
  - 200: Success: Two-factor disabled
  - 400: INVALID_CODE
*/
func (handler *TwoFactorHandler) disable(writer http.ResponseWriter, request *http.Request) {
	currentUser, err := requestutil.RequiredUser(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input codeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Code == "" {
		respond.Error(writer, request, validate.RequiredError(FieldCode, "is required"))
		return
	}

	if err := handler.authService.DisableTwoFactor(request.Context(), currentUser.ID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Two-factor authentication disabled",
	})
}
