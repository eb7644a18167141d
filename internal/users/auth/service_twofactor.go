// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/constants"
	"github.com/taibuivan/kaminari/internal/platform/sec"
)

// # Two-Factor Lifecycle
//
// Enablement is a two-step handshake: EnableTwoFactor stores an unconfirmed
// secret and hands out the provisioning material; ConfirmTwoFactor proves
// the authenticator actually holds that secret before the flag flips. Until
// the flag flips, login is unaffected.

// TwoFactorSetup carries the provisioning material for an authenticator app.
type TwoFactorSetup struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"otpauth_url"`
	QRCodePNG       string `json:"qr_code"` // base64 data URI, scannable directly by the front end
}

/*
EnableTwoFactor generates and stores an unconfirmed TOTP secret.

Description: The secret is persisted immediately but twofactorenabled stays
false until ConfirmTwoFactor proves possession. Re-invoking replaces any
previous unconfirmed secret.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *TwoFactorSetup: Secret, otpauth:// URI, and QR code image
  - err: Conflict when already enabled, or storage failures
*/
func (service *Service) EnableTwoFactor(context context.Context, userID string) (*TwoFactorSetup, error) {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if user.TwoFactorEnabled {
		return nil, apperr.Conflict("Two-factor authentication is already enabled")
	}

	secret, err := sec.GenerateTOTPSecret()
	if err != nil {
		return nil, fmt.Errorf("auth_service_totp_secret_failed: %w", err)
	}

	if err := service.userRepository.SetTwoFactorSecret(context, userID, secret); err != nil {
		return nil, err
	}

	uri := sec.TOTPProvisioningURI(secret, constants.AppName, user.Email)

	// Render the provisioning QR so the front end can show it inline
	pngBytes, err := qrcode.Encode(uri, qrcode.Medium, QRCodeSizePixels)
	if err != nil {
		return nil, fmt.Errorf("auth_service_totp_qr_failed: %w", err)
	}

	return &TwoFactorSetup{
		Secret:          secret,
		ProvisioningURI: uri,
		QRCodePNG:       "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes),
	}, nil
}

/*
ConfirmTwoFactor verifies the first code and activates the second factor.

Description: The code must match the current time step exactly (no skew):
a fresh enrollment has no drift excuse, and a strict check here catches a
mis-scanned secret before it can lock the user out at login.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - err: InvalidCode, or storage failures
*/
func (service *Service) ConfirmTwoFactor(context context.Context, userID, code string) error {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if user.TwoFactorSecret == nil {
		return apperr.ValidationError("Two-factor setup has not been started")
	}

	ok, err := sec.VerifyTOTP(*user.TwoFactorSecret, code, ConfirmSkewSteps, service.now())
	if err != nil {
		return fmt.Errorf("auth_service_totp_verify_failed: %w", err)
	}
	if !ok {
		return apperr.InvalidCode()
	}

	return service.userRepository.EnableTwoFactor(context, userID)
}

// # Mid-Login Validation

// TwoFactorLoginInput completes a login that was answered with a challenge.
type TwoFactorLoginInput struct {
	UserID   string
	Code     string
	Remember bool
}

/*
ValidateTwoFactor finishes a challenged login by checking the TOTP code.

Description: Unauthenticated by design: the caller holds no session yet,
only the user_id returned by the password step. Tolerates one step of
clock drift either side; on success the session token is finally issued.

Parameters:
  - context: context.Context
  - input: TwoFactorLoginInput

Returns:
  - *LoginResult: Session token and public profile
  - err: InvalidCode, Unauthorized, or storage failures
*/
func (service *Service) ValidateTwoFactor(context context.Context, input TwoFactorLoginInput) (*LoginResult, error) {

	user, err := service.userRepository.FindByID(context, input.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}

	// A challenge only exists for accounts that completed the handshake
	if !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		return nil, apperr.ValidationError("Two-factor authentication is not enabled for this account")
	}

	ok, err := sec.VerifyTOTP(*user.TwoFactorSecret, input.Code, LoginSkewSteps, service.now())
	if err != nil {
		return nil, fmt.Errorf("auth_service_totp_validate_failed: %w", err)
	}
	if !ok {
		return nil, apperr.InvalidCode()
	}

	return service.issueSession(context, user, input.Remember)
}

/*
DisableTwoFactor turns the second factor off after re-proving possession.

Description: Requires a fresh valid code (strict, no skew) so a hijacked
session alone cannot silently weaken the account.

Parameters:
  - context: context.Context
  - userID: string
  - code: string

Returns:
  - err: InvalidCode, or storage failures
*/
func (service *Service) DisableTwoFactor(context context.Context, userID, code string) error {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		return apperr.ValidationError("Two-factor authentication is not enabled")
	}

	ok, err := sec.VerifyTOTP(*user.TwoFactorSecret, code, ConfirmSkewSteps, service.now())
	if err != nil {
		return fmt.Errorf("auth_service_totp_disable_failed: %w", err)
	}
	if !ok {
		return apperr.InvalidCode()
	}

	return service.userRepository.DisableTwoFactor(context, userID)
}
