// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenTTL is the duration a standard session token remains valid.
	SessionTokenTTL = 24 * time.Hour

	// RememberedSessionTTL is the session duration when the user opts into
	// "remember me" at login.
	RememberedSessionTTL = 7 * 24 * time.Hour

	// VerificationTokenTTL is the duration an email verification token remains valid.
	// Long-lived (24 hours) as users might not check email immediately.
	VerificationTokenTTL = 24 * time.Hour

	// VerificationTokenLength is the byte length of the random verification token.
	VerificationTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)

// # Brute-Force Throttling

const (
	// LoginThrottleLimit is the number of failed attempts allowed per
	// email+IP pair inside one throttle window.
	LoginThrottleLimit = 10

	// LoginThrottleWindow is the sliding window for failed login counting.
	LoginThrottleWindow = 15 * time.Minute
)

// # Two-Factor Authentication

const (
	// ConfirmSkewSteps is the clock tolerance when confirming, disabling,
	// or enabling 2FA: the code must match the current step exactly.
	ConfirmSkewSteps = 0

	// LoginSkewSteps is the clock tolerance during mid-login validation.
	// One step either side absorbs small device clock drift.
	LoginSkewSteps = 1

	// QRCodeSizePixels is the edge length of the provisioning QR image.
	QRCodeSizePixels = 256
)
