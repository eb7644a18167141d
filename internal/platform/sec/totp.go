// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// # Time-Based One-Time Passwords (RFC 6238)

const (
	// totpSecretBytes is the entropy of a generated shared secret.
	totpSecretBytes = 20

	// TOTPPeriod is the time-step size in seconds.
	TOTPPeriod = 30

	// TOTPDigits is the length of a generated code.
	TOTPDigits = 6
)

// base32NoPadding matches the alphabet authenticator apps expect.
var base32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateTOTPSecret creates a new random shared secret, returned in the
// base32 form that authenticator apps consume.
func GenerateTOTPSecret() (string, error) {
	raw := make([]byte, totpSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate totp secret: %w", err)
	}
	return base32NoPadding.EncodeToString(raw), nil
}

// TOTPProvisioningURI builds the otpauth:// URI encoded into the
// enrollment QR code.
//
// # Format
//
//	otpauth://totp/<issuer>:<account>?secret=...&issuer=...&period=30&digits=6&algorithm=SHA1
func TOTPProvisioningURI(secretBase32, issuer, account string) string {
	label := url.PathEscape(issuer + ":" + account)

	values := url.Values{}
	values.Set("secret", secretBase32)
	values.Set("issuer", issuer)
	values.Set("period", strconv.Itoa(TOTPPeriod))
	values.Set("digits", strconv.Itoa(TOTPDigits))
	values.Set("algorithm", "SHA1")

	return "otpauth://totp/" + label + "?" + values.Encode()
}

/*
VerifyTOTP checks a submitted code against the shared secret.

Description: Computes the expected code for the current time step and for
each step within ±skew, comparing in constant time.

Parameters:
  - secretBase32: The stored shared secret.
  - code: The submitted 6-digit code.
  - skew: Adjacent time steps tolerated on either side. Use 0 for
    enable/disable confirmation and 1 for login-time validation where
    client clock drift is expected.
  - now: The reference time.

Returns:
  - bool: Whether the code matches.
  - error: Secret decoding failures only. A non-matching code is (false, nil).
*/
func VerifyTOTP(secretBase32, code string, skew int, now time.Time) (bool, error) {
	if len(code) != TOTPDigits || !isNumeric(code) {
		return false, nil
	}

	secret, err := base32NoPadding.DecodeString(secretBase32)
	if err != nil {
		return false, fmt.Errorf("sec: invalid totp secret encoding: %w", err)
	}

	baseCounter := now.Unix() / TOTPPeriod
	for step := -skew; step <= skew; step++ {
		counter := baseCounter + int64(step)
		if counter < 0 {
			continue
		}
		expected := hotpCode(secret, counter)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// TOTPCode computes the code for the given time. Exposed for tests and for
// generating codes in development tooling.
func TOTPCode(secretBase32 string, now time.Time) (string, error) {
	secret, err := base32NoPadding.DecodeString(secretBase32)
	if err != nil {
		return "", fmt.Errorf("sec: invalid totp secret encoding: %w", err)
	}
	return hotpCode(secret, now.Unix()/TOTPPeriod), nil
}

// hotpCode implements the RFC 4226 dynamic truncation over HMAC-SHA1.
func hotpCode(secret []byte, counter int64) string {
	var message [8]byte
	binary.BigEndian.PutUint64(message[:], uint64(counter))

	mac := hmac.New(sha1.New, secret)
	_, _ = mac.Write(message[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	truncated := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	modulus := 1
	for i := 0; i < TOTPDigits; i++ {
		modulus *= 10
	}

	return fmt.Sprintf("%0*d", TOTPDigits, truncated%modulus)
}

// isNumeric reports whether the string consists only of ASCII digits.
func isNumeric(value string) bool {
	for _, character := range value {
		if character < '0' || character > '9' {
			return false
		}
	}
	return len(value) > 0
}
