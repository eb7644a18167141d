// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kaminari/internal/platform/sec"
)

// rfcSecret is the ASCII secret "12345678901234567890" from RFC 6238
// Appendix B, in base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

/*
TestTOTPCode_RFCVectors checks code generation against the published
SHA-1 reference vectors, truncated to six digits.
*/
func TestTOTPCode_RFCVectors(t *testing.T) {
	tests := []struct {
		name string
		at   int64
		want string
	}{
		{"t_59", 59, "287082"},
		{"t_1111111109", 1111111109, "081804"},
		{"t_1111111111", 1111111111, "050471"},
		{"t_1234567890", 1234567890, "005924"},
		{"t_2000000000", 2000000000, "279037"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := sec.TOTPCode(rfcSecret, time.Unix(tt.at, 0).UTC())
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

/*
TestVerifyTOTP covers exact-step matching and the skew window.
*/
func TestVerifyTOTP(t *testing.T) {
	now := time.Unix(1111111109, 0).UTC()

	t.Run("current_step", func(t *testing.T) {
		ok, err := sec.VerifyTOTP(rfcSecret, "081804", 0, now)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong_code", func(t *testing.T) {
		ok, err := sec.VerifyTOTP(rfcSecret, "123456", 1, now)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("previous_step_needs_skew", func(t *testing.T) {
		previous, err := sec.TOTPCode(rfcSecret, now.Add(-sec.TOTPPeriod*time.Second))
		require.NoError(t, err)

		ok, err := sec.VerifyTOTP(rfcSecret, previous, 0, now)
		require.NoError(t, err)
		assert.False(t, ok, "strict verification must reject the previous step")

		ok, err = sec.VerifyTOTP(rfcSecret, previous, 1, now)
		require.NoError(t, err)
		assert.True(t, ok, "one step of skew must accept the previous step")
	})

	t.Run("malformed_codes", func(t *testing.T) {
		for _, code := range []string{"", "12345", "1234567", "08180a", "081 04"} {
			ok, err := sec.VerifyTOTP(rfcSecret, code, 1, now)
			require.NoError(t, err)
			assert.False(t, ok, "code %q must not verify", code)
		}
	})

	t.Run("bad_secret_encoding", func(t *testing.T) {
		_, err := sec.VerifyTOTP("not base32!!", "081804", 0, now)
		assert.Error(t, err)
	})
}

/*
TestGenerateTOTPSecret confirms freshly generated secrets are usable.
*/
func TestGenerateTOTPSecret(t *testing.T) {
	secret, err := sec.GenerateTOTPSecret()
	require.NoError(t, err)
	assert.NotEmpty(t, secret)

	// A generated secret must round-trip code generation and verification.
	now := time.Now()
	code, err := sec.TOTPCode(secret, now)
	require.NoError(t, err)

	ok, err := sec.VerifyTOTP(secret, code, 0, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// Two secrets should never collide.
	other, err := sec.GenerateTOTPSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

/*
TestTOTPProvisioningURI checks the otpauth URI shape consumed by
authenticator apps.
*/
func TestTOTPProvisioningURI(t *testing.T) {
	uri := sec.TOTPProvisioningURI(rfcSecret, "kaminari-api", "totp@example.com")

	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/kaminari-api:totp@example.com?"))
	assert.Contains(t, uri, "secret="+rfcSecret)
	assert.Contains(t, uri, "issuer=kaminari-api")
	assert.Contains(t, uri, "period=30")
	assert.Contains(t, uri, "digits=6")
	assert.Contains(t, uri, "algorithm=SHA1")
}
