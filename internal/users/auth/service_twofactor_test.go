// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kaminari/internal/platform/apperr"
	"github.com/taibuivan/kaminari/internal/platform/sec"
)

// codeAt computes the authenticator code for the stored secret at a moment.
func codeAt(t *testing.T, repo *fakeUserRepo, userID string, at time.Time) string {
	t.Helper()
	stored := repo.get(userID)
	require.NotNil(t, stored.TwoFactorSecret)
	code, err := sec.TOTPCode(*stored.TwoFactorSecret, at)
	require.NoError(t, err)
	return code
}

func TestTwoFactorEnrollment(t *testing.T) {
	service, repo, _, _, _ := newTestService(t)
	user := registerVerified(t, service, repo, "totp", "totp@example.com")

	setup, err := service.EnableTwoFactor(context.Background(), user.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, setup.Secret)
	assert.True(t, strings.HasPrefix(setup.ProvisioningURI, "otpauth://totp/"))
	assert.Contains(t, setup.ProvisioningURI, "totp@example.com")
	assert.True(t, strings.HasPrefix(setup.QRCodePNG, "data:image/png;base64,"))

	// Secret is stored but the factor is not yet armed
	assert.False(t, repo.get(user.ID).TwoFactorEnabled)

	// A wrong code does not arm it either
	err = service.ConfirmTwoFactor(context.Background(), user.ID, "000000")
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "INVALID_CODE", apperr.As(err).Code)
	assert.False(t, repo.get(user.ID).TwoFactorEnabled)

	// The current code flips the flag
	now := time.Now()
	service.now = func() time.Time { return now }
	require.NoError(t, service.ConfirmTwoFactor(context.Background(), user.ID, codeAt(t, repo, user.ID, now)))
	assert.True(t, repo.get(user.ID).TwoFactorEnabled)

	// Re-enabling an armed factor is a conflict
	_, err = service.EnableTwoFactor(context.Background(), user.ID)
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestTwoFactorLogin(t *testing.T) {
	service, repo, _, _, _ := newTestService(t)
	user := registerVerified(t, service, repo, "guard", "guard@example.com")

	// Arm the second factor
	now := time.Now()
	service.now = func() time.Time { return now }
	_, err := service.EnableTwoFactor(context.Background(), user.ID)
	require.NoError(t, err)
	require.NoError(t, service.ConfirmTwoFactor(context.Background(), user.ID, codeAt(t, repo, user.ID, now)))

	t.Run("password step returns a challenge without a token", func(t *testing.T) {
		result, err := service.Login(context.Background(), LoginInput{
			Email: "guard@example.com", Password: strongPassword, IPAddress: "1.2.3.4",
		})
		require.NoError(t, err)
		assert.True(t, result.TwoFactorRequired)
		assert.Equal(t, user.ID, result.UserID)
		assert.Empty(t, result.Token)
		assert.Nil(t, result.User)
	})

	t.Run("current code completes the login", func(t *testing.T) {
		result, err := service.ValidateTwoFactor(context.Background(), TwoFactorLoginInput{
			UserID: user.ID,
			Code:   codeAt(t, repo, user.ID, now),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		require.NotNil(t, result.User)
		assert.Equal(t, "guard", result.User.Username)
	})

	t.Run("one step of drift is tolerated either side", func(t *testing.T) {
		for _, drift := range []time.Duration{-sec.TOTPPeriod * time.Second, sec.TOTPPeriod * time.Second} {
			result, err := service.ValidateTwoFactor(context.Background(), TwoFactorLoginInput{
				UserID: user.ID,
				Code:   codeAt(t, repo, user.ID, now.Add(drift)),
			})
			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
		}
	})

	t.Run("a stale code from ten steps back is rejected", func(t *testing.T) {
		staleCode := codeAt(t, repo, user.ID, now.Add(-10*sec.TOTPPeriod*time.Second))

		_, err := service.ValidateTwoFactor(context.Background(), TwoFactorLoginInput{
			UserID: user.ID,
			Code:   staleCode,
		})
		require.NotNil(t, apperr.As(err))
		assert.Equal(t, "INVALID_CODE", apperr.As(err).Code)
	})

	t.Run("accounts without the factor cannot use the validation path", func(t *testing.T) {
		other := registerVerified(t, service, repo, "plain", "plain@example.com")

		_, err := service.ValidateTwoFactor(context.Background(), TwoFactorLoginInput{
			UserID: other.ID,
			Code:   "123456",
		})
		require.NotNil(t, apperr.As(err))
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})
}

func TestTwoFactorDisable(t *testing.T) {
	service, repo, _, _, _ := newTestService(t)
	user := registerVerified(t, service, repo, "off", "off@example.com")

	now := time.Now()
	service.now = func() time.Time { return now }
	_, err := service.EnableTwoFactor(context.Background(), user.ID)
	require.NoError(t, err)
	secret := *repo.get(user.ID).TwoFactorSecret
	require.NoError(t, service.ConfirmTwoFactor(context.Background(), user.ID, codeAt(t, repo, user.ID, now)))

	// A wrong code leaves the factor armed
	err = service.DisableTwoFactor(context.Background(), user.ID, "000000")
	require.NotNil(t, apperr.As(err))
	assert.True(t, repo.get(user.ID).TwoFactorEnabled)

	// The current code disarms it and clears the secret
	currentCode, err := sec.TOTPCode(secret, now)
	require.NoError(t, err)
	require.NoError(t, service.DisableTwoFactor(context.Background(), user.ID, currentCode))
	assert.False(t, repo.get(user.ID).TwoFactorEnabled)
	assert.Nil(t, repo.get(user.ID).TwoFactorSecret)

	// Login goes straight through again
	result, err := service.Login(context.Background(), LoginInput{
		Email: "off@example.com", Password: strongPassword, IPAddress: "4.3.2.1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.False(t, result.TwoFactorRequired)
}
