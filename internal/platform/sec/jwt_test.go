// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kaminari/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestTokenService_IssueVerify round-trips a session token.
*/
func TestTokenService_IssueVerify(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "kaminari.app")
	require.NoError(t, err)

	token, err := service.Issue("user-123", sec.RoleArtist, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "Artist", claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "kaminari.app", claims.Issuer)
}

/*
TestTokenService_Expired distinguishes stale tokens from forged ones.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "kaminari.app")
	require.NoError(t, err)

	token, err := service.Issue("user-123", sec.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Invalid covers garbage input and cross-secret forgery.
*/
func TestTokenService_Invalid(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "kaminari.app")
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := service.Verify("not.a.token")
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := service.Verify("")
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("ffffffffffffffffffffffffffffffff", "kaminari.app")
		require.NoError(t, err)

		token, err := other.Issue("user-123", sec.RoleUser, time.Hour)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenInvalid)
	})
}

/*
TestNewTokenService_ShortSecret rejects weak signing secrets at startup.
*/
func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("too-short", "kaminari.app")
	assert.Error(t, err)
}
