// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/kaminari/internal/platform/sec"
)

/*
TestGenerateSecureToken checks length and uniqueness of opaque tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	token, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// Hex encoding doubles the byte length.
	assert.Len(t, token, 64)

	other, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

/*
TestHashToken confirms hashing is deterministic and one-way.
*/
func TestHashToken(t *testing.T) {
	hash := sec.HashToken("some-opaque-token")

	assert.Equal(t, hash, sec.HashToken("some-opaque-token"))
	assert.NotEqual(t, hash, sec.HashToken("other-token"))
	assert.NotEqual(t, "some-opaque-token", hash)
}
