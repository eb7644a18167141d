// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// # Opaque Single-Use Tokens

// GenerateSecureToken returns a cryptographically random hex string of
// byteLength random bytes (so the encoded string is 2*byteLength chars).
//
// These tokens are bearer capabilities for email verification and password
// reset. They are stored on the account row, compared by equality, and
// cleared on first successful consumption. They are never signed or
// structured.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashToken returns the hex SHA-256 digest of a token.
//
// Used where a token must be persisted but the stored value should not be
// usable directly if the storage leaks.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
