// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/kaminari/internal/platform/sec"
)

/*
TestEvaluatePassword scores candidates against the five-criteria policy.
*/
func TestEvaluatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		strength int
		isValid  bool
	}{
		{"empty", "", 0, false},
		{"lowercase_only", "abc", 1, false},
		{"short_but_mixed", "Ab1!", 4, true},
		{"long_lowercase", "abcdefgh", 2, false},
		{"missing_symbol", "Abcdefg1", 4, true},
		{"all_criteria", "StrongP@ssw0rd", 5, true},
		{"digits_only", "12345678", 2, false},
		{"unicode_letters", "Пароль12!", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sec.EvaluatePassword(tt.password)

			assert.Equal(t, tt.strength, result.Strength)
			assert.Equal(t, tt.isValid, result.IsValid)
		})
	}
}

/*
TestEvaluatePassword_Deterministic confirms repeated evaluation of the same
input yields the same score.
*/
func TestEvaluatePassword_Deterministic(t *testing.T) {
	first := sec.EvaluatePassword("StrongP@ssw0rd")
	second := sec.EvaluatePassword("StrongP@ssw0rd")

	assert.Equal(t, first, second)
}

/*
TestPasswordHashing round-trips bcrypt hashing and verification.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("StrongP@ssw0rd")
	assert.NoError(t, err)
	assert.NotEqual(t, "StrongP@ssw0rd", hash)

	assert.True(t, sec.CheckPasswordHash("StrongP@ssw0rd", hash))
	assert.False(t, sec.CheckPasswordHash("WrongP@ssw0rd", hash))
	assert.False(t, sec.CheckPasswordHash("StrongP@ssw0rd", "not-a-bcrypt-hash"))
}
