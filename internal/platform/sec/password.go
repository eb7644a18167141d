// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"strings"
	"unicode"
)

// # Password Policy

// passwordSymbols is the punctuation set accepted as the "symbol" criterion.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// MinPasswordLength is the length criterion threshold.
const MinPasswordLength = 8

// PasswordStrength is the result of evaluating a candidate password.
type PasswordStrength struct {
	// Strength is the number of satisfied criteria, 0 through 5.
	Strength int `json:"strength"`

	// IsValid reports whether the password meets the acceptance threshold.
	IsValid bool `json:"is_valid"`
}

/*
EvaluatePassword scores a candidate password against five criteria:

 1. Length of at least [MinPasswordLength] characters.
 2. Contains an uppercase letter.
 3. Contains a lowercase letter.
 4. Contains a digit.
 5. Contains a symbol from the fixed punctuation set.

Strength is the count of satisfied criteria; the password is valid when
at least four are met. The function is pure and deterministic — it must be
applied before hashing at registration and at password-reset time.
*/
func EvaluatePassword(password string) PasswordStrength {
	var hasUpper, hasLower, hasDigit, hasSymbol bool

	for _, character := range password {
		switch {
		case unicode.IsUpper(character):
			hasUpper = true
		case unicode.IsLower(character):
			hasLower = true
		case unicode.IsDigit(character):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, character):
			hasSymbol = true
		}
	}

	strength := 0
	for _, satisfied := range []bool{
		len(password) >= MinPasswordLength,
		hasUpper,
		hasLower,
		hasDigit,
		hasSymbol,
	} {
		if satisfied {
			strength++
		}
	}

	return PasswordStrength{
		Strength: strength,
		IsValid:  strength >= 4,
	}
}
