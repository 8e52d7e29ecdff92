// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	passwordMinLen = 12
	passwordMaxLen = 128

	specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// ValidatePassword checks length bounds and required character classes.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return fmt.Errorf("password must be at least %d characters long", passwordMinLen)
	}
	if len(password) > passwordMaxLen {
		return fmt.Errorf("password must not exceed %d characters", passwordMaxLen)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("password must contain at least one uppercase letter")
	case !hasLower:
		return fmt.Errorf("password must contain at least one lowercase letter")
	case !hasDigit:
		return fmt.Errorf("password must contain at least one digit")
	case !hasSpecial:
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*)")
	}
	return nil
}
