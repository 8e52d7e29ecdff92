package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Route segments under /api/users that a username must not shadow.
var reservedUsernames = map[string]struct{}{
	"me":            {},
	"subscriptions": {},
	"set_password":  {},
	"admin":         {},
	"api":           {},
	"auth":          {},
	"recipes":       {},
	"tags":          {},
	"ingredients":   {},
	"users":         {},
	"ws":            {},
	"swagger":       {},
	"metrics":       {},
	"login":         {},
	"signup":        {},
}

// ValidateUsername validates username format, length and reserved names.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 30 {
		return fmt.Errorf("username must be 3-30 characters long")
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain only letters, digits and .@+-_")
	}

	if _, exists := reservedUsernames[strings.ToLower(username)]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}

// ValidateEmail performs a light-weight sanity check on the email shape.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email is too long")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
