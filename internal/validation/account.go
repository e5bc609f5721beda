// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var nicknameRegex = regexp.MustCompile(`^[a-zA-Z0-9]{3,}$`)

// ValidateNickname checks that a nickname is at least 3 characters and
// consists only of letters and digits.
func ValidateNickname(nickname string) error {
	if !nicknameRegex.MatchString(nickname) {
		return fmt.Errorf("nickname must be at least 3 alphanumeric characters")
	}
	if len(nickname) > 30 {
		return fmt.Errorf("nickname must not exceed 30 characters")
	}
	return nil
}

// ValidatePassword checks the password rules: at least 4 characters and it
// must not contain the nickname.
func ValidatePassword(password, nickname string) error {
	if len(password) < 4 {
		return fmt.Errorf("password must be at least 4 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	if nickname != "" && strings.Contains(password, nickname) {
		return fmt.Errorf("password must not contain the nickname")
	}
	return nil
}
