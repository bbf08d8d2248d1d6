package validation

import (
	"errors"
	"unicode"
)

// ErrNumericPassword rejects passwords made only of digits.
var ErrNumericPassword = errors.New("password is entirely numeric")

// ValidatePassword enforces the content rules not expressible as length tags.
func ValidatePassword(password string) error {
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return ErrNumericPassword
}
