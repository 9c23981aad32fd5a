package vitals

import (
	"fmt"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength is the minimum accepted password length at registration
var MinPasswordLength = 8

// ValidateEmail checks the address is syntactically well formed. The zero
// value and whitespace-only strings are rejected as well.
func ValidateEmail(email string) error {
	err := validation.Validate(email,
		validation.Required,
		is.Email,
	)
	if err != nil {
		return sentinelWithMetadata(ErrInvalidEmail, map[string]any{
			"cause": err.Error(),
		})
	}
	return nil
}

// ValidatePassword enforces the registration password policy: minimum
// length, at least one digit, and at least one non-alphanumeric character.
func ValidatePassword(password string) error {
	err := validation.Validate(password,
		validation.Required,
		validation.Length(MinPasswordLength, 0),
		validation.By(containsRune("digit", unicode.IsDigit)),
		validation.By(containsRune("special character", isSpecial)),
	)
	if err != nil {
		return sentinelWithMetadata(ErrWeakPassword, map[string]any{
			"cause": err.Error(),
		})
	}
	return nil
}

func containsRune(label string, match func(rune) bool) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		for _, r := range s {
			if match(r) {
				return nil
			}
		}
		return fmt.Errorf("must contain at least one %s", label)
	}
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
