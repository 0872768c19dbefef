package domain

import (
	"regexp"
	"strings"

	"github.com/gatekit/gatekit/internal/domain/apperror"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const maxEmailLength = 254

// Email is a validated, normalized (trimmed, lowercased) email address.
type Email struct{ value string }

// NewEmail validates and normalizes an email address.
func NewEmail(s string) (Email, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "" || len(v) > maxEmailLength || !emailRegex.MatchString(v) {
		return Email{}, apperror.New(apperror.CodeInvalidEmail, "invalid email address")
	}
	return Email{value: v}, nil
}

// String returns the normalized value.
func (e Email) String() string { return e.value }

// IsZero reports whether the email is unset.
func (e Email) IsZero() bool { return e.value == "" }
