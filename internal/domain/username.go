package domain

import (
	"regexp"
	"strings"

	"github.com/gatekit/gatekit/internal/domain/apperror"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9._-]{1,30}[a-z0-9])$`)

// Username is a validated, normalized (trimmed, lowercased) username,
// 3-32 characters of [a-z0-9._-] with alphanumeric ends.
type Username struct{ value string }

// NewUsername validates and normalizes a username.
func NewUsername(s string) (Username, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if !usernameRegex.MatchString(v) {
		return Username{}, apperror.New(apperror.CodeInvalidUsername, "invalid username")
	}
	return Username{value: v}, nil
}

// String returns the normalized value.
func (u Username) String() string { return u.value }

// IsZero reports whether the username is unset.
func (u Username) IsZero() bool { return u.value == "" }
