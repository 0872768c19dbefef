package ports

import "github.com/gatekit/gatekit/internal/domain"

// TokenService signs and validates the internal RS256 access tokens that
// authorize API calls. Claims carry the user id and effective role codes.
type TokenService interface {
	IssueAccessToken(userID string, roles []domain.RoleCode, expiresInSeconds int64) (string, error)
	VerifyAccessToken(tokenString string) (userID string, roles []domain.RoleCode, err error)
}

// PasswordHasher hashes and verifies passwords (Argon2id). Used only by the
// local development identity provider; the production provider owns passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
