package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// TokenService implements ports.TokenService with RS256. Access tokens carry
// the user id and effective role codes for the authorization service.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	audience   string
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
}

// NewTokenService creates an RS256 token service.
func NewTokenService(privateKey *rsa.PrivateKey, issuer, audience string) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  &privateKey.PublicKey,
		issuer:     issuer,
		audience:   audience,
	}
}

// IssueAccessToken signs a token for the user with its role codes.
func (t *TokenService) IssueAccessToken(userID string, roles []domain.RoleCode, expiresInSeconds int64) (string, error) {
	now := time.Now()
	roleStrs := make([]string, 0, len(roles))
	for _, r := range roles {
		roleStrs = append(roleStrs, string(r))
	}
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresInSeconds) * time.Second)),
		},
		UserID: userID,
		Roles:  roleStrs,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(t.privateKey)
}

// VerifyAccessToken validates the token and returns the user id and roles.
func (t *TokenService) VerifyAccessToken(tokenString string) (string, []domain.RoleCode, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.publicKey, nil
	})
	if err != nil {
		return "", nil, err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return "", nil, errors.New("invalid token claims")
	}
	roles := make([]domain.RoleCode, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, domain.RoleCode(r))
	}
	return claims.UserID, roles, nil
}

var _ ports.TokenService = (*TokenService)(nil)
