package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// AuthValidator validates the bearer token and puts the caller into the
// request context (see AppContextFromContext).
type AuthValidator struct {
	tokens ports.TokenService
}

func NewAuthValidator(tokens ports.TokenService) *AuthValidator {
	return &AuthValidator{tokens: tokens}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(w, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userIDStr, roles, err := m.tokens.VerifyAccessToken(tokenString)
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}
		userID, err := domain.ParseUserID(userIDStr)
		if err != nil {
			unauthorized(w, "invalid token subject")
			return
		}
		appCtx := domain.AppContext{User: &domain.Caller{UserID: userID, Roles: roles}}
		next.ServeHTTP(w, r.WithContext(WithAppContext(r.Context(), appCtx)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "UNAUTHORIZED"})
}
