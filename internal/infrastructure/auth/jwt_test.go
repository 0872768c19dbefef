package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/gatekit/gatekit/internal/domain"
)

func newService(t *testing.T) *TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return NewTokenService(key, "gatekit", "gatekit-api")
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newService(t)

	token, err := svc.IssueAccessToken("user-1", []domain.RoleCode{domain.RoleAdmin, domain.RoleViewer}, 900)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	userID, roles, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want user-1", userID)
	}
	if len(roles) != 2 || roles[0] != domain.RoleAdmin || roles[1] != domain.RoleViewer {
		t.Errorf("roles = %v", roles)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newService(t)

	token, err := svc.IssueAccessToken("user-1", nil, -60)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, _, err := svc.VerifyAccessToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer := newService(t)
	verifier := newService(t)

	token, err := issuer.IssueAccessToken("user-1", nil, 900)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, _, err := verifier.VerifyAccessToken(token); err == nil {
		t.Fatal("token signed with another key accepted")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newService(t)
	if _, _, err := svc.VerifyAccessToken("not.a.jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
