package identity

import (
	"context"
	"testing"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/infrastructure/security"
)

func newLocal() *LocalProvider {
	return NewLocalProvider(security.NewArgon2Hasher(security.Argon2Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}))
}

func TestLocalProviderLifecycle(t *testing.T) {
	ctx := context.Background()
	p := newLocal()

	extID, err := p.CreateUser(ctx, ports.CreateIdentityInput{
		Email:    "Jane@Example.com",
		Password: "s3cretpass",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Email lookup is case-insensitive.
	creds, err := p.VerifyPassword(ctx, "jane@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if creds == nil || creds.ExternalID != extID {
		t.Fatalf("creds = %+v, want external id %s", creds, extID)
	}
	if creds.IDToken == "" {
		t.Fatal("no id token minted")
	}
	got, err := p.VerifyToken(ctx, creds.IDToken)
	if err != nil || got != extID {
		t.Fatalf("VerifyToken = %q, %v", got, err)
	}

	if creds, _ := p.VerifyPassword(ctx, "jane@example.com", "wrongpass"); creds != nil {
		t.Error("wrong password accepted")
	}

	if err := p.DisableUser(ctx, extID); err != nil {
		t.Fatalf("DisableUser: %v", err)
	}
	if creds, _ := p.VerifyPassword(ctx, "jane@example.com", "s3cretpass"); creds != nil {
		t.Error("disabled account can still sign in")
	}
	if err := p.EnableUser(ctx, extID); err != nil {
		t.Fatalf("EnableUser: %v", err)
	}
	if creds, _ := p.VerifyPassword(ctx, "jane@example.com", "s3cretpass"); creds == nil {
		t.Error("re-enabled account cannot sign in")
	}
}

func TestLocalProviderDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	p := newLocal()
	if _, err := p.CreateUser(ctx, ports.CreateIdentityInput{Email: "a@b.c", Password: "x"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := p.CreateUser(ctx, ports.CreateIdentityInput{Email: "A@B.C", Password: "x"}); err == nil {
		t.Fatal("duplicate email accepted")
	}
}

func TestLocalProviderSignInToken(t *testing.T) {
	ctx := context.Background()
	p := newLocal()
	extID, err := p.CreateUser(ctx, ports.CreateIdentityInput{Email: "a@b.c", Password: "x"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := p.CreateSignInToken(ctx, extID, nil)
	if err != nil {
		t.Fatalf("CreateSignInToken: %v", err)
	}
	if got, err := p.VerifyToken(ctx, token); err != nil || got != extID {
		t.Fatalf("VerifyToken = %q, %v", got, err)
	}
	if _, err := p.CreateSignInToken(ctx, "ghost", nil); err == nil {
		t.Fatal("sign-in token minted for unknown account")
	}
	if _, err := p.VerifyToken(ctx, "bogus"); err == nil {
		t.Fatal("bogus token verified")
	}
}
