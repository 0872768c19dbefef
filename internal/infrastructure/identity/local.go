package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"github.com/gatekit/gatekit/internal/application/ports"
)

// LocalProvider is an in-memory identity provider for development and tests.
// Passwords are hashed with Argon2id; tokens are random opaque strings.
type LocalProvider struct {
	mu       sync.Mutex
	hasher   ports.PasswordHasher
	byEmail  map[string]*localAccount
	byID     map[string]*localAccount
	byToken  map[string]string // idToken/signInToken -> externalID
}

type localAccount struct {
	externalID   string
	email        string
	passwordHash string
	displayName  string
	disabled     bool
}

// NewLocalProvider creates an empty local provider.
func NewLocalProvider(hasher ports.PasswordHasher) *LocalProvider {
	return &LocalProvider{
		hasher:  hasher,
		byEmail: make(map[string]*localAccount),
		byID:    make(map[string]*localAccount),
		byToken: make(map[string]string),
	}
}

// VerifyPassword implements ports.IdentityProvider.
func (p *LocalProvider) VerifyPassword(ctx context.Context, email, password string) (*ports.ProviderCredentials, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc := p.byEmail[strings.ToLower(email)]
	if acc == nil || acc.disabled || !p.hasher.Verify(password, acc.passwordHash) {
		return nil, nil
	}
	token, err := p.mintToken(acc.externalID)
	if err != nil {
		return nil, err
	}
	return &ports.ProviderCredentials{ExternalID: acc.externalID, IDToken: token}, nil
}

// CreateSignInToken implements ports.IdentityProvider.
func (p *LocalProvider) CreateSignInToken(ctx context.Context, externalID string, claims map[string]interface{}) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.byID[externalID] == nil {
		return "", errors.New("unknown external account")
	}
	return p.mintToken(externalID)
}

// CreateUser implements ports.IdentityProvider.
func (p *LocalProvider) CreateUser(ctx context.Context, input ports.CreateIdentityInput) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	email := strings.ToLower(input.Email)
	if p.byEmail[email] != nil {
		return "", errors.New("account already exists")
	}
	hash, err := p.hasher.Hash(input.Password)
	if err != nil {
		return "", err
	}
	id, err := randomHex(16)
	if err != nil {
		return "", err
	}
	acc := &localAccount{
		externalID:   id,
		email:        email,
		passwordHash: hash,
		displayName:  input.DisplayName,
	}
	p.byEmail[email] = acc
	p.byID[id] = acc
	return id, nil
}

// EnableUser implements ports.IdentityProvider.
func (p *LocalProvider) EnableUser(ctx context.Context, externalID string) error {
	return p.setDisabled(externalID, false)
}

// DisableUser implements ports.IdentityProvider.
func (p *LocalProvider) DisableUser(ctx context.Context, externalID string) error {
	return p.setDisabled(externalID, true)
}

func (p *LocalProvider) setDisabled(externalID string, disabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc := p.byID[externalID]
	if acc == nil {
		return errors.New("unknown external account")
	}
	acc.disabled = disabled
	return nil
}

// VerifyToken implements ports.IdentityProvider.
func (p *LocalProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.byToken[idToken]
	if !ok {
		return "", errors.New("invalid id token")
	}
	return id, nil
}

func (p *LocalProvider) mintToken(externalID string) (string, error) {
	token, err := randomHex(32)
	if err != nil {
		return "", err
	}
	p.byToken[token] = externalID
	return token, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

var _ ports.IdentityProvider = (*LocalProvider)(nil)
