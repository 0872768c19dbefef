package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gatekit/gatekit/internal/application/ports"
)

// HTTPProvider talks to the external identity provider's REST API.
type HTTPProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// HTTPProviderOption configures HTTPProvider.
type HTTPProviderOption func(*HTTPProvider)

// WithClient sets the HTTP client (default: 10s timeout).
func WithClient(c *http.Client) HTTPProviderOption {
	return func(p *HTTPProvider) {
		p.client = c
	}
}

// NewHTTPProvider creates the provider client. apiKey is sent as a bearer
// token on every request.
func NewHTTPProvider(baseURL, apiKey string, opts ...HTTPProviderOption) *HTTPProvider {
	p := &HTTPProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// VerifyPassword implements ports.IdentityProvider. A 400/401/404 from the
// provider is treated as wrong credentials, not an error.
func (p *HTTPProvider) VerifyPassword(ctx context.Context, email, password string) (*ports.ProviderCredentials, error) {
	var out struct {
		ExternalID string `json:"externalId"`
		IDToken    string `json:"idToken"`
	}
	status, err := p.post(ctx, "/v1/accounts:verifyPassword", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, &providerError{op: "verifyPassword", status: status}
	}
	return &ports.ProviderCredentials{ExternalID: out.ExternalID, IDToken: out.IDToken}, nil
}

// CreateSignInToken implements ports.IdentityProvider.
func (p *HTTPProvider) CreateSignInToken(ctx context.Context, externalID string, claims map[string]interface{}) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	status, err := p.post(ctx, "/v1/accounts:createSignInToken", map[string]interface{}{
		"externalId": externalID,
		"claims":     claims,
	}, &out)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &providerError{op: "createSignInToken", status: status}
	}
	return out.Token, nil
}

// CreateUser implements ports.IdentityProvider.
func (p *HTTPProvider) CreateUser(ctx context.Context, input ports.CreateIdentityInput) (string, error) {
	var out struct {
		ExternalID string `json:"externalId"`
	}
	status, err := p.post(ctx, "/v1/accounts", map[string]string{
		"email":       input.Email,
		"password":    input.Password,
		"displayName": input.DisplayName,
	}, &out)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", &providerError{op: "createUser", status: status}
	}
	return out.ExternalID, nil
}

// EnableUser implements ports.IdentityProvider.
func (p *HTTPProvider) EnableUser(ctx context.Context, externalID string) error {
	return p.setDisabled(ctx, externalID, false)
}

// DisableUser implements ports.IdentityProvider.
func (p *HTTPProvider) DisableUser(ctx context.Context, externalID string) error {
	return p.setDisabled(ctx, externalID, true)
}

func (p *HTTPProvider) setDisabled(ctx context.Context, externalID string, disabled bool) error {
	status, err := p.post(ctx, "/v1/accounts:update", map[string]interface{}{
		"externalId": externalID,
		"disabled":   disabled,
	}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &providerError{op: "updateAccount", status: status}
	}
	return nil
}

// VerifyToken implements ports.IdentityProvider.
func (p *HTTPProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	var out struct {
		ExternalID string `json:"externalId"`
	}
	status, err := p.post(ctx, "/v1/accounts:lookup", map[string]string{
		"idToken": idToken,
	}, &out)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &providerError{op: "verifyToken", status: status}
	}
	return out.ExternalID, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload interface{}, out interface{}) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

type providerError struct {
	op     string
	status int
}

func (e *providerError) Error() string {
	return fmt.Sprintf("identity provider %s returned status %d", e.op, e.status)
}

var _ ports.IdentityProvider = (*HTTPProvider)(nil)
