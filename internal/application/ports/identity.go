package ports

import "context"

// CreateIdentityInput creates an account at the external identity provider.
type CreateIdentityInput struct {
	Email       string
	Password    string
	DisplayName string
}

// ProviderCredentials is the provider's response to a successful password
// verification.
type ProviderCredentials struct {
	ExternalID string
	IDToken    string
}

// IdentityProvider is the external authentication provider (Firebase-style).
// Credentials never live in this system; the provider owns them.
type IdentityProvider interface {
	// VerifyPassword returns nil credentials (and nil error) when the
	// email/password pair is wrong, so callers cannot distinguish a bad
	// password from an unknown account.
	VerifyPassword(ctx context.Context, email, password string) (*ProviderCredentials, error)
	// CreateSignInToken mints a provider sign-in token for the external
	// account, optionally embedding custom claims.
	CreateSignInToken(ctx context.Context, externalID string, claims map[string]interface{}) (string, error)
	CreateUser(ctx context.Context, input CreateIdentityInput) (externalID string, err error)
	EnableUser(ctx context.Context, externalID string) error
	DisableUser(ctx context.Context, externalID string) error
	// VerifyToken validates a provider-issued id token (Google/Apple sign-in)
	// and returns the external account id.
	VerifyToken(ctx context.Context, idToken string) (externalID string, err error)
}
