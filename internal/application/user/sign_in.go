package user

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// SignInInput accepts either an email or a username plus the password.
type SignInInput struct {
	Email    string
	Username string
	Password string
}

// SignInResult carries the provider tokens and the internal access token
// embedding the user's effective role codes.
type SignInResult struct {
	UserID      string
	IDToken     string
	SignInToken string
	AccessToken string
	ExpiresIn   int64
}

// SignIn verifies credentials against the identity provider. Every failure
// path returns INVALID_CREDENTIALS so callers cannot probe which identifiers
// exist or which accounts are disabled.
type SignIn struct {
	users     ports.UserWriteRepository
	reads     ports.UserReadRepository
	provider  ports.IdentityProvider
	tokens    ports.TokenService
	accessExp int64
}

// NewSignIn wires the sign-in command handler.
func NewSignIn(users ports.UserWriteRepository, reads ports.UserReadRepository, provider ports.IdentityProvider, tokens ports.TokenService, accessExp int64) *SignIn {
	return &SignIn{users: users, reads: reads, provider: provider, tokens: tokens, accessExp: accessExp}
}

var errInvalidCredentials = apperror.New(apperror.CodeInvalidCredentials, "invalid credentials")

// Execute runs the command. Sign-in is anonymous; no role is required.
func (uc *SignIn) Execute(ctx context.Context, input SignInInput, appCtx domain.AppContext) (*SignInResult, error) {
	user, err := uc.lookup(ctx, input)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != domain.UserActive {
		return nil, errInvalidCredentials
	}
	creds, err := uc.provider.VerifyPassword(ctx, user.Email.String(), input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if creds == nil {
		return nil, errInvalidCredentials
	}

	roles, err := uc.reads.ListRoleCodes(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	claims := map[string]interface{}{"roles": roleStrings(roles)}
	signInToken, err := uc.provider.CreateSignInToken(ctx, user.ExternalID, claims)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	accessToken, err := uc.tokens.IssueAccessToken(user.ID.String(), roles, uc.accessExp)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &SignInResult{
		UserID:      user.ID.String(),
		IDToken:     creds.IDToken,
		SignInToken: signInToken,
		AccessToken: accessToken,
		ExpiresIn:   uc.accessExp,
	}, nil
}

func (uc *SignIn) lookup(ctx context.Context, input SignInInput) (*domain.User, error) {
	if input.Email != "" {
		email, err := domain.NewEmail(input.Email)
		if err != nil {
			return nil, errInvalidCredentials
		}
		return uc.users.FindByEmail(ctx, email)
	}
	username, err := domain.NewUsername(input.Username)
	if err != nil {
		return nil, errInvalidCredentials
	}
	return uc.users.FindByUsername(ctx, username)
}

func roleStrings(roles []domain.RoleCode) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
