package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// RegisterUserInput carries the registration command. For GOOGLE/APPLE
// sign-in the IDToken is a provider token; for EMAIL a password is required.
type RegisterUserInput struct {
	Email       string
	Password    string
	SignInType  domain.SignInType
	IDToken     string
	DisplayName *string
	Username    *string
}

// RegisterUserResult returns the deterministic user id plus the provider
// tokens so the client is signed in immediately after registration.
type RegisterUserResult struct {
	ID          string
	IDToken     string
	SignInToken string
}

// RegisterUser creates the local aggregate and the external identity-provider
// account. The user id is a version-5 UUID derived from the email, so a
// retried registration converges on the same id.
type RegisterUser struct {
	users      ports.UserWriteRepository
	provider   ports.IdentityProvider
	dispatcher *event.Dispatcher
	namespace  uuid.UUID
}

// NewRegisterUser wires the registration command handler.
func NewRegisterUser(users ports.UserWriteRepository, provider ports.IdentityProvider, dispatcher *event.Dispatcher, namespace uuid.UUID) *RegisterUser {
	return &RegisterUser{users: users, provider: provider, dispatcher: dispatcher, namespace: namespace}
}

// Execute runs the command. Registration is anonymous; no role is required.
func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput, appCtx domain.AppContext) (*RegisterUserResult, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}
	var username *domain.Username
	if input.Username != nil {
		un, err := domain.NewUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		username = &un
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.CodeEmailAlreadyTaken, "email is already taken")
	}
	if username != nil {
		taken, err := uc.users.UsernameExists(ctx, *username, domain.UserID{})
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.New(apperror.CodeUsernameAlreadyTaken, "username is already taken")
		}
	}

	externalID, idToken, err := uc.resolveIdentity(ctx, email, input)
	if err != nil {
		return nil, err
	}

	id := domain.UserIDFromEmail(uc.namespace, email)
	user := domain.RegisterUser(id, email, input.SignInType, externalID, input.DisplayName, username, id)
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	uc.dispatcher.Dispatch(ctx, user.TakeEvents())

	signInToken, err := uc.provider.CreateSignInToken(ctx, externalID, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &RegisterUserResult{
		ID:          id.String(),
		IDToken:     idToken,
		SignInToken: signInToken,
	}, nil
}

// resolveIdentity creates (EMAIL) or verifies (GOOGLE/APPLE) the external
// account, after the local collision checks have passed.
func (uc *RegisterUser) resolveIdentity(ctx context.Context, email domain.Email, input RegisterUserInput) (externalID, idToken string, err error) {
	switch input.SignInType {
	case domain.SignInGoogle, domain.SignInApple:
		externalID, err = uc.provider.VerifyToken(ctx, input.IDToken)
		if err != nil {
			return "", "", apperror.New(apperror.CodeInvalidCredentials, "invalid identity provider token")
		}
		return externalID, input.IDToken, nil
	default:
		displayName := ""
		if input.DisplayName != nil {
			displayName = *input.DisplayName
		}
		externalID, err = uc.provider.CreateUser(ctx, ports.CreateIdentityInput{
			Email:       email.String(),
			Password:    input.Password,
			DisplayName: displayName,
		})
		if err != nil {
			return "", "", apperror.Internal(err)
		}
		creds, err := uc.provider.VerifyPassword(ctx, email.String(), input.Password)
		if err != nil {
			return "", "", apperror.Internal(err)
		}
		if creds == nil {
			return "", "", apperror.New(apperror.CodeInvalidCredentials, "invalid email or password")
		}
		return externalID, creds.IDToken, nil
	}
}
