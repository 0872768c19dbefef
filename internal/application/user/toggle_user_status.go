package user

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// ToggleUserStatusInput enables (ACTIVE) or disables (DISABLED) a user.
type ToggleUserStatusInput struct {
	ID      string
	Enabled bool
}

// ToggleUserStatus flips the local status and mirrors it to the external
// identity provider. The provider call runs after the local persist and is
// not atomic with it: a provider failure is reported to the caller but the
// committed local change stands.
type ToggleUserStatus struct {
	authz      *authz.Service
	validator  *validate.UserValidator
	users      ports.UserWriteRepository
	provider   ports.IdentityProvider
	dispatcher *event.Dispatcher
	log        zerolog.Logger
}

// NewToggleUserStatus wires the toggle-status command handler.
func NewToggleUserStatus(az *authz.Service, validator *validate.UserValidator, users ports.UserWriteRepository, provider ports.IdentityProvider, dispatcher *event.Dispatcher, log zerolog.Logger) *ToggleUserStatus {
	return &ToggleUserStatus{authz: az, validator: validator, users: users, provider: provider, dispatcher: dispatcher, log: log}
}

// Execute runs the command.
func (uc *ToggleUserStatus) Execute(ctx context.Context, input ToggleUserStatusInput, appCtx domain.AppContext) error {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager}, appCtx); err != nil {
		return err
	}
	id, err := domain.ParseUserID(input.ID)
	if err != nil {
		return err
	}
	user, err := uc.validator.MustExistNotDeleted(ctx, id)
	if err != nil {
		return err
	}
	if err := user.SetEnabled(input.Enabled, appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.users.Save(ctx, user); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, user.TakeEvents())

	if input.Enabled {
		err = uc.provider.EnableUser(ctx, user.ExternalID)
	} else {
		err = uc.provider.DisableUser(ctx, user.ExternalID)
	}
	if err != nil {
		uc.log.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Bool("enabled", input.Enabled).
			Msg("identity provider status sync failed after local commit")
		return apperror.Internal(err)
	}
	return nil
}
