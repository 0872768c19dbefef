package user

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// UpdateUserInput carries the update command. At least one of DisplayName or
// Username must be present.
type UpdateUserInput struct {
	ID          string
	DisplayName *string
	Username    *string
}

// UpdateUser changes a user's display name and/or username.
type UpdateUser struct {
	authz      *authz.Service
	validator  *validate.UserValidator
	users      ports.UserWriteRepository
	dispatcher *event.Dispatcher
}

// NewUpdateUser wires the update command handler.
func NewUpdateUser(az *authz.Service, validator *validate.UserValidator, users ports.UserWriteRepository, dispatcher *event.Dispatcher) *UpdateUser {
	return &UpdateUser{authz: az, validator: validator, users: users, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *UpdateUser) Execute(ctx context.Context, input UpdateUserInput, appCtx domain.AppContext) error {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager}, appCtx); err != nil {
		return err
	}
	// NO_UPDATES is rejected before any repository call.
	if input.DisplayName == nil && input.Username == nil {
		return apperror.New(apperror.CodeNoUpdates, "no updates provided")
	}
	id, err := domain.ParseUserID(input.ID)
	if err != nil {
		return err
	}
	var username *domain.Username
	if input.Username != nil {
		un, err := domain.NewUsername(*input.Username)
		if err != nil {
			return err
		}
		username = &un
	}

	user, err := uc.validator.MustExistNotDeleted(ctx, id)
	if err != nil {
		return err
	}
	if username != nil {
		taken, err := uc.users.UsernameExists(ctx, *username, id)
		if err != nil {
			return err
		}
		if taken {
			return apperror.New(apperror.CodeUsernameAlreadyTaken, "username is already taken")
		}
	}
	if err := user.Update(input.DisplayName, username, appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.users.Save(ctx, user); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, user.TakeEvents())
	return nil
}
