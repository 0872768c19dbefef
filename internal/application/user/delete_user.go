package user

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
)

// DeleteUserInput identifies the user to delete.
type DeleteUserInput struct {
	ID string
}

// DeleteUser marks a user DELETED. The row stays for audit; the status
// transition is final and deleting twice fails with USER_ALREADY_DELETED.
type DeleteUser struct {
	authz      *authz.Service
	validator  *validate.UserValidator
	users      ports.UserWriteRepository
	dispatcher *event.Dispatcher
}

// NewDeleteUser wires the delete command handler.
func NewDeleteUser(az *authz.Service, validator *validate.UserValidator, users ports.UserWriteRepository, dispatcher *event.Dispatcher) *DeleteUser {
	return &DeleteUser{authz: az, validator: validator, users: users, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *DeleteUser) Execute(ctx context.Context, input DeleteUserInput, appCtx domain.AppContext) error {
	if err := uc.authz.RequireRole(domain.RoleAdmin, appCtx); err != nil {
		return err
	}
	id, err := domain.ParseUserID(input.ID)
	if err != nil {
		return err
	}
	user, err := uc.validator.MustExist(ctx, id)
	if err != nil {
		return err
	}
	if err := user.Delete(appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.users.Save(ctx, user); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, user.TakeEvents())
	return nil
}
