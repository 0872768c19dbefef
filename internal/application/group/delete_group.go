package group

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
)

// DeleteUserGroupInput identifies the group to delete.
type DeleteUserGroupInput struct {
	ID string
}

// DeleteUserGroup removes the group row and its associations.
type DeleteUserGroup struct {
	authz      *authz.Service
	validator  *validate.UserGroupValidator
	groups     ports.UserGroupWriteRepository
	dispatcher *event.Dispatcher
}

// NewDeleteUserGroup wires the delete command handler.
func NewDeleteUserGroup(az *authz.Service, validator *validate.UserGroupValidator, groups ports.UserGroupWriteRepository, dispatcher *event.Dispatcher) *DeleteUserGroup {
	return &DeleteUserGroup{authz: az, validator: validator, groups: groups, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *DeleteUserGroup) Execute(ctx context.Context, input DeleteUserGroupInput, appCtx domain.AppContext) error {
	if err := uc.authz.RequireRole(domain.RoleAdmin, appCtx); err != nil {
		return err
	}
	id, err := domain.ParseGroupID(input.ID)
	if err != nil {
		return err
	}
	group, err := uc.validator.MustExist(ctx, id)
	if err != nil {
		return err
	}
	group.Delete(appCtx.User.UserID)
	if err := uc.groups.Delete(ctx, group); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, group.TakeEvents())
	return nil
}
