package group

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
)

// RemoveRoleInput revokes a role from a group.
type RemoveRoleInput struct {
	GroupID string
	RoleID  string
}

// RemoveRoleFromUserGroup revokes a role from a group.
type RemoveRoleFromUserGroup struct {
	authz      *authz.Service
	validator  *validate.UserGroupValidator
	groups     ports.UserGroupWriteRepository
	dispatcher *event.Dispatcher
}

// NewRemoveRoleFromUserGroup wires the remove-role command handler.
func NewRemoveRoleFromUserGroup(az *authz.Service, validator *validate.UserGroupValidator, groups ports.UserGroupWriteRepository, dispatcher *event.Dispatcher) *RemoveRoleFromUserGroup {
	return &RemoveRoleFromUserGroup{authz: az, validator: validator, groups: groups, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *RemoveRoleFromUserGroup) Execute(ctx context.Context, input RemoveRoleInput, appCtx domain.AppContext) error {
	if err := uc.authz.RequireRole(domain.RoleAdmin, appCtx); err != nil {
		return err
	}
	groupID, err := domain.ParseGroupID(input.GroupID)
	if err != nil {
		return err
	}
	roleID, err := domain.ParseRoleID(input.RoleID)
	if err != nil {
		return err
	}
	group, err := uc.validator.MustExist(ctx, groupID)
	if err != nil {
		return err
	}
	if err := group.RemoveRole(roleID, appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.groups.Save(ctx, group); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, group.TakeEvents())
	return nil
}
