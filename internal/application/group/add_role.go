package group

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// AddRoleInput grants a role to a group.
type AddRoleInput struct {
	GroupID string
	RoleID  string
}

// AddRoleToUserGroup grants a role to every member of a group.
type AddRoleToUserGroup struct {
	authz      *authz.Service
	validator  *validate.UserGroupValidator
	roles      ports.RoleReadRepository
	groups     ports.UserGroupWriteRepository
	dispatcher *event.Dispatcher
}

// NewAddRoleToUserGroup wires the add-role command handler.
func NewAddRoleToUserGroup(az *authz.Service, validator *validate.UserGroupValidator, roles ports.RoleReadRepository, groups ports.UserGroupWriteRepository, dispatcher *event.Dispatcher) *AddRoleToUserGroup {
	return &AddRoleToUserGroup{authz: az, validator: validator, roles: roles, groups: groups, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *AddRoleToUserGroup) Execute(ctx context.Context, input AddRoleInput, appCtx domain.AppContext) error {
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
	role, err := uc.roles.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return apperror.New(apperror.CodeRoleNotFound, "role not found").
			WithData(map[string]interface{}{"id": input.RoleID})
	}
	if err := group.AddRole(roleID, appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.groups.Save(ctx, group); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, group.TakeEvents())
	return nil
}
