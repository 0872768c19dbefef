package group

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
)

// RemoveUserInput removes a user from a group.
type RemoveUserInput struct {
	GroupID string
	UserID  string
}

// RemoveUserFromUserGroup removes a member from a group.
type RemoveUserFromUserGroup struct {
	authz      *authz.Service
	validator  *validate.UserGroupValidator
	groups     ports.UserGroupWriteRepository
	dispatcher *event.Dispatcher
}

// NewRemoveUserFromUserGroup wires the remove-member command handler.
func NewRemoveUserFromUserGroup(az *authz.Service, validator *validate.UserGroupValidator, groups ports.UserGroupWriteRepository, dispatcher *event.Dispatcher) *RemoveUserFromUserGroup {
	return &RemoveUserFromUserGroup{authz: az, validator: validator, groups: groups, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *RemoveUserFromUserGroup) Execute(ctx context.Context, input RemoveUserInput, appCtx domain.AppContext) error {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager}, appCtx); err != nil {
		return err
	}
	groupID, err := domain.ParseGroupID(input.GroupID)
	if err != nil {
		return err
	}
	userID, err := domain.ParseUserID(input.UserID)
	if err != nil {
		return err
	}
	group, err := uc.validator.MustExist(ctx, groupID)
	if err != nil {
		return err
	}
	if err := group.RemoveMember(userID, appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.groups.Save(ctx, group); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, group.TakeEvents())
	return nil
}
