package group

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
)

// AddUserInput adds a user to a group.
type AddUserInput struct {
	GroupID string
	UserID  string
}

// AddUserToUserGroup adds an active user to a group, granting the group's
// roles to the user.
type AddUserToUserGroup struct {
	authz      *authz.Service
	groupCheck *validate.UserGroupValidator
	userCheck  *validate.UserValidator
	groups     ports.UserGroupWriteRepository
	dispatcher *event.Dispatcher
}

// NewAddUserToUserGroup wires the add-member command handler.
func NewAddUserToUserGroup(az *authz.Service, groupCheck *validate.UserGroupValidator, userCheck *validate.UserValidator, groups ports.UserGroupWriteRepository, dispatcher *event.Dispatcher) *AddUserToUserGroup {
	return &AddUserToUserGroup{authz: az, groupCheck: groupCheck, userCheck: userCheck, groups: groups, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *AddUserToUserGroup) Execute(ctx context.Context, input AddUserInput, appCtx domain.AppContext) error {
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
	group, err := uc.groupCheck.MustExist(ctx, groupID)
	if err != nil {
		return err
	}
	if _, err := uc.userCheck.MustBeActive(ctx, userID); err != nil {
		return err
	}
	if err := group.AddMember(userID, appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.groups.Save(ctx, group); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, group.TakeEvents())
	return nil
}
