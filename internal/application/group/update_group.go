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

// UpdateUserGroupInput carries the update command. At least one of Name or
// Description must be present.
type UpdateUserGroupInput struct {
	ID          string
	Name        *string
	Description *string
}

// UpdateUserGroup changes a group's metadata.
type UpdateUserGroup struct {
	authz      *authz.Service
	validator  *validate.UserGroupValidator
	groups     ports.UserGroupWriteRepository
	dispatcher *event.Dispatcher
}

// NewUpdateUserGroup wires the update command handler.
func NewUpdateUserGroup(az *authz.Service, validator *validate.UserGroupValidator, groups ports.UserGroupWriteRepository, dispatcher *event.Dispatcher) *UpdateUserGroup {
	return &UpdateUserGroup{authz: az, validator: validator, groups: groups, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *UpdateUserGroup) Execute(ctx context.Context, input UpdateUserGroupInput, appCtx domain.AppContext) error {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager}, appCtx); err != nil {
		return err
	}
	if input.Name == nil && input.Description == nil {
		return apperror.New(apperror.CodeNoUpdates, "no updates provided")
	}
	id, err := domain.ParseGroupID(input.ID)
	if err != nil {
		return err
	}
	group, err := uc.validator.MustExist(ctx, id)
	if err != nil {
		return err
	}
	if err := group.Update(input.Name, input.Description, appCtx.User.UserID); err != nil {
		return err
	}
	if err := uc.groups.Save(ctx, group); err != nil {
		return err
	}
	uc.dispatcher.Dispatch(ctx, group.TakeEvents())
	return nil
}
