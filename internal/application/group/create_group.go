package group

import (
	"context"

	"github.com/google/uuid"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/event"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// CreateUserGroupInput carries the create command.
type CreateUserGroupInput struct {
	Name        string
	Description *string
}

// CreateUserGroupResult returns the id of the new group.
type CreateUserGroupResult struct {
	ID string
}

// CreateUserGroup creates an empty user group.
type CreateUserGroup struct {
	authz      *authz.Service
	groups     ports.UserGroupWriteRepository
	dispatcher *event.Dispatcher
}

// NewCreateUserGroup wires the create command handler.
func NewCreateUserGroup(az *authz.Service, groups ports.UserGroupWriteRepository, dispatcher *event.Dispatcher) *CreateUserGroup {
	return &CreateUserGroup{authz: az, groups: groups, dispatcher: dispatcher}
}

// Execute runs the command.
func (uc *CreateUserGroup) Execute(ctx context.Context, input CreateUserGroupInput, appCtx domain.AppContext) (*CreateUserGroupResult, error) {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager}, appCtx); err != nil {
		return nil, err
	}
	id := domain.NewGroupID(uuid.New())
	group := domain.NewUserGroup(id, input.Name, input.Description, appCtx.User.UserID)
	if err := uc.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	uc.dispatcher.Dispatch(ctx, group.TakeEvents())
	return &CreateUserGroupResult{ID: id.String()}, nil
}
