package group

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// GetUserGroupInput identifies the group to read.
type GetUserGroupInput struct {
	ID string
}

// GetUserGroup returns a single group read model.
type GetUserGroup struct {
	authz *authz.Service
	reads ports.UserGroupReadRepository
}

// NewGetUserGroup wires the query handler.
func NewGetUserGroup(az *authz.Service, reads ports.UserGroupReadRepository) *GetUserGroup {
	return &GetUserGroup{authz: az, reads: reads}
}

// Execute runs the query.
func (uc *GetUserGroup) Execute(ctx context.Context, input GetUserGroupInput, appCtx domain.AppContext) (*ports.UserGroupReadModel, error) {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager, domain.RoleViewer}, appCtx); err != nil {
		return nil, err
	}
	id, err := domain.ParseGroupID(input.ID)
	if err != nil {
		return nil, err
	}
	group, err := uc.reads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.New(apperror.CodeUserGroupNotFound, "user group not found").
			WithData(map[string]interface{}{"id": input.ID})
	}
	return group, nil
}
