package user

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// GetUserInput identifies the user to read.
type GetUserInput struct {
	ID string
}

// GetUser returns a single user read model.
type GetUser struct {
	authz *authz.Service
	reads ports.UserReadRepository
}

// NewGetUser wires the query handler.
func NewGetUser(az *authz.Service, reads ports.UserReadRepository) *GetUser {
	return &GetUser{authz: az, reads: reads}
}

// Execute runs the query.
func (uc *GetUser) Execute(ctx context.Context, input GetUserInput, appCtx domain.AppContext) (*ports.UserReadModel, error) {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager, domain.RoleViewer}, appCtx); err != nil {
		return nil, err
	}
	id, err := domain.ParseUserID(input.ID)
	if err != nil {
		return nil, err
	}
	user, err := uc.reads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.CodeUserNotFound, "user not found").
			WithData(map[string]interface{}{"id": input.ID})
	}
	return user, nil
}
