package role

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// roleSortFields is the allow-list for FindRoles sorting.
var roleSortFields = map[string]bool{
	"code": true,
	"name": true,
}

// FindRolesInput filters and paginates the role list. UserGroupID, when
// present, restricts results to roles assigned to that group.
type FindRolesInput struct {
	UserGroupID string
	ports.PageRequest
}

// FindRoles returns a paginated page of role read models. Roles are seeded
// out of band; this is the only operational role surface.
type FindRoles struct {
	authz *authz.Service
	reads ports.RoleReadRepository
}

// NewFindRoles wires the query handler.
func NewFindRoles(az *authz.Service, reads ports.RoleReadRepository) *FindRoles {
	return &FindRoles{authz: az, reads: reads}
}

// Execute runs the query. A malformed UserGroupID is rejected with
// INVALID_UUID before any repository call.
func (uc *FindRoles) Execute(ctx context.Context, input FindRolesInput, appCtx domain.AppContext) (ports.Page[ports.RoleReadModel], error) {
	var zero ports.Page[ports.RoleReadModel]
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager, domain.RoleViewer}, appCtx); err != nil {
		return zero, err
	}
	var groupID *domain.GroupID
	if input.UserGroupID != "" {
		id, err := domain.ParseGroupID(input.UserGroupID)
		if err != nil {
			return zero, err
		}
		groupID = &id
	}
	return uc.reads.Find(ctx, ports.RoleFilter{
		UserGroupID: groupID,
		PageRequest: input.PageRequest.Normalize(roleSortFields, "name"),
	})
}
