package group

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// groupSortFields is the allow-list for FindUserGroups sorting.
var groupSortFields = map[string]bool{
	"name":      true,
	"createdAt": true,
}

// FindUserGroupsInput filters and paginates the group list. UserID, when
// present, restricts results to groups the user belongs to.
type FindUserGroupsInput struct {
	Search string
	UserID string
	ports.PageRequest
}

// FindUserGroups returns a paginated page of group read models, sorted by
// name ascending by default.
type FindUserGroups struct {
	authz *authz.Service
	reads ports.UserGroupReadRepository
}

// NewFindUserGroups wires the query handler.
func NewFindUserGroups(az *authz.Service, reads ports.UserGroupReadRepository) *FindUserGroups {
	return &FindUserGroups{authz: az, reads: reads}
}

// Execute runs the query. Id-shaped filters are format-checked before any
// repository call.
func (uc *FindUserGroups) Execute(ctx context.Context, input FindUserGroupsInput, appCtx domain.AppContext) (ports.Page[ports.UserGroupReadModel], error) {
	var zero ports.Page[ports.UserGroupReadModel]
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager, domain.RoleViewer}, appCtx); err != nil {
		return zero, err
	}
	var userID *domain.UserID
	if input.UserID != "" {
		id, err := domain.ParseUserID(input.UserID)
		if err != nil {
			return zero, err
		}
		userID = &id
	}
	return uc.reads.Find(ctx, ports.UserGroupFilter{
		Search:      input.Search,
		UserID:      userID,
		PageRequest: input.PageRequest.Normalize(groupSortFields, "name"),
	})
}
