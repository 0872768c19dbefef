package user

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// userSortFields is the allow-list for FindUsers sorting.
var userSortFields = map[string]bool{
	"email":       true,
	"displayName": true,
	"username":    true,
	"createdAt":   true,
}

// FindUsersInput filters and paginates the user list.
type FindUsersInput struct {
	Status *domain.UserStatus
	Search string
	ports.PageRequest
}

// FindUsers returns a paginated page of user read models, sorted by email
// ascending unless another allow-listed field is requested.
type FindUsers struct {
	authz *authz.Service
	reads ports.UserReadRepository
}

// NewFindUsers wires the query handler.
func NewFindUsers(az *authz.Service, reads ports.UserReadRepository) *FindUsers {
	return &FindUsers{authz: az, reads: reads}
}

// Execute runs the query.
func (uc *FindUsers) Execute(ctx context.Context, input FindUsersInput, appCtx domain.AppContext) (ports.Page[ports.UserReadModel], error) {
	if err := uc.authz.RequireOneOfRoles([]domain.RoleCode{domain.RoleAdmin, domain.RoleManager, domain.RoleViewer}, appCtx); err != nil {
		return ports.Page[ports.UserReadModel]{}, err
	}
	return uc.reads.Find(ctx, ports.UserFilter{
		Status:      input.Status,
		Search:      input.Search,
		PageRequest: input.PageRequest.Normalize(userSortFields, "email"),
	})
}
