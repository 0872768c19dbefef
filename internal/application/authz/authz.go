package authz

import (
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// Service evaluates the caller's role set. It is stateless and must be
// invoked before any I/O so failed checks have no partial side effects.
type Service struct{}

// NewService creates the authorization service.
func NewService() *Service { return &Service{} }

// RequireAuthenticated fails with UNAUTHORIZED when the request is anonymous.
func (s *Service) RequireAuthenticated(appCtx domain.AppContext) error {
	if !appCtx.Authenticated() {
		return apperror.Unauthorized()
	}
	return nil
}

// RequireRole fails with UNAUTHORIZED for anonymous callers and FORBIDDEN
// when the caller does not hold the role.
func (s *Service) RequireRole(role domain.RoleCode, appCtx domain.AppContext) error {
	if !appCtx.Authenticated() {
		return apperror.Unauthorized()
	}
	if !appCtx.User.HasRole(role) {
		return apperror.Forbidden()
	}
	return nil
}

// RequireOneOfRoles fails with UNAUTHORIZED for anonymous callers and
// FORBIDDEN when the caller holds none of the roles.
func (s *Service) RequireOneOfRoles(roles []domain.RoleCode, appCtx domain.AppContext) error {
	if !appCtx.Authenticated() {
		return apperror.Unauthorized()
	}
	for _, role := range roles {
		if appCtx.User.HasRole(role) {
			return nil
		}
	}
	return apperror.Forbidden()
}
