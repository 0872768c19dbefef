package ports

import (
	"context"
	"time"

	"github.com/gatekit/gatekit/internal/domain"
)

// UserWriteRepository persists the User aggregate. Save must enforce the
// optimistic-concurrency check against the aggregate's base version and
// translate unique-constraint violations on email/username into
// EMAIL_ALREADY_TAKEN / USERNAME_ALREADY_TAKEN.
type UserWriteRepository interface {
	FindByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error)
	// UsernameExists reports whether a different user (excludeID) already
	// holds the username.
	UsernameExists(ctx context.Context, username domain.Username, excludeID domain.UserID) (bool, error)
	Save(ctx context.Context, user *domain.User) error
}

// UserGroupWriteRepository persists the UserGroup aggregate including its
// role/member associations, with the same version-check semantics.
type UserGroupWriteRepository interface {
	FindByID(ctx context.Context, id domain.GroupID) (*domain.UserGroup, error)
	Save(ctx context.Context, group *domain.UserGroup) error
	Delete(ctx context.Context, group *domain.UserGroup) error
}

// SortOrder is ASC or DESC for read queries.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// PageRequest is shared pagination/sorting input. PageSize is capped by the
// query handlers; SortField must come from the handler's allow-list.
type PageRequest struct {
	PageIndex int
	PageSize  int
	SortField string
	SortOrder SortOrder
}

// Pagination describes a page of results.
type Pagination struct {
	Count     int `json:"count"`
	PageIndex int `json:"pageIndex"`
}

// Page is a paginated result set.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// UserReadModel is the query-side projection of a user.
type UserReadModel struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	SignInType  string     `json:"signInType"`
	DisplayName *string    `json:"displayName,omitempty"`
	Username    *string    `json:"username,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// UserFilter narrows FindUsers results.
type UserFilter struct {
	Status *domain.UserStatus
	Search string // matches email, username or display name
	PageRequest
}

// UserReadRepository serves user queries and role resolution for sign-in.
type UserReadRepository interface {
	FindByID(ctx context.Context, id domain.UserID) (*UserReadModel, error)
	Find(ctx context.Context, filter UserFilter) (Page[UserReadModel], error)
	// ListRoleCodes returns the union of role codes of all groups the user
	// belongs to.
	ListRoleCodes(ctx context.Context, id domain.UserID) ([]domain.RoleCode, error)
}

// UserGroupReadModel is the query-side projection of a user group.
type UserGroupReadModel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	RoleCount   int       `json:"roleCount"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserGroupFilter narrows FindUserGroups results.
type UserGroupFilter struct {
	Search string // matches name
	UserID *domain.UserID
	PageRequest
}

// UserGroupReadRepository serves group queries.
type UserGroupReadRepository interface {
	FindByID(ctx context.Context, id domain.GroupID) (*UserGroupReadModel, error)
	Find(ctx context.Context, filter UserGroupFilter) (Page[UserGroupReadModel], error)
}

// RoleReadModel is the query-side projection of a role.
type RoleReadModel struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RoleFilter narrows FindRoles results.
type RoleFilter struct {
	UserGroupID *domain.GroupID
	PageRequest
}

// RoleReadRepository serves role queries. Roles are seeded out of band, so
// only the read side exists.
type RoleReadRepository interface {
	FindByID(ctx context.Context, id domain.RoleID) (*domain.Role, error)
	Find(ctx context.Context, filter RoleFilter) (Page[RoleReadModel], error)
}
