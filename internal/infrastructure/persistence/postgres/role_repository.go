package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

var roleSortColumns = map[string]string{
	"code": "r.code",
	"name": "r.name",
}

// RoleRepository serves role queries. Roles are seeded by migrations; there
// is no write side.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates the repository.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// FindByID returns the role entity, or nil when absent.
func (r *RoleRepository) FindByID(ctx context.Context, id domain.RoleID) (*domain.Role, error) {
	var (
		rid  uuid.UUID
		role domain.Role
		code string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name, description, created_at, updated_at FROM roles WHERE id = $1`, id.UUID).
		Scan(&rid, &code, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	role.ID = domain.NewRoleID(rid)
	role.Code = domain.RoleCode(code)
	return &role, nil
}

// Find returns a page of roles, optionally restricted to one group's roles.
func (r *RoleRepository) Find(ctx context.Context, filter ports.RoleFilter) (ports.Page[ports.RoleReadModel], error) {
	var (
		whereClause string
		args        []interface{}
	)
	if filter.UserGroupID != nil {
		args = append(args, filter.UserGroupID.UUID)
		whereClause = ` WHERE EXISTS(SELECT 1 FROM user_group_roles ugr
			WHERE ugr.role_id = r.id AND ugr.user_group_id = $1)`
	}

	page := ports.Page[ports.RoleReadModel]{
		Data:       []ports.RoleReadModel{},
		Pagination: ports.Pagination{PageIndex: filter.PageIndex},
	}
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM roles r`+whereClause, args...).Scan(&page.Pagination.Count); err != nil {
		return page, err
	}

	query := fmt.Sprintf(
		`SELECT r.id, r.code, r.name, r.description FROM roles r%s ORDER BY %s %s LIMIT %d OFFSET %d`,
		whereClause, roleSortColumns[filter.SortField], filter.SortOrder,
		filter.PageSize, filter.PageIndex*filter.PageSize)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return page, err
	}
	defer rows.Close()
	for rows.Next() {
		var m ports.RoleReadModel
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Description); err != nil {
			return page, err
		}
		page.Data = append(page.Data, m)
	}
	return page, rows.Err()
}

var _ ports.RoleReadRepository = (*RoleRepository)(nil)
