package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
)

// userSortColumns maps API sort fields to columns. The query handlers have
// already validated the field against their allow-list.
var userSortColumns = map[string]string{
	"email":       "email",
	"displayName": "display_name",
	"username":    "username",
	"createdAt":   "created_at",
}

// UserReadRepository serves user queries from the same tables as the write
// side. Deleted users are visible to administrators, so no status is filtered
// out implicitly.
type UserReadRepository struct {
	pool *pgxpool.Pool
}

// NewUserReadRepository creates the read repository.
func NewUserReadRepository(pool *pgxpool.Pool) *UserReadRepository {
	return &UserReadRepository{pool: pool}
}

// FindByID returns the projection, or nil when absent.
func (r *UserReadRepository) FindByID(ctx context.Context, id domain.UserID) (*ports.UserReadModel, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, sign_in_type, display_name, username, status, created_at, updated_at
		 FROM users WHERE id = $1`, id.UUID)
	m, err := scanUserReadModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Find returns a page of users matching the filter.
func (r *UserReadRepository) Find(ctx context.Context, filter ports.UserFilter) (ports.Page[ports.UserReadModel], error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(email ILIKE $%d OR username ILIKE $%d OR display_name ILIKE $%d)", n, n, n))
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	page := ports.Page[ports.UserReadModel]{
		Data:       []ports.UserReadModel{},
		Pagination: ports.Pagination{PageIndex: filter.PageIndex},
	}
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+whereClause, args...).Scan(&page.Pagination.Count); err != nil {
		return page, err
	}

	query := fmt.Sprintf(
		`SELECT id, email, sign_in_type, display_name, username, status, created_at, updated_at
		 FROM users%s ORDER BY %s %s LIMIT %d OFFSET %d`,
		whereClause, userSortColumns[filter.SortField], filter.SortOrder,
		filter.PageSize, filter.PageIndex*filter.PageSize)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return page, err
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanUserReadModel(rows)
		if err != nil {
			return page, err
		}
		page.Data = append(page.Data, *m)
	}
	return page, rows.Err()
}

// ListRoleCodes returns the union of role codes granted by the user's groups.
func (r *UserReadRepository) ListRoleCodes(ctx context.Context, id domain.UserID) ([]domain.RoleCode, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT r.code
		 FROM roles r
		 JOIN user_group_roles ugr ON ugr.role_id = r.id
		 JOIN user_group_members ugm ON ugm.user_group_id = ugr.user_group_id
		 WHERE ugm.user_id = $1
		 ORDER BY r.code`, id.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []domain.RoleCode
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, domain.RoleCode(code))
	}
	return codes, rows.Err()
}

func scanUserReadModel(row pgx.Row) (*ports.UserReadModel, error) {
	var m ports.UserReadModel
	if err := row.Scan(&m.ID, &m.Email, &m.SignInType, &m.DisplayName, &m.Username,
		&m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

var _ ports.UserReadRepository = (*UserReadRepository)(nil)
