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

var groupSortColumns = map[string]string{
	"name":      "g.name",
	"createdAt": "g.created_at",
}

const selectGroupReadSQL = `SELECT g.id, g.name, g.description,
	(SELECT COUNT(*) FROM user_group_roles WHERE user_group_id = g.id) AS role_count,
	(SELECT COUNT(*) FROM user_group_members WHERE user_group_id = g.id) AS member_count,
	g.created_at, g.updated_at
	FROM user_groups g`

// GroupReadRepository serves user-group queries.
type GroupReadRepository struct {
	pool *pgxpool.Pool
}

// NewGroupReadRepository creates the read repository.
func NewGroupReadRepository(pool *pgxpool.Pool) *GroupReadRepository {
	return &GroupReadRepository{pool: pool}
}

// FindByID returns the projection, or nil when absent.
func (r *GroupReadRepository) FindByID(ctx context.Context, id domain.GroupID) (*ports.UserGroupReadModel, error) {
	row := r.pool.QueryRow(ctx, selectGroupReadSQL+` WHERE g.id = $1`, id.UUID)
	m, err := scanGroupReadModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// Find returns a page of groups matching the filter.
func (r *GroupReadRepository) Find(ctx context.Context, filter ports.UserGroupFilter) (ports.Page[ports.UserGroupReadModel], error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		where = append(where, fmt.Sprintf("g.name ILIKE $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, filter.UserID.UUID)
		where = append(where, fmt.Sprintf(
			"EXISTS(SELECT 1 FROM user_group_members m WHERE m.user_group_id = g.id AND m.user_id = $%d)", len(args)))
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	page := ports.Page[ports.UserGroupReadModel]{
		Data:       []ports.UserGroupReadModel{},
		Pagination: ports.Pagination{PageIndex: filter.PageIndex},
	}
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_groups g`+whereClause, args...).Scan(&page.Pagination.Count); err != nil {
		return page, err
	}

	query := fmt.Sprintf(`%s%s ORDER BY %s %s LIMIT %d OFFSET %d`,
		selectGroupReadSQL, whereClause, groupSortColumns[filter.SortField], filter.SortOrder,
		filter.PageSize, filter.PageIndex*filter.PageSize)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return page, err
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanGroupReadModel(rows)
		if err != nil {
			return page, err
		}
		page.Data = append(page.Data, *m)
	}
	return page, rows.Err()
}

func scanGroupReadModel(row pgx.Row) (*ports.UserGroupReadModel, error) {
	var m ports.UserGroupReadModel
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.RoleCount, &m.MemberCount,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

var _ ports.UserGroupReadRepository = (*GroupReadRepository)(nil)
