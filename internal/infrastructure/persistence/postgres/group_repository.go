package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

const (
	selectGroupSQL = `SELECT id, name, description, version, created_at, created_by, updated_at, updated_by
		FROM user_groups WHERE id = $1`

	insertGroupSQL = `INSERT INTO user_groups
		(id, name, description, version, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateGroupSQL = `UPDATE user_groups SET name = $1, description = $2, version = $3,
		updated_at = $4, updated_by = $5 WHERE id = $6 AND version = $7`
)

// GroupRepository is the write-side pgx repository for the UserGroup
// aggregate. Role and member associations live in join tables that are
// rewritten on every save inside the same transaction as the version check.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates the write repository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// FindByID returns the aggregate with its role and member ids, or nil when
// absent.
func (r *GroupRepository) FindByID(ctx context.Context, id domain.GroupID) (*domain.UserGroup, error) {
	var (
		gid, createdBy, updatedBy uuid.UUID
		name                      string
		description               *string
		version                   int
		createdAt, updatedAt      time.Time
	)
	err := r.pool.QueryRow(ctx, selectGroupSQL, id.UUID).Scan(
		&gid, &name, &description, &version, &createdAt, &createdBy, &updatedAt, &updatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	roleIDs, err := r.loadRoleIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	memberIDs, err := r.loadMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.RehydrateUserGroup(
		domain.NewGroupID(gid), name, description, roleIDs, memberIDs, version,
		createdAt, domain.NewUserID(createdBy), updatedAt, domain.NewUserID(updatedBy),
	), nil
}

// Save persists the aggregate and rewrites its associations transactionally.
// A stale base version rolls back with OUTDATED_VERSION.
func (r *GroupRepository) Save(ctx context.Context, group *domain.UserGroup) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if group.BaseVersion() == 0 {
		if _, err := tx.Exec(ctx, insertGroupSQL,
			group.ID.UUID, group.Name, group.Description, group.Version,
			group.CreatedAt, group.CreatedBy.UUID, group.UpdatedAt, group.UpdatedBy.UUID); err != nil {
			return err
		}
	} else {
		tag, err := tx.Exec(ctx, updateGroupSQL,
			group.Name, group.Description, group.Version,
			group.UpdatedAt, group.UpdatedBy.UUID, group.ID.UUID, group.BaseVersion())
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.New(apperror.CodeOutdatedVersion, "user group was modified concurrently").
				WithData(map[string]interface{}{"id": group.ID.String()})
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_group_roles WHERE user_group_id = $1`, group.ID.UUID); err != nil {
		return err
	}
	for _, roleID := range group.RoleIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_group_roles (user_group_id, role_id) VALUES ($1, $2)`,
			group.ID.UUID, roleID.UUID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_group_members WHERE user_group_id = $1`, group.ID.UUID); err != nil {
		return err
	}
	for _, memberID := range group.MemberIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_group_members (user_group_id, user_id) VALUES ($1, $2)`,
			group.ID.UUID, memberID.UUID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes the group row; the join tables cascade.
func (r *GroupRepository) Delete(ctx context.Context, group *domain.UserGroup) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_groups WHERE id = $1 AND version = $2`,
		group.ID.UUID, group.BaseVersion())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.New(apperror.CodeOutdatedVersion, "user group was modified concurrently").
			WithData(map[string]interface{}{"id": group.ID.String()})
	}
	return nil
}

func (r *GroupRepository) loadRoleIDs(ctx context.Context, id domain.GroupID) ([]domain.RoleID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT role_id FROM user_group_roles WHERE user_group_id = $1 ORDER BY role_id`, id.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.RoleID
	for rows.Next() {
		var rid uuid.UUID
		if err := rows.Scan(&rid); err != nil {
			return nil, err
		}
		out = append(out, domain.NewRoleID(rid))
	}
	return out, rows.Err()
}

func (r *GroupRepository) loadMemberIDs(ctx context.Context, id domain.GroupID) ([]domain.UserID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM user_group_members WHERE user_group_id = $1 ORDER BY user_id`, id.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.UserID
	for rows.Next() {
		var uid uuid.UUID
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		out = append(out, domain.NewUserID(uid))
	}
	return out, rows.Err()
}

var _ ports.UserGroupWriteRepository = (*GroupRepository)(nil)
