package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

const (
	selectUserSQL = `SELECT id, email, sign_in_type, external_id, display_name, username, status, version,
		created_at, created_by, updated_at, updated_by FROM users`

	insertUserSQL = `INSERT INTO users
		(id, email, sign_in_type, external_id, display_name, username, status, version, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	// Conditional update: zero affected rows means a concurrent writer won.
	updateUserSQL = `UPDATE users SET display_name = $1, username = $2, status = $3, version = $4,
		updated_at = $5, updated_by = $6 WHERE id = $7 AND version = $8`

	usernameExistsSQL = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id <> $2)`
)

// UserRepository is the write-side pgx repository for the User aggregate.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates the write repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID returns the aggregate, or nil when absent.
func (r *UserRepository) FindByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.findOne(ctx, selectUserSQL+` WHERE id = $1`, id.UUID)
}

// FindByEmail returns the aggregate, or nil when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	return r.findOne(ctx, selectUserSQL+` WHERE email = $1`, email.String())
}

// FindByUsername returns the aggregate, or nil when absent.
func (r *UserRepository) FindByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	return r.findOne(ctx, selectUserSQL+` WHERE username = $1`, username.String())
}

// UsernameExists reports whether another user already holds the username.
func (r *UserRepository) UsernameExists(ctx context.Context, username domain.Username, excludeID domain.UserID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, usernameExistsSQL, username.String(), excludeID.UUID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Save inserts a new aggregate or applies a version-checked update. A stale
// base version surfaces as OUTDATED_VERSION; email/username unique violations
// become validation errors.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	var username *string
	if user.Username != nil {
		s := user.Username.String()
		username = &s
	}
	if user.BaseVersion() == 0 {
		_, err := r.pool.Exec(ctx, insertUserSQL,
			user.ID.UUID, user.Email.String(), string(user.SignInType), user.ExternalID,
			user.DisplayName, username, string(user.Status), user.Version,
			user.CreatedAt, user.CreatedBy.UUID, user.UpdatedAt, user.UpdatedBy.UUID)
		return translateUserConstraint(err)
	}
	tag, err := r.pool.Exec(ctx, updateUserSQL,
		user.DisplayName, username, string(user.Status), user.Version,
		user.UpdatedAt, user.UpdatedBy.UUID, user.ID.UUID, user.BaseVersion())
	if err != nil {
		return translateUserConstraint(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.New(apperror.CodeOutdatedVersion, "user was modified concurrently").
			WithData(map[string]interface{}{"id": user.ID.String()})
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id, createdBy, updatedBy         uuid.UUID
		email, signInType, extID, status string
		displayName, username            *string
		version                          int
		createdAt, updatedAt             time.Time
	)
	if err := row.Scan(&id, &email, &signInType, &extID, &displayName, &username,
		&status, &version, &createdAt, &createdBy, &updatedAt, &updatedBy); err != nil {
		return nil, err
	}
	em, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	var un *domain.Username
	if username != nil {
		u, err := domain.NewUsername(*username)
		if err != nil {
			return nil, err
		}
		un = &u
	}
	return domain.RehydrateUser(
		domain.NewUserID(id), em, domain.SignInType(signInType), extID,
		displayName, un, domain.UserStatus(status), version,
		createdAt, domain.NewUserID(createdBy), updatedAt, domain.NewUserID(updatedBy),
	), nil
}

// translateUserConstraint maps unique-constraint violations to stable
// validation codes instead of leaking raw storage errors.
func translateUserConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return apperror.New(apperror.CodeEmailAlreadyTaken, "email is already taken")
		case "users_username_key":
			return apperror.New(apperror.CodeUsernameAlreadyTaken, "username is already taken")
		}
	}
	return err
}

var _ ports.UserWriteRepository = (*UserRepository)(nil)
