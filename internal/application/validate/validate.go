package validate

import (
	"context"

	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// UserValidator loads users and checks lifecycle state, so command handlers
// get the aggregate and the guard in one call.
type UserValidator struct {
	users ports.UserWriteRepository
}

// NewUserValidator creates a user validator backed by the write repository.
func NewUserValidator(users ports.UserWriteRepository) *UserValidator {
	return &UserValidator{users: users}
}

// MustExist loads the user or fails with USER_NOT_FOUND.
func (v *UserValidator) MustExist(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := v.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.New(apperror.CodeUserNotFound, "user not found").
			WithData(map[string]interface{}{"id": id.String()})
	}
	return user, nil
}

// MustExistNotDeleted loads the user and rejects DELETED accounts,
// distinguishing "missing" from "wrong state".
func (v *UserValidator) MustExistNotDeleted(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := v.MustExist(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == domain.UserDeleted {
		return nil, apperror.New(apperror.CodeUserAlreadyDeleted, "user is deleted").
			WithData(map[string]interface{}{"id": id.String()})
	}
	return user, nil
}

// MustBeActive loads the user and requires ACTIVE status.
func (v *UserValidator) MustBeActive(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := v.MustExist(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status != domain.UserActive {
		return nil, apperror.New(apperror.CodeUserNotActive, "user must be active").
			WithData(map[string]interface{}{"id": id.String(), "status": string(user.Status)})
	}
	return user, nil
}

// UserGroupValidator loads user groups for command handlers.
type UserGroupValidator struct {
	groups ports.UserGroupWriteRepository
}

// NewUserGroupValidator creates a group validator backed by the write repository.
func NewUserGroupValidator(groups ports.UserGroupWriteRepository) *UserGroupValidator {
	return &UserGroupValidator{groups: groups}
}

// MustExist loads the group or fails with USER_GROUP_NOT_FOUND.
func (v *UserGroupValidator) MustExist(ctx context.Context, id domain.GroupID) (*domain.UserGroup, error) {
	group, err := v.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.New(apperror.CodeUserGroupNotFound, "user group not found").
			WithData(map[string]interface{}{"id": id.String()})
	}
	return group, nil
}
