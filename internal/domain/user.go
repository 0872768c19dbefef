package domain

import (
	"time"

	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// SignInType is how the user authenticates with the identity provider.
type SignInType string

const (
	SignInEmail  SignInType = "EMAIL"
	SignInGoogle SignInType = "GOOGLE"
	SignInApple  SignInType = "APPLE"
)

// UserStatus is the user lifecycle state. Transitions are one-directional
// toward DELETED: a deleted user cannot be reactivated.
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserDisabled UserStatus = "DISABLED"
	UserDeleted  UserStatus = "DELETED"
)

// User is the write-side aggregate for a registered account. Every mutation
// increments Version by one and queues exactly one domain event.
type User struct {
	ID          UserID
	Email       Email
	SignInType  SignInType
	ExternalID  string
	DisplayName *string
	Username    *Username
	Status      UserStatus
	Version     int
	CreatedAt   time.Time
	CreatedBy   UserID
	UpdatedAt   time.Time
	UpdatedBy   UserID

	baseVersion int
	eventRecorder
}

// RegisterUser creates a new ACTIVE user at version 1 and queues a
// USER_REGISTERED event. The actor is the user itself for self-registration.
func RegisterUser(id UserID, email Email, signInType SignInType, externalID string, displayName *string, username *Username, actor UserID) *User {
	now := time.Now().UTC()
	u := &User{
		ID:          id,
		Email:       email,
		SignInType:  signInType,
		ExternalID:  externalID,
		DisplayName: displayName,
		Username:    username,
		Status:      UserActive,
		Version:     1,
		CreatedAt:   now,
		CreatedBy:   actor,
		UpdatedAt:   now,
		UpdatedBy:   actor,
		baseVersion: 0,
	}
	u.record(id.UUID, AggregateUser, EventUserRegistered, map[string]interface{}{
		"email":      email.String(),
		"signInType": string(signInType),
	})
	return u
}

// RehydrateUser reconstructs a persisted user. The stored version becomes the
// base for the optimistic-concurrency check on the next save.
func RehydrateUser(id UserID, email Email, signInType SignInType, externalID string, displayName *string, username *Username, status UserStatus, version int, createdAt time.Time, createdBy UserID, updatedAt time.Time, updatedBy UserID) *User {
	return &User{
		ID:          id,
		Email:       email,
		SignInType:  signInType,
		ExternalID:  externalID,
		DisplayName: displayName,
		Username:    username,
		Status:      status,
		Version:     version,
		CreatedAt:   createdAt,
		CreatedBy:   createdBy,
		UpdatedAt:   updatedAt,
		UpdatedBy:   updatedBy,
		baseVersion: version,
	}
}

// BaseVersion is the version the aggregate was loaded with; the repository
// uses it in the conditional update that detects concurrent writers.
func (u *User) BaseVersion() int { return u.baseVersion }

// Update changes displayName and/or username. At least one field must be set.
func (u *User) Update(displayName *string, username *Username, actor UserID) error {
	if u.Status == UserDeleted {
		return apperror.New(apperror.CodeUserAlreadyDeleted, "user is deleted")
	}
	if displayName == nil && username == nil {
		return apperror.New(apperror.CodeNoUpdates, "no updates provided")
	}
	data := map[string]interface{}{}
	if displayName != nil {
		u.DisplayName = displayName
		data["displayName"] = *displayName
	}
	if username != nil {
		u.Username = username
		data["username"] = username.String()
	}
	u.touch(actor)
	u.record(u.ID.UUID, AggregateUser, EventUserUpdated, data)
	return nil
}

// SetEnabled flips the account between ACTIVE and DISABLED.
func (u *User) SetEnabled(enabled bool, actor UserID) error {
	if u.Status == UserDeleted {
		return apperror.New(apperror.CodeUserAlreadyDeleted, "user is deleted")
	}
	target := UserDisabled
	if enabled {
		target = UserActive
	}
	if u.Status == target {
		return apperror.New(apperror.CodeUserStatusUnchanged, "user already has the requested status")
	}
	u.Status = target
	u.touch(actor)
	u.record(u.ID.UUID, AggregateUser, EventUserStatusToggled, map[string]interface{}{
		"status": string(target),
	})
	return nil
}

// Delete marks the user DELETED. Deleting twice is rejected.
func (u *User) Delete(actor UserID) error {
	if u.Status == UserDeleted {
		return apperror.New(apperror.CodeUserAlreadyDeleted, "user is already deleted")
	}
	u.Status = UserDeleted
	u.touch(actor)
	u.record(u.ID.UUID, AggregateUser, EventUserDeleted, map[string]interface{}{})
	return nil
}

func (u *User) touch(actor UserID) {
	u.Version++
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedBy = actor
}
