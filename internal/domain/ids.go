package domain

import (
	"github.com/google/uuid"

	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// ParseUserID parses an RFC-4122 string into a UserID.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, apperror.New(apperror.CodeInvalidUUID, "invalid user id")
	}
	return UserID{UUID: id}, nil
}

// UserIDFromEmail derives a deterministic version-5 UUID from the namespace
// and email, so repeated registrations for the same email produce the same id.
func UserIDFromEmail(namespace uuid.UUID, email Email) UserID {
	return UserID{UUID: uuid.NewSHA1(namespace, []byte(email.String()))}
}

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// IsZero reports whether the id is the zero UUID.
func (u UserID) IsZero() bool { return u.UUID == uuid.UUID{} }

// GroupID is a value object for user-group identity.
type GroupID struct{ uuid.UUID }

// NewGroupID creates a new GroupID from uuid.
func NewGroupID(id uuid.UUID) GroupID { return GroupID{UUID: id} }

// ParseGroupID parses an RFC-4122 string into a GroupID.
func ParseGroupID(s string) (GroupID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return GroupID{}, apperror.New(apperror.CodeInvalidUUID, "invalid user group id")
	}
	return GroupID{UUID: id}, nil
}

// String returns the canonical string form.
func (g GroupID) String() string { return g.UUID.String() }

// RoleID is a value object for role identity.
type RoleID struct{ uuid.UUID }

// NewRoleID creates a new RoleID from uuid.
func NewRoleID(id uuid.UUID) RoleID { return RoleID{UUID: id} }

// ParseRoleID parses an RFC-4122 string into a RoleID.
func ParseRoleID(s string) (RoleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RoleID{}, apperror.New(apperror.CodeInvalidUUID, "invalid role id")
	}
	return RoleID{UUID: id}, nil
}

// String returns the canonical string form.
func (r RoleID) String() string { return r.UUID.String() }
