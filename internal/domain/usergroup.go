package domain

import (
	"time"

	"github.com/gatekit/gatekit/internal/domain/apperror"
)

// UserGroup is the aggregate tying users to roles. Role and member
// associations are held as ids only; the repositories resolve them.
type UserGroup struct {
	ID          GroupID
	Name        string
	Description *string
	RoleIDs     []RoleID
	MemberIDs   []UserID
	Version     int
	CreatedAt   time.Time
	CreatedBy   UserID
	UpdatedAt   time.Time
	UpdatedBy   UserID

	baseVersion int
	eventRecorder
}

// NewUserGroup creates a group at version 1 and queues USER_GROUP_CREATED.
// The creator actor id is required for auditing.
func NewUserGroup(id GroupID, name string, description *string, createdBy UserID) *UserGroup {
	now := time.Now().UTC()
	g := &UserGroup{
		ID:          id,
		Name:        name,
		Description: description,
		Version:     1,
		CreatedAt:   now,
		CreatedBy:   createdBy,
		UpdatedAt:   now,
		UpdatedBy:   createdBy,
		baseVersion: 0,
	}
	g.record(id.UUID, AggregateUserGroup, EventUserGroupCreated, map[string]interface{}{
		"name": name,
	})
	return g
}

// RehydrateUserGroup reconstructs a persisted group.
func RehydrateUserGroup(id GroupID, name string, description *string, roleIDs []RoleID, memberIDs []UserID, version int, createdAt time.Time, createdBy UserID, updatedAt time.Time, updatedBy UserID) *UserGroup {
	return &UserGroup{
		ID:          id,
		Name:        name,
		Description: description,
		RoleIDs:     roleIDs,
		MemberIDs:   memberIDs,
		Version:     version,
		CreatedAt:   createdAt,
		CreatedBy:   createdBy,
		UpdatedAt:   updatedAt,
		UpdatedBy:   updatedBy,
		baseVersion: version,
	}
}

// BaseVersion is the version the aggregate was loaded with.
func (g *UserGroup) BaseVersion() int { return g.baseVersion }

// Update changes name and/or description. At least one field must be set.
func (g *UserGroup) Update(name *string, description *string, actor UserID) error {
	if name == nil && description == nil {
		return apperror.New(apperror.CodeNoUpdates, "no updates provided")
	}
	data := map[string]interface{}{}
	if name != nil {
		g.Name = *name
		data["name"] = *name
	}
	if description != nil {
		g.Description = description
		data["description"] = *description
	}
	g.touch(actor)
	g.record(g.ID.UUID, AggregateUserGroup, EventUserGroupUpdated, data)
	return nil
}

// AddRole grants a role to every member of the group.
func (g *UserGroup) AddRole(roleID RoleID, actor UserID) error {
	if g.hasRole(roleID) {
		return apperror.New(apperror.CodeRoleAlreadyAssigned, "role already assigned to group")
	}
	g.RoleIDs = append(g.RoleIDs, roleID)
	g.touch(actor)
	g.record(g.ID.UUID, AggregateUserGroup, EventUserGroupRoleAdded, map[string]interface{}{
		"roleId": roleID.String(),
	})
	return nil
}

// RemoveRole revokes a role from the group.
func (g *UserGroup) RemoveRole(roleID RoleID, actor UserID) error {
	if !g.hasRole(roleID) {
		return apperror.New(apperror.CodeRoleNotAssigned, "role not assigned to group")
	}
	kept := g.RoleIDs[:0]
	for _, id := range g.RoleIDs {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	g.RoleIDs = kept
	g.touch(actor)
	g.record(g.ID.UUID, AggregateUserGroup, EventUserGroupRoleRemoved, map[string]interface{}{
		"roleId": roleID.String(),
	})
	return nil
}

// AddMember adds a user to the group.
func (g *UserGroup) AddMember(userID UserID, actor UserID) error {
	if g.hasMember(userID) {
		return apperror.New(apperror.CodeUserAlreadyMember, "user is already a member of the group")
	}
	g.MemberIDs = append(g.MemberIDs, userID)
	g.touch(actor)
	g.record(g.ID.UUID, AggregateUserGroup, EventUserGroupMemberAdded, map[string]interface{}{
		"userId": userID.String(),
	})
	return nil
}

// RemoveMember removes a user from the group.
func (g *UserGroup) RemoveMember(userID UserID, actor UserID) error {
	if !g.hasMember(userID) {
		return apperror.New(apperror.CodeUserNotMember, "user is not a member of the group")
	}
	kept := g.MemberIDs[:0]
	for _, id := range g.MemberIDs {
		if id != userID {
			kept = append(kept, id)
		}
	}
	g.MemberIDs = kept
	g.touch(actor)
	g.record(g.ID.UUID, AggregateUserGroup, EventUserGroupMemberRemoved, map[string]interface{}{
		"userId": userID.String(),
	})
	return nil
}

// Delete queues USER_GROUP_DELETED. The repository removes the row.
func (g *UserGroup) Delete(actor UserID) {
	g.touch(actor)
	g.record(g.ID.UUID, AggregateUserGroup, EventUserGroupDeleted, map[string]interface{}{
		"name": g.Name,
	})
}

func (g *UserGroup) hasRole(roleID RoleID) bool {
	for _, id := range g.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

func (g *UserGroup) hasMember(userID UserID) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (g *UserGroup) touch(actor UserID) {
	g.Version++
	g.UpdatedAt = time.Now().UTC()
	g.UpdatedBy = actor
}
