package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/gatekit/gatekit/internal/domain/apperror"
)

func newTestGroup(t *testing.T) (*UserGroup, UserID) {
	t.Helper()
	actor := NewUserID(uuid.New())
	g := NewUserGroup(NewGroupID(uuid.New()), "operators", nil, actor)
	g.TakeEvents()
	return g, actor
}

func TestNewUserGroup(t *testing.T) {
	actor := NewUserID(uuid.New())
	g := NewUserGroup(NewGroupID(uuid.New()), "operators", nil, actor)
	if g.Version != 1 {
		t.Errorf("Version = %d, want 1", g.Version)
	}
	events := g.TakeEvents()
	if len(events) != 1 || events[0].Type != EventUserGroupCreated {
		t.Fatalf("events = %+v, want one USER_GROUP_CREATED", events)
	}
}

func TestUserGroupUpdateRequiresChanges(t *testing.T) {
	g, actor := newTestGroup(t)
	err := g.Update(nil, nil, actor)
	if !errors.Is(err, apperror.New(apperror.CodeNoUpdates, "")) {
		t.Fatalf("err = %v, want NO_UPDATES", err)
	}
	name := "admins"
	if err := g.Update(&name, nil, actor); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if g.Name != "admins" || g.Version != 2 {
		t.Errorf("group = %q v%d, want admins v2", g.Name, g.Version)
	}
}

func TestUserGroupRoles(t *testing.T) {
	g, actor := newTestGroup(t)
	roleID := NewRoleID(uuid.New())

	if err := g.AddRole(roleID, actor); err != nil {
		t.Fatalf("AddRole: %v", err)
	}
	err := g.AddRole(roleID, actor)
	if !errors.Is(err, apperror.New(apperror.CodeRoleAlreadyAssigned, "")) {
		t.Fatalf("duplicate AddRole err = %v, want ROLE_ALREADY_ASSIGNED", err)
	}
	if err := g.RemoveRole(roleID, actor); err != nil {
		t.Fatalf("RemoveRole: %v", err)
	}
	err = g.RemoveRole(roleID, actor)
	if !errors.Is(err, apperror.New(apperror.CodeRoleNotAssigned, "")) {
		t.Fatalf("missing RemoveRole err = %v, want ROLE_NOT_ASSIGNED", err)
	}
	if len(g.RoleIDs) != 0 {
		t.Errorf("RoleIDs = %v, want empty", g.RoleIDs)
	}

	events := g.TakeEvents()
	if len(events) != 2 {
		t.Fatalf("queued %d events, want 2", len(events))
	}
	if events[0].Type != EventUserGroupRoleAdded || events[1].Type != EventUserGroupRoleRemoved {
		t.Errorf("event types = %s, %s", events[0].Type, events[1].Type)
	}
}

func TestUserGroupMembers(t *testing.T) {
	g, actor := newTestGroup(t)
	userID := NewUserID(uuid.New())

	if err := g.AddMember(userID, actor); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	err := g.AddMember(userID, actor)
	if !errors.Is(err, apperror.New(apperror.CodeUserAlreadyMember, "")) {
		t.Fatalf("duplicate AddMember err = %v, want USER_ALREADY_MEMBER", err)
	}
	if err := g.RemoveMember(userID, actor); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	err = g.RemoveMember(userID, actor)
	if !errors.Is(err, apperror.New(apperror.CodeUserNotMember, "")) {
		t.Fatalf("missing RemoveMember err = %v, want USER_NOT_MEMBER", err)
	}
}

func TestUserGroupDeleteQueuesEvent(t *testing.T) {
	g, actor := newTestGroup(t)
	g.Delete(actor)
	events := g.TakeEvents()
	if len(events) != 1 || events[0].Type != EventUserGroupDeleted {
		t.Fatalf("events = %+v, want one USER_GROUP_DELETED", events)
	}
}

func TestUserGroupEveryMutationIncrementsVersion(t *testing.T) {
	g, actor := newTestGroup(t)
	start := g.Version
	roleID := NewRoleID(uuid.New())
	userID := NewUserID(uuid.New())

	_ = g.AddRole(roleID, actor)
	_ = g.AddMember(userID, actor)
	_ = g.RemoveMember(userID, actor)
	if g.Version != start+3 {
		t.Errorf("Version = %d, want %d", g.Version, start+3)
	}
	if g.PendingEvents() != 3 {
		t.Errorf("PendingEvents = %d, want 3", g.PendingEvents())
	}
}
