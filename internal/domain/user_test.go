package domain

import (
	"testing"

	"github.com/google/uuid"
)

func newEmailT(t *testing.T, s string) Email {
	t.Helper()
	email, err := NewEmail(s)
	if err != nil {
		t.Fatalf("NewEmail(%q): %v", s, err)
	}
	return email
}

func newUsernameT(t *testing.T, s string) Username {
	t.Helper()
	un, err := NewUsername(s)
	if err != nil {
		t.Fatalf("NewUsername(%q): %v", s, err)
	}
	return un
}

func newTestUser(t *testing.T) *User {
	t.Helper()
	email := newEmailT(t, "jane@example.com")
	id := UserIDFromEmail(uuid.NameSpaceDNS, email)
	return RegisterUser(id, email, SignInEmail, "ext-1", nil, nil, id)
}

func TestUserIDFromEmailIsDeterministic(t *testing.T) {
	email := newEmailT(t, "jane@example.com")
	a := UserIDFromEmail(uuid.NameSpaceDNS, email)
	b := UserIDFromEmail(uuid.NameSpaceDNS, email)
	if a != b {
		t.Errorf("same email produced different ids: %s vs %s", a, b)
	}
	other := UserIDFromEmail(uuid.NameSpaceDNS, newEmailT(t, "john@example.com"))
	if a == other {
		t.Error("different emails produced the same id")
	}
	otherNS := UserIDFromEmail(uuid.NameSpaceURL, email)
	if a == otherNS {
		t.Error("different namespaces produced the same id")
	}
}

func TestRegisterUser(t *testing.T) {
	u := newTestUser(t)
	if u.Version != 1 {
		t.Errorf("Version = %d, want 1", u.Version)
	}
	if u.BaseVersion() != 0 {
		t.Errorf("BaseVersion = %d, want 0", u.BaseVersion())
	}
	if u.Status != UserActive {
		t.Errorf("Status = %s, want ACTIVE", u.Status)
	}
	events := u.TakeEvents()
	if len(events) != 1 {
		t.Fatalf("queued %d events, want 1", len(events))
	}
	if events[0].Type != EventUserRegistered {
		t.Errorf("event type = %s, want USER_REGISTERED", events[0].Type)
	}
	if events[0].AggregateID != u.ID.UUID {
		t.Error("event aggregate id does not match user id")
	}
	if u.PendingEvents() != 0 {
		t.Error("TakeEvents did not drain the queue")
	}
}

func TestUserUpdate(t *testing.T) {
	u := newTestUser(t)
	u.TakeEvents()
	actor := u.ID

	if err := u.Update(nil, nil, actor); err == nil {
		t.Fatal("Update with no fields should fail")
	}
	if u.Version != 1 {
		t.Errorf("rejected update changed version to %d", u.Version)
	}

	name := "Jane"
	un := newUsernameT(t, "jane.doe")
	if err := u.Update(&name, &un, actor); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if u.Version != 2 {
		t.Errorf("Version = %d, want 2", u.Version)
	}
	if u.DisplayName == nil || *u.DisplayName != "Jane" {
		t.Error("display name not applied")
	}
	if u.Username == nil || u.Username.String() != "jane.doe" {
		t.Error("username not applied")
	}
	events := u.TakeEvents()
	if len(events) != 1 || events[0].Type != EventUserUpdated {
		t.Fatalf("events = %+v, want one USER_UPDATED", events)
	}
}

func TestUserSetEnabled(t *testing.T) {
	u := newTestUser(t)
	u.TakeEvents()
	actor := u.ID

	if err := u.SetEnabled(true, actor); err == nil {
		t.Fatal("enabling an ACTIVE user should fail")
	}
	if err := u.SetEnabled(false, actor); err != nil {
		t.Fatalf("SetEnabled(false): %v", err)
	}
	if u.Status != UserDisabled {
		t.Errorf("Status = %s, want DISABLED", u.Status)
	}
	if err := u.SetEnabled(false, actor); err == nil {
		t.Fatal("disabling a DISABLED user should fail")
	}
	if err := u.SetEnabled(true, actor); err != nil {
		t.Fatalf("SetEnabled(true): %v", err)
	}
	if u.Status != UserActive {
		t.Errorf("Status = %s, want ACTIVE", u.Status)
	}
	events := u.TakeEvents()
	if len(events) != 2 {
		t.Fatalf("queued %d events, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Type != EventUserStatusToggled {
			t.Errorf("event type = %s, want USER_STATUS_TOGGLED", ev.Type)
		}
	}
}

func TestUserDelete(t *testing.T) {
	u := newTestUser(t)
	u.TakeEvents()
	actor := u.ID

	if err := u.Delete(actor); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if u.Status != UserDeleted {
		t.Errorf("Status = %s, want DELETED", u.Status)
	}
	if err := u.Delete(actor); err == nil {
		t.Fatal("deleting twice should fail")
	}
	if err := u.SetEnabled(true, actor); err == nil {
		t.Fatal("re-enabling a deleted user should fail")
	}
	name := "x"
	if err := u.Update(&name, nil, actor); err == nil {
		t.Fatal("updating a deleted user should fail")
	}
}

func TestRehydrateUserBaseVersion(t *testing.T) {
	u := newTestUser(t)
	r := RehydrateUser(u.ID, u.Email, u.SignInType, u.ExternalID, nil, nil,
		UserActive, 4, u.CreatedAt, u.CreatedBy, u.UpdatedAt, u.UpdatedBy)
	if r.BaseVersion() != 4 {
		t.Errorf("BaseVersion = %d, want 4", r.BaseVersion())
	}
	if r.PendingEvents() != 0 {
		t.Error("rehydrated aggregate has queued events")
	}
	name := "Jane"
	if err := r.Update(&name, nil, r.ID); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if r.Version != 5 {
		t.Errorf("Version = %d, want 5", r.Version)
	}
	if r.BaseVersion() != 4 {
		t.Errorf("mutation changed BaseVersion to %d", r.BaseVersion())
	}
}
