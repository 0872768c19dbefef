package user

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

func newToggleUC(repo *mockUserRepo, provider *mockProvider) (*ToggleUserStatus, *captureHandler) {
	dispatcher, captured := newTestDispatcher()
	uc := NewToggleUserStatus(authz.NewService(), validate.NewUserValidator(repo), repo, provider, dispatcher, zerolog.Nop())
	return uc, captured
}

func TestToggleUserStatusDisable(t *testing.T) {
	existing := activeUser("jane@example.com")
	repo := newMockUserRepo(existing)
	provider := &mockProvider{}
	uc, captured := newToggleUC(repo, provider)

	err := uc.Execute(context.Background(), ToggleUserStatusInput{
		ID:      existing.ID.String(),
		Enabled: false,
	}, asCaller(domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if existing.Status != domain.UserDisabled {
		t.Errorf("status = %s, want DISABLED", existing.Status)
	}
	if len(provider.disabled) != 1 || provider.disabled[0] != existing.ExternalID {
		t.Errorf("provider.DisableUser calls = %v", provider.disabled)
	}
	if len(provider.enabled) != 0 {
		t.Error("EnableUser should not be called")
	}
	if len(captured.events) != 1 || captured.events[0].Type != domain.EventUserStatusToggled {
		t.Fatalf("dispatched events = %+v, want one USER_STATUS_TOGGLED", captured.events)
	}
}

func TestToggleUserStatusUnchanged(t *testing.T) {
	existing := activeUser("jane@example.com")
	repo := newMockUserRepo(existing)
	uc, _ := newToggleUC(repo, &mockProvider{})

	err := uc.Execute(context.Background(), ToggleUserStatusInput{
		ID:      existing.ID.String(),
		Enabled: true,
	}, asCaller(domain.RoleManager))
	if apperror.CodeOf(err) != apperror.CodeUserStatusUnchanged {
		t.Fatalf("err = %v, want USER_STATUS_UNCHANGED", err)
	}
	if len(repo.saved) != 0 {
		t.Error("nothing should be saved for a same-state toggle")
	}
}

func TestToggleUserStatusProviderFailureAfterCommit(t *testing.T) {
	existing := activeUser("jane@example.com")
	repo := newMockUserRepo(existing)
	provider := &mockProvider{disableErr: errors.New("provider down")}
	uc, captured := newToggleUC(repo, provider)

	err := uc.Execute(context.Background(), ToggleUserStatusInput{
		ID:      existing.ID.String(),
		Enabled: false,
	}, asCaller(domain.RoleAdmin))
	if apperror.CodeOf(err) != apperror.CodeInternal {
		t.Fatalf("err = %v, want INTERNAL_ERROR", err)
	}
	// The local mutation is already committed and dispatched.
	if len(repo.saved) != 1 {
		t.Error("local save should have happened before the provider call")
	}
	if len(captured.events) != 1 {
		t.Error("events should have been dispatched before the provider call")
	}
}

func TestToggleUserStatusDeletedUser(t *testing.T) {
	deleted := activeUser("gone@example.com")
	_ = deleted.Delete(deleted.ID)
	deleted.TakeEvents()
	repo := newMockUserRepo(deleted)
	uc, _ := newToggleUC(repo, &mockProvider{})

	err := uc.Execute(context.Background(), ToggleUserStatusInput{
		ID:      deleted.ID.String(),
		Enabled: true,
	}, asCaller(domain.RoleAdmin))
	if apperror.CodeOf(err) != apperror.CodeUserAlreadyDeleted {
		t.Fatalf("err = %v, want USER_ALREADY_DELETED", err)
	}
}
