package group

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/application/validate"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

func newUpdateUC(repo *mockGroupRepo) (*UpdateUserGroup, *captureHandler) {
	dispatcher, captured := newTestDispatcher()
	return NewUpdateUserGroup(authz.NewService(), validate.NewUserGroupValidator(repo), repo, dispatcher), captured
}

func TestUpdateUserGroupSuccess(t *testing.T) {
	existing := savedGroup("ops")
	repo := newMockGroupRepo(existing)
	uc, captured := newUpdateUC(repo)

	name := "platform-ops"
	err := uc.Execute(context.Background(), UpdateUserGroupInput{
		ID:   existing.ID.String(),
		Name: &name,
	}, asCaller(domain.RoleManager))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if existing.Name != "platform-ops" {
		t.Errorf("name = %q, want platform-ops", existing.Name)
	}
	if len(repo.saved) != 1 {
		t.Errorf("saved %d groups, want 1", len(repo.saved))
	}
	if len(captured.events) != 1 || captured.events[0].Type != domain.EventUserGroupUpdated {
		t.Fatalf("dispatched events = %+v, want one USER_GROUP_UPDATED", captured.events)
	}
}

func TestUpdateUserGroupErrors(t *testing.T) {
	existing := savedGroup("ops")
	name := "x"

	tests := []struct {
		name   string
		input  UpdateUserGroupInput
		appCtx domain.AppContext
		want   apperror.Code
	}{
		{"anonymous", UpdateUserGroupInput{ID: existing.ID.String(), Name: &name}, domain.AppContext{}, apperror.CodeUnauthorized},
		{"viewer", UpdateUserGroupInput{ID: existing.ID.String(), Name: &name}, asCaller(domain.RoleViewer), apperror.CodeForbidden},
		{"no updates", UpdateUserGroupInput{ID: existing.ID.String()}, asCaller(domain.RoleAdmin), apperror.CodeNoUpdates},
		{"bad uuid", UpdateUserGroupInput{ID: "nope", Name: &name}, asCaller(domain.RoleAdmin), apperror.CodeInvalidUUID},
		{"missing group", UpdateUserGroupInput{ID: uuid.NewString(), Name: &name}, asCaller(domain.RoleAdmin), apperror.CodeUserGroupNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUpdateUC(newMockGroupRepo(existing))
			err := uc.Execute(context.Background(), tt.input, tt.appCtx)
			if apperror.CodeOf(err) != tt.want {
				t.Fatalf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestDeleteUserGroup(t *testing.T) {
	existing := savedGroup("ops")
	repo := newMockGroupRepo(existing)
	dispatcher, captured := newTestDispatcher()
	uc := NewDeleteUserGroup(authz.NewService(), validate.NewUserGroupValidator(repo), repo, dispatcher)

	if err := uc.Execute(context.Background(), DeleteUserGroupInput{ID: existing.ID.String()}, asCaller(domain.RoleManager)); apperror.CodeOf(err) != apperror.CodeForbidden {
		t.Fatalf("manager should not delete groups, got %v", err)
	}

	err := uc.Execute(context.Background(), DeleteUserGroupInput{ID: existing.ID.String()}, asCaller(domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Errorf("deleted %d groups, want 1", len(repo.deleted))
	}
	if len(captured.events) != 1 || captured.events[0].Type != domain.EventUserGroupDeleted {
		t.Fatalf("dispatched events = %+v, want one USER_GROUP_DELETED", captured.events)
	}

	err = uc.Execute(context.Background(), DeleteUserGroupInput{ID: existing.ID.String()}, asCaller(domain.RoleAdmin))
	if apperror.CodeOf(err) != apperror.CodeUserGroupNotFound {
		t.Fatalf("second delete err = %v, want USER_GROUP_NOT_FOUND", err)
	}
}

func TestGetUserGroup(t *testing.T) {
	id := uuid.NewString()
	reads := &mockGroupReads{model: &ports.UserGroupReadModel{ID: id, Name: "ops", RoleCount: 2, MemberCount: 5}}
	uc := NewGetUserGroup(authz.NewService(), reads)

	got, err := uc.Execute(context.Background(), GetUserGroupInput{ID: id}, asCaller(domain.RoleViewer))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Name != "ops" || got.RoleCount != 2 || got.MemberCount != 5 {
		t.Errorf("got %+v", got)
	}

	missing := NewGetUserGroup(authz.NewService(), &mockGroupReads{})
	if _, err := missing.Execute(context.Background(), GetUserGroupInput{ID: uuid.NewString()}, asCaller(domain.RoleAdmin)); apperror.CodeOf(err) != apperror.CodeUserGroupNotFound {
		t.Fatalf("err = %v, want USER_GROUP_NOT_FOUND", err)
	}
}
