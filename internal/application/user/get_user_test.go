package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gatekit/gatekit/internal/application/authz"
	"github.com/gatekit/gatekit/internal/application/ports"
	"github.com/gatekit/gatekit/internal/domain"
	"github.com/gatekit/gatekit/internal/domain/apperror"
)

func TestGetUserSuccess(t *testing.T) {
	id := uuid.NewString()
	reads := &mockReadRepo{model: &ports.UserReadModel{ID: id, Email: "jane@example.com"}}
	uc := NewGetUser(authz.NewService(), reads)

	got, err := uc.Execute(context.Background(), GetUserInput{ID: id}, asCaller(domain.RoleViewer))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.ID != id || got.Email != "jane@example.com" {
		t.Errorf("got %+v", got)
	}
}

func TestGetUserErrors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		appCtx domain.AppContext
		want   apperror.Code
	}{
		{"anonymous", uuid.NewString(), domain.AppContext{}, apperror.CodeUnauthorized},
		{"bad uuid", "not-a-uuid", asCaller(domain.RoleAdmin), apperror.CodeInvalidUUID},
		{"missing user", uuid.NewString(), asCaller(domain.RoleAdmin), apperror.CodeUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewGetUser(authz.NewService(), &mockReadRepo{})
			_, err := uc.Execute(context.Background(), GetUserInput{ID: tt.id}, tt.appCtx)
			if apperror.CodeOf(err) != tt.want {
				t.Fatalf("err = %v, want %s", err, tt.want)
			}
		})
	}
}
