package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatekit/gatekit/internal/application/ports"
)

func TestHTTPEmitterEmit(t *testing.T) {
	var (
		gotPayload ports.DomainEventPayload
		gotAPIKey  string
		gotType    string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-API-Key")
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithClient(srv.Client()), WithHeader("X-API-Key", "hook-key"))
	err := e.Emit(context.Background(), ports.DomainEventPayload{
		EventID:       "ev-1",
		AggregateID:   "agg-1",
		AggregateName: "User",
		Type:          "USER_REGISTERED",
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if gotPayload.EventID != "ev-1" || gotPayload.Type != "USER_REGISTERED" {
		t.Errorf("delivered payload = %+v", gotPayload)
	}
	if gotAPIKey != "hook-key" {
		t.Errorf("X-API-Key = %q", gotAPIKey)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
}

func TestHTTPEmitterNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewHTTPEmitter(srv.URL, WithClient(srv.Client()))
	if err := e.Emit(context.Background(), ports.DomainEventPayload{EventID: "ev-1"}); err == nil {
		t.Fatal("non-2xx response not surfaced as an error")
	}
}
