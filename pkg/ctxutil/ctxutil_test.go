package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestUserID_RoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, ok := UserIDFromCtx(WithUserID(context.Background(), id))
	if !ok || got != id {
		t.Fatalf("UserIDFromCtx() = (%s, %v), want (%s, true)", got, ok, id)
	}
}

func TestUserIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	if _, ok := UserIDFromCtx(WithUserID(context.Background(), uuid.Nil)); ok {
		t.Fatal("nil UUID should not be reported as present")
	}
}

func TestActorFromCtx(t *testing.T) {
	t.Parallel()

	if got := ActorFromCtx(context.Background()); got != nil {
		t.Errorf("anonymous actor = %v, want nil", got)
	}

	id := uuid.New()
	got := ActorFromCtx(WithUserID(context.Background(), id))
	if got == nil || *got != id {
		t.Errorf("ActorFromCtx() = %v, want %s", got, id)
	}
}

func TestUserRole(t *testing.T) {
	t.Parallel()

	if got := UserRoleFromCtx(context.Background()); got != "" {
		t.Errorf("empty context role = %q", got)
	}
	if got := UserRoleFromCtx(WithUserRole(context.Background(), "admin")); got != "admin" {
		t.Errorf("UserRoleFromCtx() = %q, want admin", got)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("empty context request id = %q", got)
	}
	if got := RequestIDFromCtx(WithRequestID(context.Background(), "req-1")); got != "req-1" {
		t.Errorf("RequestIDFromCtx() = %q, want req-1", got)
	}
}
