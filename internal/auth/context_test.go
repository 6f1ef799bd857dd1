package auth

import (
	"context"
	"testing"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{UserID: 42})

	id, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if id.UserID != 42 {
		t.Errorf("user id = %d, want 42", id.UserID)
	}
	if got := UserID(ctx); got != 42 {
		t.Errorf("UserID = %d, want 42", got)
	}
}

func TestMissingIdentity(t *testing.T) {
	ctx := context.Background()

	if _, ok := FromContext(ctx); ok {
		t.Error("expected no identity in empty context")
	}
	if got := UserID(ctx); got != 0 {
		t.Errorf("UserID = %d, want 0", got)
	}
}
