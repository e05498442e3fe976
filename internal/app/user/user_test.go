package user

import (
	"context"
	"testing"
)

func TestCurrentUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	if CurrentUser(ctx) != nil {
		t.Fatalf("expected anonymous context")
	}

	u := &User{ID: "u1", Name: "Reed"}
	ctx = WithCurrentUser(ctx, u)
	if got := CurrentUser(ctx); got != u {
		t.Fatalf("expected %v, got %v", u, got)
	}
}

func TestWithCurrentUserNilStaysAnonymous(t *testing.T) {
	ctx := WithCurrentUser(context.Background(), nil)
	if CurrentUser(ctx) != nil {
		t.Fatalf("expected nil user to leave context anonymous")
	}
}
