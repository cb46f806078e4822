package auth

import (
	"context"
	"testing"
)

func TestWithAuthRoundTrip(t *testing.T) {
	ctx := WithAuth(context.Background(), AuthContext{UserID: 42, SessionID: 9})

	ac, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext: not found")
	}
	if ac.UserID != 42 {
		t.Errorf("UserID = %d, want 42", ac.UserID)
	}
	if ac.SessionID != 9 {
		t.Errorf("SessionID = %d, want 9", ac.SessionID)
	}
}

func TestEmptyContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("FromContext on empty context reported found")
	}
	if got := UserID(context.Background()); got != 0 {
		t.Errorf("UserID on empty context = %d, want 0", got)
	}
}
