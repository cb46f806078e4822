package store

import (
	"testing"
	"time"
)

func TestCreateSubscriptionUpsertsOnEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "kim@example.com")
	ps := NewPushStore(db)

	sub, err := ps.CreateSubscription(user.ID, "https://push.example/abc", "p256dh-1", "auth-1", "phone")
	if err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	// Re-subscribing the same endpoint refreshes keys instead of failing.
	again, err := ps.CreateSubscription(user.ID, "https://push.example/abc", "p256dh-2", "auth-2", "phone")
	if err != nil {
		t.Fatalf("re-create subscription: %v", err)
	}
	if again.ID != sub.ID {
		t.Errorf("upsert created new row: id %d, want %d", again.ID, sub.ID)
	}
	if again.P256dhKey != "p256dh-2" {
		t.Errorf("p256dh = %q, want refreshed %q", again.P256dhKey, "p256dh-2")
	}

	subs, err := ps.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("subscriptions = %d, want 1", len(subs))
	}
}

func TestListActiveSpansUsers(t *testing.T) {
	db := setupTestDB(t)
	kim := createTestUser(t, db, "kim@example.com")
	lee := createTestUser(t, db, "lee@example.com")
	ps := NewPushStore(db)

	for _, sub := range []struct {
		userID   int64
		endpoint string
	}{
		{kim.ID, "https://push.example/kim-phone"},
		{kim.ID, "https://push.example/kim-laptop"},
		{lee.ID, "https://push.example/lee-phone"},
	} {
		if _, err := ps.CreateSubscription(sub.userID, sub.endpoint, "p", "a", ""); err != nil {
			t.Fatalf("create subscription: %v", err)
		}
	}

	subs, err := ps.ListActive()
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(subs) != 3 {
		t.Errorf("active subscriptions = %d, want 3", len(subs))
	}
}

func TestDeleteByEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "kim@example.com")
	ps := NewPushStore(db)

	if _, err := ps.CreateSubscription(user.ID, "https://push.example/dead", "p", "a", ""); err != nil {
		t.Fatalf("create subscription: %v", err)
	}
	if err := ps.DeleteByEndpoint("https://push.example/dead"); err != nil {
		t.Fatalf("delete by endpoint: %v", err)
	}

	sub, err := ps.GetByEndpoint("https://push.example/dead")
	if err != nil {
		t.Fatalf("get by endpoint: %v", err)
	}
	if sub != nil {
		t.Error("deleted subscription still present")
	}
}

func TestTouchLastUsed(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "kim@example.com")
	ps := NewPushStore(db)

	if _, err := ps.CreateSubscription(user.ID, "https://push.example/abc", "p", "a", ""); err != nil {
		t.Fatalf("create subscription: %v", err)
	}

	stamp := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := ps.TouchLastUsed("https://push.example/abc", stamp); err != nil {
		t.Fatalf("touch: %v", err)
	}

	sub, err := ps.GetByEndpoint("https://push.example/abc")
	if err != nil {
		t.Fatalf("get by endpoint: %v", err)
	}
	if !sub.LastUsedAt.Equal(stamp) {
		t.Errorf("last_used_at = %v, want %v", sub.LastUsedAt, stamp)
	}
}
