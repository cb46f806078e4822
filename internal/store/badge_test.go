package store

import (
	"testing"

	"github.com/jklemm/hearthside/internal/model"
)

func TestGiveAndListBadges(t *testing.T) {
	db := setupTestDB(t)
	kim := createTestUser(t, db, "kim@example.com")
	lee := createTestUser(t, db, "lee@example.com")
	bs := NewBadgeStore(db)

	badge, err := bs.Give(kim.ID, lee.ID, model.BadgeKindStar, "Great job on the dishes!")
	if err != nil {
		t.Fatalf("give badge: %v", err)
	}
	if badge.Kind != model.BadgeKindStar {
		t.Errorf("kind = %q, want %q", badge.Kind, model.BadgeKindStar)
	}

	received, err := bs.ListReceived(lee.ID)
	if err != nil {
		t.Fatalf("list received: %v", err)
	}
	if len(received) != 1 || received[0].FromUserID != kim.ID {
		t.Errorf("received = %+v, want one badge from kim", received)
	}

	given, err := bs.ListGiven(kim.ID)
	if err != nil {
		t.Fatalf("list given: %v", err)
	}
	if len(given) != 1 {
		t.Errorf("given = %d, want 1", len(given))
	}

	if got, err := bs.ListReceived(kim.ID); err != nil || len(got) != 0 {
		t.Errorf("kim received = %v (err %v), want none", got, err)
	}
}
