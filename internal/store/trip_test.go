package store

import (
	"testing"
	"time"
)

func TestTripCRUD(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "kim@example.com")
	ts := NewTripStore(db)

	start := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	trip, err := ts.Create(user.ID, "Jeju", "Jeju Island", start, nil)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if !trip.StartDate.Equal(start) {
		t.Errorf("start date = %v, want %v", trip.StartDate, start)
	}

	trips, err := ts.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list trips: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("trips = %d, want 1", len(trips))
	}

	if err := ts.Delete(trip.ID, user.ID); err != nil {
		t.Fatalf("delete trip: %v", err)
	}
	got, err := ts.Get(trip.ID, user.ID)
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}
	if got != nil {
		t.Error("deleted trip still present")
	}
}

func TestListAllSpansUsers(t *testing.T) {
	db := setupTestDB(t)
	kim := createTestUser(t, db, "kim@example.com")
	lee := createTestUser(t, db, "lee@example.com")
	ts := NewTripStore(db)

	start := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	if _, err := ts.Create(kim.ID, "Jeju", "", start, nil); err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if _, err := ts.Create(lee.ID, "Busan", "", start.AddDate(0, 1, 0), nil); err != nil {
		t.Fatalf("create trip: %v", err)
	}

	trips, err := ts.ListAll()
	if err != nil {
		t.Fatalf("list all trips: %v", err)
	}
	if len(trips) != 2 {
		t.Errorf("trips = %d, want 2", len(trips))
	}
}

func TestPackingItems(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "kim@example.com")
	ts := NewTripStore(db)

	trip, err := ts.Create(user.ID, "Jeju", "", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	item, err := ts.AddPackingItem(trip.ID, "Sunscreen")
	if err != nil {
		t.Fatalf("add packing item: %v", err)
	}
	if item.Packed {
		t.Error("new item already packed")
	}

	if err := ts.TogglePacked(item.ID, trip.ID); err != nil {
		t.Fatalf("toggle packed: %v", err)
	}
	items, err := ts.ListPackingItems(trip.ID)
	if err != nil {
		t.Fatalf("list packing items: %v", err)
	}
	if len(items) != 1 || !items[0].Packed {
		t.Errorf("items = %+v, want one packed item", items)
	}

	if err := ts.DeletePackingItem(item.ID, trip.ID); err != nil {
		t.Fatalf("delete packing item: %v", err)
	}
	items, err = ts.ListPackingItems(trip.ID)
	if err != nil {
		t.Fatalf("list packing items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
}
