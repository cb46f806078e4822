package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jklemm/hearthside/internal/model"
)

type TripStore struct {
	db *sql.DB
}

func NewTripStore(db *sql.DB) *TripStore {
	return &TripStore{db: db}
}

const tripCols = `id, user_id, name, destination, start_date, end_date, created_at`

func scanTrip(scanner interface{ Scan(...any) error }) (*model.Trip, error) {
	var t model.Trip
	err := scanner.Scan(&t.ID, &t.UserID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TripStore) Create(userID int64, name, destination string, startDate time.Time, endDate *time.Time) (*model.Trip, error) {
	result, err := s.db.Exec(
		`INSERT INTO trips (user_id, name, destination, start_date, end_date) VALUES (?, ?, ?, ?, ?)`,
		userID, name, destination, startDate.UTC(), endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id, userID)
}

func (s *TripStore) Get(id, userID int64) (*model.Trip, error) {
	row := s.db.QueryRow(`SELECT `+tripCols+` FROM trips WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return t, nil
}

func (s *TripStore) ListByUser(userID int64) ([]model.Trip, error) {
	rows, err := s.db.Query(
		`SELECT `+tripCols+` FROM trips WHERE user_id = ? ORDER BY start_date`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

// ListAll returns every trip, for the notification scheduler.
func (s *TripStore) ListAll() ([]model.Trip, error) {
	rows, err := s.db.Query(`SELECT ` + tripCols + ` FROM trips ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("list all trips: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

func (s *TripStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM trips WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return nil
}

func collectTrips(rows *sql.Rows) ([]model.Trip, error) {
	var trips []model.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

// Packing items

func (s *TripStore) AddPackingItem(tripID int64, name string) (*model.PackingItem, error) {
	result, err := s.db.Exec(
		`INSERT INTO packing_items (trip_id, name) VALUES (?, ?)`,
		tripID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert packing item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var item model.PackingItem
	var packedInt int
	err = s.db.QueryRow(
		`SELECT id, trip_id, name, packed, created_at FROM packing_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.TripID, &item.Name, &packedInt, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get packing item: %w", err)
	}
	item.Packed = packedInt != 0
	return &item, nil
}

func (s *TripStore) ListPackingItems(tripID int64) ([]model.PackingItem, error) {
	rows, err := s.db.Query(
		`SELECT id, trip_id, name, packed, created_at FROM packing_items WHERE trip_id = ? ORDER BY created_at`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("list packing items: %w", err)
	}
	defer rows.Close()

	var items []model.PackingItem
	for rows.Next() {
		var item model.PackingItem
		var packedInt int
		if err := rows.Scan(&item.ID, &item.TripID, &item.Name, &packedInt, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan packing item: %w", err)
		}
		item.Packed = packedInt != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *TripStore) TogglePacked(itemID, tripID int64) error {
	_, err := s.db.Exec(
		`UPDATE packing_items SET packed = NOT packed WHERE id = ? AND trip_id = ?`,
		itemID, tripID,
	)
	if err != nil {
		return fmt.Errorf("toggle packing item: %w", err)
	}
	return nil
}

func (s *TripStore) DeletePackingItem(itemID, tripID int64) error {
	_, err := s.db.Exec(`DELETE FROM packing_items WHERE id = ? AND trip_id = ?`, itemID, tripID)
	if err != nil {
		return fmt.Errorf("delete packing item: %w", err)
	}
	return nil
}
