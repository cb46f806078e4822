package model

import "time"

type Trip struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Destination string     `json:"destination,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PackingItem struct {
	ID        int64     `json:"id"`
	TripID    int64     `json:"trip_id"`
	Name      string    `json:"name"`
	Packed    bool      `json:"packed"`
	CreatedAt time.Time `json:"created_at"`
}
