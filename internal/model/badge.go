package model

import "time"

// Badge kind constants
const (
	BadgeKindStar     = "star"
	BadgeKindHeart    = "heart"
	BadgeKindTrophy   = "trophy"
	BadgeKindHighFive = "high_five"
)

type Badge struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
