package model

import "time"

// Notification type constants, used as payload data types and guard kinds.
const (
	NotifTypeReminder      = "reminder"
	NotifTypeTravelPrep    = "travel_prep"
	NotifTypeEncouragement = "encouragement"
)

// PushSubscription is one registered web-push endpoint for one of a
// user's devices. The endpoint is unique across the whole registry.
type PushSubscription struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Endpoint   string    `json:"endpoint"`
	P256dhKey  string    `json:"p256dh_key"`
	AuthKey    string    `json:"auth_key"`
	DeviceName string    `json:"device_name"`
	LastUsedAt time.Time `json:"last_used_at"`
	CreatedAt  time.Time `json:"created_at"`
}
