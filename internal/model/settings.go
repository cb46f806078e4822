package model

import "time"

// NotificationSettings holds one user's notification rule configuration.
// A row is created with these defaults the first time the user's settings
// are read.
type NotificationSettings struct {
	UserID               int64     `json:"user_id"`
	RemindersEnabled     bool      `json:"reminders_enabled"`
	ReminderTimes        []string  `json:"reminder_times"` // "HH:MM", local time
	TravelEnabled        bool      `json:"travel_enabled"`
	TravelLeadDays       int       `json:"travel_lead_days"`
	EncouragementEnabled bool      `json:"encouragement_enabled"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DefaultNotificationSettings returns the settings a user starts with.
func DefaultNotificationSettings(userID int64) NotificationSettings {
	return NotificationSettings{
		UserID:               userID,
		RemindersEnabled:     true,
		ReminderTimes:        []string{"09:00"},
		TravelEnabled:        true,
		TravelLeadDays:       3,
		EncouragementEnabled: true,
	}
}
