package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jklemm/hearthside/internal/model"
)

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

const settingsCols = `user_id, reminders_enabled, reminder_times, travel_enabled, travel_lead_days, encouragement_enabled, updated_at`

// GetNotificationSettings returns the user's notification settings,
// creating a row with defaults on first access.
func (s *SettingsStore) GetNotificationSettings(userID int64) (*model.NotificationSettings, error) {
	ns, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	if ns != nil {
		return ns, nil
	}

	defaults := model.DefaultNotificationSettings(userID)
	times, err := json.Marshal(defaults.ReminderTimes)
	if err != nil {
		return nil, fmt.Errorf("marshal reminder times: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO notification_settings (user_id, reminders_enabled, reminder_times, travel_enabled, travel_lead_days, encouragement_enabled)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID, boolToInt(defaults.RemindersEnabled), string(times),
		boolToInt(defaults.TravelEnabled), defaults.TravelLeadDays,
		boolToInt(defaults.EncouragementEnabled),
	)
	if err != nil {
		return nil, fmt.Errorf("insert default notification settings: %w", err)
	}
	return s.get(userID)
}

// UpdateNotificationSettings replaces the user's settings.
func (s *SettingsStore) UpdateNotificationSettings(ns model.NotificationSettings) error {
	if ns.TravelLeadDays < 0 {
		return fmt.Errorf("travel lead days must be >= 0, got %d", ns.TravelLeadDays)
	}
	times, err := json.Marshal(ns.ReminderTimes)
	if err != nil {
		return fmt.Errorf("marshal reminder times: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO notification_settings (user_id, reminders_enabled, reminder_times, travel_enabled, travel_lead_days, encouragement_enabled, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   reminders_enabled = excluded.reminders_enabled,
		   reminder_times = excluded.reminder_times,
		   travel_enabled = excluded.travel_enabled,
		   travel_lead_days = excluded.travel_lead_days,
		   encouragement_enabled = excluded.encouragement_enabled,
		   updated_at = excluded.updated_at`,
		ns.UserID, boolToInt(ns.RemindersEnabled), string(times),
		boolToInt(ns.TravelEnabled), ns.TravelLeadDays,
		boolToInt(ns.EncouragementEnabled), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update notification settings: %w", err)
	}
	return nil
}

// ListNotificationSettings returns settings for every user that has a row,
// for the scheduler. Users who never opened settings have no row and no
// notifications.
func (s *SettingsStore) ListNotificationSettings() ([]model.NotificationSettings, error) {
	rows, err := s.db.Query(`SELECT ` + settingsCols + ` FROM notification_settings`)
	if err != nil {
		return nil, fmt.Errorf("list notification settings: %w", err)
	}
	defer rows.Close()

	var all []model.NotificationSettings
	for rows.Next() {
		ns, err := scanSettings(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, *ns)
	}
	return all, rows.Err()
}

func (s *SettingsStore) get(userID int64) (*model.NotificationSettings, error) {
	row := s.db.QueryRow(`SELECT `+settingsCols+` FROM notification_settings WHERE user_id = ?`, userID)
	ns, err := scanSettings(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func scanSettings(scanner interface{ Scan(...any) error }) (*model.NotificationSettings, error) {
	var ns model.NotificationSettings
	var remindersInt, travelInt, encouragementInt int
	var timesJSON string
	err := scanner.Scan(&ns.UserID, &remindersInt, &timesJSON, &travelInt, &ns.TravelLeadDays, &encouragementInt, &ns.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan notification settings: %w", err)
	}
	if err := json.Unmarshal([]byte(timesJSON), &ns.ReminderTimes); err != nil {
		return nil, fmt.Errorf("unmarshal reminder times: %w", err)
	}
	ns.RemindersEnabled = remindersInt != 0
	ns.TravelEnabled = travelInt != 0
	ns.EncouragementEnabled = encouragementInt != 0
	return &ns, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
